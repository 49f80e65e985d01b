package queue

import (
	"context"
	"errors"
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/lawbot360/web/internal/core/domain"
	"github.com/lawbot360/web/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 256
	writeTimeout   = 10 * time.Second
)

// ErrClosed is returned by Insert after Close.
var ErrClosed = errors.New("contact dispatcher closed")

// Dispatcher writes contact messages to a repository in the background. It
// routes messages to a fixed set of workers using consistent hashing on the
// sender's email, so one sender's messages are written in order.
//
// Dispatcher itself implements ports.ContactRepository.
type Dispatcher struct {
	workers []chan domain.ContactMessage
	repo    ports.ContactRepository
	log     zerolog.Logger

	mu     sync.RWMutex
	closed bool
	wg     sync.WaitGroup
}

var _ ports.ContactRepository = (*Dispatcher)(nil)

// NewDispatcher creates a Dispatcher with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewDispatcher(numWorkers int, repo ports.ContactRepository, log zerolog.Logger) *Dispatcher {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	d := &Dispatcher{
		workers: make([]chan domain.ContactMessage, numWorkers),
		repo:    repo,
		log:     log.With().Str("component", "contact_dispatcher").Logger(),
	}
	for i := range d.workers {
		d.workers[i] = make(chan domain.ContactMessage, channelBuffer)
	}
	return d
}

// Start launches all worker goroutines. Writes use ctx without its
// cancellation so that Close can drain queued messages after shutdown began.
func (d *Dispatcher) Start(ctx context.Context) {
	base := context.WithoutCancel(ctx)
	for i, ch := range d.workers {
		d.wg.Add(1)
		go d.runWorker(base, i, ch)
	}
}

// Insert queues msg for the worker responsible for its sender. It blocks
// only while that worker's buffer is full, and gives up when ctx ends.
func (d *Dispatcher) Insert(ctx context.Context, msg *domain.ContactMessage) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.closed {
		return ErrClosed
	}

	select {
	case d.workers[d.shardIndex(msg.Email)] <- *msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting messages and waits for queued ones to be written.
func (d *Dispatcher) Close() {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return
	}
	d.closed = true
	for _, ch := range d.workers {
		close(ch)
	}
	d.mu.Unlock()
	d.wg.Wait()
}

// shardIndex maps an email deterministically to a worker index.
func (d *Dispatcher) shardIndex(email string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.ToLower(email)))
	return int(h.Sum32() % uint32(len(d.workers)))
}

func (d *Dispatcher) runWorker(ctx context.Context, id int, ch <-chan domain.ContactMessage) {
	defer d.wg.Done()
	for msg := range ch {
		wctx, cancel := context.WithTimeout(ctx, writeTimeout)
		if err := d.repo.Insert(wctx, &msg); err != nil {
			d.log.Error().Err(err).
				Str("email", msg.Email).
				Int("worker_id", id).
				Msg("contact message write failed")
		}
		cancel()
	}
}
