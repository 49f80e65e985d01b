// Package session binds one visitor's stored credentials to the lifetime of
// a request. All writes to a visitor's session go through a Handle, which
// serializes them and publishes every new snapshot to its subscribers.
package session

import (
	"context"
	"fmt"
	"sync"

	"github.com/lawbot360/web/internal/core/domain"
)

// Store is the durable key/value backing for sessions.
type Store interface {
	Load(ctx context.Context, id string) (domain.Session, error)
	Save(ctx context.Context, id string, s domain.Session) error
	Clear(ctx context.Context, id string) error
}

// Handle is the single writer for one session ID.
type Handle struct {
	idMu  sync.RWMutex
	id    string
	store Store

	mu     sync.Mutex
	nextID int
	subs   map[int]func(domain.Session)
}

// NewHandle returns a handle for the session identified by id.
func NewHandle(id string, store Store) *Handle {
	return &Handle{id: id, store: store, subs: make(map[int]func(domain.Session))}
}

// ID returns the session identifier.
func (h *Handle) ID() string {
	h.idMu.RLock()
	defer h.idMu.RUnlock()
	return h.id
}

// Snapshot reads the current session from the store. It is never cached so
// that a clear issued by a concurrent request is observed immediately.
func (h *Handle) Snapshot(ctx context.Context) (domain.Session, error) {
	s, err := h.store.Load(ctx, h.ID())
	if err != nil {
		return domain.Session{}, fmt.Errorf("load session: %w", err)
	}
	return s, nil
}

// Token returns the stored bearer token, if any. Store failures read as
// "no token".
func (h *Handle) Token(ctx context.Context) (string, bool) {
	s, err := h.Snapshot(ctx)
	if err != nil || !s.HasToken() {
		return "", false
	}
	return s.Token, true
}

// Set replaces the stored session and notifies subscribers.
func (h *Handle) Set(ctx context.Context, s domain.Session) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.store.Save(ctx, h.ID(), s); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	h.publish(s)
	return nil
}

// Clear removes both the token and the cached user.
func (h *Handle) Clear(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if err := h.store.Clear(ctx, h.ID()); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	h.publish(domain.Session{})
	return nil
}

// Rotate moves the stored session to a freshly generated ID and removes the
// entries under the old one. Everything holding the handle follows the new
// ID. Subscribers are not notified since the snapshot does not change.
func (h *Handle) Rotate(ctx context.Context) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	next, err := NewID()
	if err != nil {
		return err
	}
	prev := h.ID()

	s, err := h.store.Load(ctx, prev)
	if err != nil {
		return fmt.Errorf("rotate session: %w", err)
	}
	if !s.Empty() {
		if err := h.store.Save(ctx, next, s); err != nil {
			return fmt.Errorf("rotate session: %w", err)
		}
	}
	if err := h.store.Clear(ctx, prev); err != nil {
		return fmt.Errorf("rotate session: %w", err)
	}

	h.idMu.Lock()
	h.id = next
	h.idMu.Unlock()
	return nil
}

// Subscribe registers fn to receive every snapshot written through this
// handle. fn runs while the write lock is held and must not write back to
// the handle. The returned func removes the subscription.
func (h *Handle) Subscribe(fn func(domain.Session)) func() {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	h.subs[id] = fn
	return func() {
		h.mu.Lock()
		delete(h.subs, id)
		h.mu.Unlock()
	}
}

func (h *Handle) publish(s domain.Session) {
	for _, fn := range h.subs {
		fn(s)
	}
}

type ctxKey struct{}

// NewContext returns a copy of ctx carrying h.
func NewContext(ctx context.Context, h *Handle) context.Context {
	return context.WithValue(ctx, ctxKey{}, h)
}

// FromContext returns the handle bound to ctx, or nil.
func FromContext(ctx context.Context) *Handle {
	h, _ := ctx.Value(ctxKey{}).(*Handle)
	return h
}
