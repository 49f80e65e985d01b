package memory

import (
	"context"
	"strconv"
	"sync"

	"github.com/lawbot360/web/internal/core/domain"
)

// ContactRepository appends contact messages to a slice.
type ContactRepository struct {
	mu       sync.Mutex
	messages []domain.ContactMessage
}

func NewContactRepository() *ContactRepository {
	return &ContactRepository{}
}

func (r *ContactRepository) Insert(_ context.Context, msg *domain.ContactMessage) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if msg.ID == "" {
		msg.ID = strconv.Itoa(len(r.messages) + 1)
	}
	r.messages = append(r.messages, *msg)
	return nil
}

// Messages returns a copy of everything inserted so far.
func (r *ContactRepository) Messages() []domain.ContactMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.ContactMessage(nil), r.messages...)
}
