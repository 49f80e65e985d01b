package ports

import (
	"context"

	"github.com/lawbot360/web/internal/core/domain"
)

// ContactRepository stores contact-page submissions.
type ContactRepository interface {
	Insert(ctx context.Context, msg *domain.ContactMessage) error
}
