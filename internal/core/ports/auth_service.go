package ports

import (
	"context"

	"github.com/lawbot360/web/internal/core/domain"
	"github.com/lawbot360/web/internal/core/session"
)

// AuthService wraps the backend auth endpoints and the visitor's session.
// Network-backed calls perform exactly one request; IsAuthenticated and
// StoredUser only read the session.
type AuthService interface {
	Login(ctx context.Context, h *session.Handle, email, password string) (*AuthResponse, error)
	Register(ctx context.Context, h *session.Handle, in RegisterInput) (*AuthResponse, error)
	CurrentUser(ctx context.Context, h *session.Handle) (*domain.User, error)
	Logout(ctx context.Context, h *session.Handle) error
	IsAuthenticated(ctx context.Context, h *session.Handle) bool
	StoredUser(ctx context.Context, h *session.Handle) *domain.User
}

// RegisterInput carries the registration form fields. Role is optional.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}
