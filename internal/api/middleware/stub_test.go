package middleware

import (
	"context"

	"github.com/lawbot360/web/internal/core/domain"
	"github.com/lawbot360/web/internal/core/ports"
	"github.com/lawbot360/web/internal/core/session"
)

// stubAuthService answers from the session handle and a fixed /me result.
type stubAuthService struct {
	me      *domain.User
	meErr   error
	meCalls int
}

func (s *stubAuthService) Login(context.Context, *session.Handle, string, string) (*ports.AuthResponse, error) {
	return nil, nil
}

func (s *stubAuthService) Register(context.Context, *session.Handle, ports.RegisterInput) (*ports.AuthResponse, error) {
	return nil, nil
}

func (s *stubAuthService) CurrentUser(context.Context, *session.Handle) (*domain.User, error) {
	s.meCalls++
	return s.me, s.meErr
}

func (s *stubAuthService) Logout(ctx context.Context, h *session.Handle) error {
	return h.Clear(ctx)
}

func (s *stubAuthService) IsAuthenticated(ctx context.Context, h *session.Handle) bool {
	_, ok := h.Token(ctx)
	return ok
}

func (s *stubAuthService) StoredUser(ctx context.Context, h *session.Handle) *domain.User {
	snap, err := h.Snapshot(ctx)
	if err != nil {
		return nil
	}
	return snap.User
}
