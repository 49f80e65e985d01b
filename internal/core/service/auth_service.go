package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/lawbot360/web/internal/core/domain"
	"github.com/lawbot360/web/internal/core/ports"
	"github.com/lawbot360/web/internal/core/session"
)

// AuthService implements ports.AuthService on top of the backend auth API.
// It holds no state of its own; every call names the session it acts on.
type AuthService struct {
	api ports.AuthAPI
	log zerolog.Logger
}

func NewAuthService(api ports.AuthAPI, log zerolog.Logger) *AuthService {
	return &AuthService{api: api, log: log.With().Str("component", "auth_service").Logger()}
}

var _ ports.AuthService = (*AuthService)(nil)

// Login performs one backend call. When the response carries a token, the
// session is moved to a fresh ID and the token and user are persisted before
// returning. Backend errors are returned
// unchanged.
func (s *AuthService) Login(ctx context.Context, h *session.Handle, email, password string) (*ports.AuthResponse, error) {
	resp, err := s.api.Login(session.NewContext(ctx, h), ports.LoginRequest{Email: email, Password: password})
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, h, resp); err != nil {
		return nil, err
	}
	s.log.Info().Str("email", email).Msg("login succeeded")
	return resp, nil
}

// Register performs one backend call and persists credentials like Login.
func (s *AuthService) Register(ctx context.Context, h *session.Handle, in ports.RegisterInput) (*ports.AuthResponse, error) {
	resp, err := s.api.Register(session.NewContext(ctx, h), ports.RegisterRequest{
		Name:     in.Name,
		Email:    in.Email,
		Password: in.Password,
		Role:     in.Role,
	})
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, h, resp); err != nil {
		return nil, err
	}
	s.log.Info().Str("email", in.Email).Msg("registration succeeded")
	return resp, nil
}

// CurrentUser asks the backend who the token holder is. The result is not
// cached.
func (s *AuthService) CurrentUser(ctx context.Context, h *session.Handle) (*domain.User, error) {
	return s.api.Me(session.NewContext(ctx, h))
}

// Logout clears the session locally. The backend is not contacted.
func (s *AuthService) Logout(ctx context.Context, h *session.Handle) error {
	return h.Clear(ctx)
}

// IsAuthenticated reports whether a token is stored. Token freshness is not
// checked.
func (s *AuthService) IsAuthenticated(ctx context.Context, h *session.Handle) bool {
	_, ok := h.Token(ctx)
	return ok
}

// StoredUser returns the cached profile, or nil.
func (s *AuthService) StoredUser(ctx context.Context, h *session.Handle) *domain.User {
	snap, err := h.Snapshot(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("could not read stored user")
		return nil
	}
	return snap.User
}

func (s *AuthService) persist(ctx context.Context, h *session.Handle, resp *ports.AuthResponse) error {
	if resp == nil || resp.AccessToken == "" {
		return nil
	}
	if err := h.Rotate(ctx); err != nil {
		return fmt.Errorf("persist credentials: %w", err)
	}
	if err := h.Set(ctx, domain.Session{}.WithCredentials(resp.AccessToken, resp.User)); err != nil {
		return fmt.Errorf("persist credentials: %w", err)
	}
	return nil
}
