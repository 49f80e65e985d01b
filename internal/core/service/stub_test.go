package service

import (
	"context"
	"errors"

	"github.com/lawbot360/web/internal/core/domain"
	"github.com/lawbot360/web/internal/core/ports"
	"github.com/lawbot360/web/internal/core/session"
	"github.com/lawbot360/web/internal/infrastructure/db/memory"
)

var errUnauthorized = errors.New("unauthorized")

// stubAuthAPI records calls and answers from fixed fields.
type stubAuthAPI struct {
	loginResp    *ports.AuthResponse
	loginErr     error
	registerResp *ports.AuthResponse
	registerErr  error
	me           *domain.User
	meErr        error

	loginCalls    int
	registerCalls int
	meCalls       int
	lastRegister  ports.RegisterRequest
	meSawHandle   bool
}

func (s *stubAuthAPI) Login(_ context.Context, _ ports.LoginRequest) (*ports.AuthResponse, error) {
	s.loginCalls++
	return s.loginResp, s.loginErr
}

func (s *stubAuthAPI) Register(_ context.Context, req ports.RegisterRequest) (*ports.AuthResponse, error) {
	s.registerCalls++
	s.lastRegister = req
	return s.registerResp, s.registerErr
}

func (s *stubAuthAPI) Me(ctx context.Context) (*domain.User, error) {
	s.meCalls++
	s.meSawHandle = session.FromContext(ctx) != nil
	if s.meErr != nil {
		return nil, s.meErr
	}
	if s.me == nil {
		return nil, nil
	}
	u := *s.me
	return &u, nil
}

func newHandle(t interface{ Helper() }) (*session.Handle, *memory.SessionStore) {
	t.Helper()
	store := memory.NewSessionStore()
	return session.NewHandle("sid", store), store
}

func alice() *domain.User {
	return &domain.User{ID: 1, Name: "Alice", Email: "alice@example.com", Role: domain.RoleUser}
}
