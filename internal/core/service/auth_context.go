package service

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/lawbot360/web/internal/api/metrics"
	"github.com/lawbot360/web/internal/core/domain"
	"github.com/lawbot360/web/internal/core/ports"
	"github.com/lawbot360/web/internal/core/session"
)

// Phase is the auth context's lifecycle state.
type Phase int

const (
	PhaseInitializing Phase = iota
	PhaseAnonymous
	PhaseAuthenticated
)

func (p Phase) String() string {
	switch p {
	case PhaseInitializing:
		return "initializing"
	case PhaseAnonymous:
		return "anonymous"
	case PhaseAuthenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// AuthState is what views and the route guard see.
type AuthState struct {
	Phase           Phase
	User            *domain.User
	Loading         bool
	IsAuthenticated bool
}

// InitOutcome classifies the result of initialisation.
type InitOutcome int

const (
	InitAnonymous InitOutcome = iota
	InitHydrated
	InitFailed
)

func (o InitOutcome) String() string {
	switch o {
	case InitHydrated:
		return "hydrated"
	case InitFailed:
		return "failed"
	default:
		return "anonymous"
	}
}

// InitResult is produced once per AuthContext: Hydrated carries the
// revalidated user, Failed carries the revalidation error.
type InitResult struct {
	Outcome InitOutcome
	User    *domain.User
	Err     error
}

// AuthContext is the per-request auth state machine.
//
//	initializing → anonymous       no token, no cached user, or revalidation failed
//	initializing → authenticated   token and cached user present, revalidation ok
//	anonymous    → authenticated   Login / Register
//	authenticated → anonymous      Logout, or the session cleared elsewhere
//
// Login and Register errors are returned to the caller untouched.
type AuthContext struct {
	svc ports.AuthService
	h   *session.Handle
	log zerolog.Logger

	mu    sync.RWMutex
	phase Phase
	user  *domain.User

	initOnce    sync.Once
	initResult  InitResult
	unsubscribe func()
}

// NewAuthContext starts in the initializing phase and follows every write to h.
func NewAuthContext(svc ports.AuthService, h *session.Handle, log zerolog.Logger) *AuthContext {
	a := &AuthContext{
		svc:   svc,
		h:     h,
		log:   log.With().Str("component", "auth_context").Logger(),
		phase: PhaseInitializing,
	}
	a.unsubscribe = h.Subscribe(a.onSession)
	return a
}

// Close detaches the context from its session handle.
func (a *AuthContext) Close() {
	a.unsubscribe()
}

// Session returns the handle this context acts on.
func (a *AuthContext) Session() *session.Handle {
	return a.h
}

// Initialize runs the one-shot hydration task. Later calls return the first
// result without touching the backend again.
func (a *AuthContext) Initialize(ctx context.Context) InitResult {
	a.initOnce.Do(func() {
		a.initResult = a.initialize(ctx)
		metrics.AuthInitTotal.WithLabelValues(a.initResult.Outcome.String()).Inc()
	})
	return a.initResult
}

func (a *AuthContext) initialize(ctx context.Context) InitResult {
	if !a.svc.IsAuthenticated(ctx, a.h) {
		a.settle(PhaseAnonymous, nil)
		return InitResult{Outcome: InitAnonymous}
	}

	stored := a.svc.StoredUser(ctx, a.h)
	if stored == nil {
		a.settle(PhaseAnonymous, nil)
		return InitResult{Outcome: InitAnonymous}
	}

	// Optimistic hydrate; Loading stays true until revalidation settles.
	a.mu.Lock()
	a.user = stored
	a.mu.Unlock()

	fresh, err := a.svc.CurrentUser(ctx, a.h)
	if err != nil {
		a.log.Info().Err(err).Msg("stored token failed revalidation")
		if logoutErr := a.svc.Logout(ctx, a.h); logoutErr != nil {
			a.log.Error().Err(logoutErr).Msg("logout after failed revalidation")
		}
		a.settle(PhaseAnonymous, nil)
		return InitResult{Outcome: InitFailed, Err: err}
	}
	if fresh == nil {
		fresh = stored
	}

	a.refreshCachedUser(ctx, fresh)
	a.settle(PhaseAuthenticated, fresh)
	return InitResult{Outcome: InitHydrated, User: fresh}
}

// refreshCachedUser replaces the cached profile with the server's copy.
func (a *AuthContext) refreshCachedUser(ctx context.Context, fresh *domain.User) {
	snap, err := a.h.Snapshot(ctx)
	if err != nil || !snap.HasToken() {
		return
	}
	if err := a.h.Set(ctx, snap.WithUser(fresh)); err != nil {
		a.log.Warn().Err(err).Msg("could not refresh cached user")
	}
}

// Login authenticates and moves to authenticated on success.
func (a *AuthContext) Login(ctx context.Context, email, password string) error {
	resp, err := a.svc.Login(ctx, a.h, email, password)
	if err != nil {
		return err
	}
	a.settleFromResponse(resp)
	return nil
}

// Register creates an account and moves to authenticated on success.
func (a *AuthContext) Register(ctx context.Context, name, email, password string) error {
	resp, err := a.svc.Register(ctx, a.h, ports.RegisterInput{Name: name, Email: email, Password: password})
	if err != nil {
		return err
	}
	a.settleFromResponse(resp)
	return nil
}

// Logout clears the session and moves to anonymous.
func (a *AuthContext) Logout(ctx context.Context) error {
	err := a.svc.Logout(ctx, a.h)
	a.settle(PhaseAnonymous, nil)
	return err
}

// State returns a snapshot of the current state.
func (a *AuthContext) State() AuthState {
	a.mu.RLock()
	defer a.mu.RUnlock()

	var user *domain.User
	if a.user != nil {
		u := *a.user
		user = &u
	}
	return AuthState{
		Phase:           a.phase,
		User:            user,
		Loading:         a.phase == PhaseInitializing,
		IsAuthenticated: user != nil,
	}
}

func (a *AuthContext) settleFromResponse(resp *ports.AuthResponse) {
	if resp == nil || resp.User == nil {
		a.settle(PhaseAnonymous, nil)
		return
	}
	a.settle(PhaseAuthenticated, resp.User)
}

func (a *AuthContext) settle(phase Phase, user *domain.User) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.phase = phase
	a.user = user
}

// onSession runs under the handle's write lock. A cleared session drops an
// authenticated context back to anonymous; initialisation handles its own
// failures.
func (a *AuthContext) onSession(s domain.Session) {
	if s.HasToken() {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.phase == PhaseAuthenticated {
		a.phase = PhaseAnonymous
		a.user = nil
	}
}
