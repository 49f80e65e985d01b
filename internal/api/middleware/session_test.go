package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lawbot360/web/internal/core/domain"
	"github.com/lawbot360/web/internal/core/service"
	"github.com/lawbot360/web/internal/core/session"
	"github.com/lawbot360/web/internal/infrastructure/db/memory"
)

var testSessionConfig = SessionConfig{CookieName: "lawbot_session", TTL: time.Hour}

func TestSession_IssuesCookieForNewVisitor(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var seen *session.Handle
	handler := Session(memory.NewSessionStore(), testSessionConfig, zerolog.Nop())(func(c echo.Context) error {
		seen = SessionHandle(c)
		if session.FromContext(c.Request().Context()) != seen {
			t.Fatalf("handle missing from request context")
		}
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if seen == nil || !session.ValidID(seen.ID()) {
		t.Fatalf("expected a valid session handle")
	}
	cookie := rec.Header().Get("Set-Cookie")
	if !strings.Contains(cookie, "lawbot_session="+seen.ID()) || !strings.Contains(cookie, "HttpOnly") {
		t.Fatalf("unexpected cookie %q", cookie)
	}
}

func TestSession_ReusesValidCookie(t *testing.T) {
	id, err := session.NewID()
	if err != nil {
		t.Fatalf("NewID: %v", err)
	}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "lawbot_session", Value: id})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Session(memory.NewSessionStore(), testSessionConfig, zerolog.Nop())(func(c echo.Context) error {
		if SessionHandle(c).ID() != id {
			t.Fatalf("expected existing id to be reused")
		}
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Header().Get("Set-Cookie") != "" {
		t.Fatalf("no cookie should be set for a known visitor")
	}
}

func TestSession_ReplacesMalformedCookie(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "lawbot_session", Value: "../../etc/passwd"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Session(memory.NewSessionStore(), testSessionConfig, zerolog.Nop())(func(c echo.Context) error {
		if SessionHandle(c).ID() == "../../etc/passwd" {
			t.Fatalf("malformed id accepted")
		}
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Header().Get("Set-Cookie") == "" {
		t.Fatalf("expected a fresh cookie")
	}
}

func TestSession_ReissuesCookieAfterRotation(t *testing.T) {
	id, _ := session.NewID()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: "lawbot_session", Value: id})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var rotated string
	handler := Session(memory.NewSessionStore(), testSessionConfig, zerolog.Nop())(func(c echo.Context) error {
		h := SessionHandle(c)
		if err := h.Rotate(c.Request().Context()); err != nil {
			t.Fatalf("Rotate: %v", err)
		}
		rotated = h.ID()
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	cookie := rec.Header().Get("Set-Cookie")
	if rotated == id || !strings.Contains(cookie, "lawbot_session="+rotated) {
		t.Fatalf("expected cookie for rotated id %q, got %q", rotated, cookie)
	}
}

func TestLoadAuth_HydratesFromStore(t *testing.T) {
	store := memory.NewSessionStore()
	id, _ := session.NewID()
	user := &domain.User{ID: 1, Name: "Alice", Email: "alice@example.com"}
	if err := store.Save(context.Background(), id, domain.Session{}.WithCredentials("tok", user)); err != nil {
		t.Fatalf("seed: %v", err)
	}
	svc := &stubAuthService{me: user}

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/settings", nil)
	req.AddCookie(&http.Cookie{Name: "lawbot_session", Value: id})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	chain := Session(store, testSessionConfig, zerolog.Nop())(LoadAuth(svc, zerolog.Nop())(func(c echo.Context) error {
		st := AuthState(c)
		if st.Phase != service.PhaseAuthenticated || st.User.Email != "alice@example.com" {
			t.Fatalf("unexpected state %+v", st)
		}
		return nil
	}))
	if err := chain(c); err != nil {
		t.Fatalf("chain error: %v", err)
	}
	if svc.meCalls != 1 {
		t.Fatalf("expected one revalidation, got %d", svc.meCalls)
	}
}

func TestAuthState_DefaultsToAnonymous(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	if st := AuthState(c); st.Phase != service.PhaseAnonymous || st.IsAuthenticated {
		t.Fatalf("unexpected state %+v", st)
	}
}
