package api

import (
	"context"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/lawbot360/web/internal/api/middleware"
	"github.com/lawbot360/web/internal/core/domain"
	"github.com/lawbot360/web/internal/core/service"
	"github.com/lawbot360/web/internal/core/session"
	"github.com/lawbot360/web/internal/infrastructure/db/memory"
	"github.com/lawbot360/web/internal/infrastructure/lawbot"
	"github.com/lawbot360/web/internal/stubapi"
)

const cookieName = "lawbot_session"

type app struct {
	web      *httptest.Server
	sessions *memory.SessionStore
	contacts *memory.ContactRepository
	calls    *atomic.Int64
	client   *http.Client
}

func newApp(t *testing.T) *app {
	t.Helper()
	log := zerolog.Nop()

	stub := stubapi.New(stubapi.Config{JWTSecret: "s3cret", BcryptCost: bcrypt.MinCost}, log)
	calls := &atomic.Int64{}
	stubHandler := stub.Handler()
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		stubHandler.ServeHTTP(w, r)
	}))
	t.Cleanup(backend.Close)

	api, err := lawbot.New(lawbot.Config{BaseURL: backend.URL, Timeout: 5 * time.Second}, log)
	if err != nil {
		t.Fatalf("lawbot client: %v", err)
	}

	sessions := memory.NewSessionStore()
	contacts := memory.NewContactRepository()
	e, err := NewRouter(Deps{
		Sessions:      sessions,
		SessionConfig: middleware.SessionConfig{CookieName: cookieName, TTL: time.Hour},
		Auth:          service.NewAuthService(api, log),
		API:           api,
		Contacts:      service.NewContactService(contacts, memory.NewSubmitGuard(time.Minute), log),
		MaxUploadSize: 1 << 20,
		Log:           log,
	})
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	srv := httptest.NewServer(e)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookie jar: %v", err)
	}
	return &app{
		web:      srv,
		sessions: sessions,
		contacts: contacts,
		calls:    calls,
		client: &http.Client{
			Jar: jar,
			CheckRedirect: func(*http.Request, []*http.Request) error {
				return http.ErrUseLastResponse
			},
		},
	}
}

func (a *app) get(t *testing.T, path string) (*http.Response, string) {
	t.Helper()
	resp, err := a.client.Get(a.web.URL + path)
	if err != nil {
		t.Fatalf("GET %s: %v", path, err)
	}
	return resp, readBody(t, resp)
}

func (a *app) post(t *testing.T, path string, form url.Values) (*http.Response, string) {
	t.Helper()
	resp, err := a.client.PostForm(a.web.URL+path, form)
	if err != nil {
		t.Fatalf("POST %s: %v", path, err)
	}
	return resp, readBody(t, resp)
}

func (a *app) sessionID(t *testing.T) string {
	t.Helper()
	u, _ := url.Parse(a.web.URL)
	for _, ck := range a.client.Jar.Cookies(u) {
		if ck.Name == cookieName {
			return ck.Value
		}
	}
	t.Fatal("no session cookie in jar")
	return ""
}

func readBody(t *testing.T, resp *http.Response) string {
	t.Helper()
	defer resp.Body.Close()
	b, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(b)
}

func expectRedirect(t *testing.T, resp *http.Response, location string) {
	t.Helper()
	if resp.StatusCode < 300 || resp.StatusCode > 399 {
		t.Fatalf("expected redirect to %s, got %d", location, resp.StatusCode)
	}
	if got := resp.Header.Get("Location"); got != location {
		t.Fatalf("expected Location %q, got %q", location, got)
	}
}

func registerAlice(t *testing.T, a *app) {
	t.Helper()
	resp, _ := a.post(t, "/register", url.Values{
		"name":            {"Alice"},
		"email":           {"alice@example.com"},
		"password":        {"secret1"},
		"confirmPassword": {"secret1"},
	})
	expectRedirect(t, resp, "/dashboard")
}

func TestProtectedPages_RedirectAnonymous(t *testing.T) {
	a := newApp(t)
	for _, path := range []string{"/dashboard", "/create", "/verify", "/explain", "/templates", "/settings"} {
		resp, _ := a.get(t, path)
		expectRedirect(t, resp, "/login")
	}
	if a.calls.Load() != 0 {
		t.Fatalf("anonymous visits should not reach the backend, got %d calls", a.calls.Load())
	}
}

func TestRegisterLoginLogoutFlow(t *testing.T) {
	a := newApp(t)
	registerAlice(t, a)

	resp, body := a.get(t, "/dashboard")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("dashboard: expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Welcome back, Alice") {
		t.Fatal("dashboard does not greet the user")
	}

	resp, _ = a.post(t, "/logout", nil)
	expectRedirect(t, resp, "/login")
	if entries := a.sessions.Entries(a.sessionID(t)); len(entries) != 0 {
		t.Fatalf("expected session cleared after logout, got %v", entries)
	}

	resp, _ = a.get(t, "/dashboard")
	expectRedirect(t, resp, "/login")

	resp, _ = a.post(t, "/login", url.Values{"email": {"alice@example.com"}, "password": {"secret1"}})
	expectRedirect(t, resp, "/dashboard")
	if a.sessions.Entries(a.sessionID(t))[session.TokenKey] == "" {
		t.Fatal("expected a stored token after login")
	}
}

func TestLogin_RotatesPlantedSessionID(t *testing.T) {
	a := newApp(t)
	planted := strings.Repeat("ab", 32)
	u, _ := url.Parse(a.web.URL)
	a.client.Jar.SetCookies(u, []*http.Cookie{{Name: cookieName, Value: planted, Path: "/"}})

	registerAlice(t, a)
	if len(a.sessions.Entries(planted)) != 0 {
		t.Fatalf("pre-login session id still holds entries: %v", a.sessions.Entries(planted))
	}
	id := a.sessionID(t)
	if id == planted {
		t.Fatal("expected a fresh session cookie after registration")
	}
	if a.sessions.Entries(id)[session.TokenKey] == "" {
		t.Fatal("expected the token under the new session id")
	}

	resp, _ := a.post(t, "/logout", nil)
	expectRedirect(t, resp, "/login")
	a.client.Jar.SetCookies(u, []*http.Cookie{{Name: cookieName, Value: planted, Path: "/"}})
	resp, _ = a.post(t, "/login", url.Values{"email": {"alice@example.com"}, "password": {"secret1"}})
	expectRedirect(t, resp, "/dashboard")
	if len(a.sessions.Entries(planted)) != 0 {
		t.Fatalf("login left entries under the planted id: %v", a.sessions.Entries(planted))
	}
	if a.sessionID(t) == planted {
		t.Fatal("expected a fresh session cookie after login")
	}
}

func TestRegister_MismatchNeverReachesBackend(t *testing.T) {
	a := newApp(t)
	resp, body := a.post(t, "/register", url.Values{
		"name":            {"Alice"},
		"email":           {"alice@example.com"},
		"password":        {"secret1"},
		"confirmPassword": {"secret2"},
	})
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "Passwords do not match") {
		t.Fatal("expected mismatch message on the page")
	}
	if a.calls.Load() != 0 {
		t.Fatalf("expected no backend call, got %d", a.calls.Load())
	}
}

func TestStaleToken_RedirectsAndClearsSession(t *testing.T) {
	a := newApp(t)
	a.get(t, "/")
	id := a.sessionID(t)

	stale := domain.Session{}.WithCredentials("expired-token", &domain.User{ID: 9, Name: "Ghost"})
	if err := a.sessions.Save(context.Background(), id, stale); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	resp, _ := a.get(t, "/dashboard")
	expectRedirect(t, resp, "/login")
	if entries := a.sessions.Entries(id); len(entries) != 0 {
		t.Fatalf("expected stale session cleared, got %v", entries)
	}
}

func TestPublicPages(t *testing.T) {
	a := newApp(t)
	for _, path := range []string{"/", "/login", "/register", "/chat", "/mission", "/about", "/terms", "/contact"} {
		resp, _ := a.get(t, path)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("GET %s: expected 200, got %d", path, resp.StatusCode)
		}
	}
}

func TestUnknownPage_RendersNotFound(t *testing.T) {
	a := newApp(t)
	resp, body := a.get(t, "/no-such-page")
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "does not exist") {
		t.Fatal("expected not-found page")
	}
}

func TestChat_AnonymousVisitor(t *testing.T) {
	a := newApp(t)
	resp, body := a.post(t, "/chat", url.Values{"message": {"What is bail?"}})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if !strings.Contains(body, "educational purposes only") {
		t.Fatal("expected assistant reply on the page")
	}
}

func TestContact_StoresMessageOnce(t *testing.T) {
	a := newApp(t)
	form := url.Values{
		"name":    {"Bob"},
		"email":   {"bob@example.com"},
		"subject": {"Hello"},
		"message": {"I would like to know more."},
	}
	for i := 0; i < 2; i++ {
		resp, body := a.post(t, "/contact", form)
		if resp.StatusCode != http.StatusOK {
			t.Fatalf("expected 200, got %d", resp.StatusCode)
		}
		if !strings.Contains(body, "Thank you for your message!") {
			t.Fatal("expected thank-you notice")
		}
	}
	if got := len(a.contacts.Messages()); got != 1 {
		t.Fatalf("expected one stored message, got %d", got)
	}
}

func TestOperationalEndpoints(t *testing.T) {
	a := newApp(t)
	resp, _ := a.get(t, "/health")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("health: expected 200, got %d", resp.StatusCode)
	}
	resp, _ = a.get(t, "/health/ready")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("ready: expected 200, got %d", resp.StatusCode)
	}
	a.get(t, "/")
	resp, body := a.get(t, "/metrics")
	if resp.StatusCode != http.StatusOK || !strings.Contains(body, "lawbot_http_requests_total") {
		t.Fatalf("metrics endpoint missing request counter (status %d)", resp.StatusCode)
	}
	resp, _ = a.get(t, "/static/app.js")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("static: expected 200, got %d", resp.StatusCode)
	}
}
