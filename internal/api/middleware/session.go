package middleware

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lawbot360/web/internal/core/session"
)

const sessionKey = "session"

// SessionConfig controls the visitor cookie.
type SessionConfig struct {
	CookieName string
	TTL        time.Duration
	Secure     bool
}

// Session binds a session handle to every request. Visitors without a valid
// cookie get a fresh random ID. When the handle is rotated during the request
// the response carries a cookie for the new ID. The handle is reachable through
// SessionHandle and through the request context, where the backend client
// picks it up.
func Session(store session.Store, cfg SessionConfig, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			id := ""
			if ck, err := c.Cookie(cfg.CookieName); err == nil && session.ValidID(ck.Value) {
				id = ck.Value
			}
			if id == "" {
				fresh, err := session.NewID()
				if err != nil {
					log.Error().Err(err).Msg("could not generate session id")
					return echo.NewHTTPError(http.StatusInternalServerError)
				}
				id = fresh
				c.SetCookie(sessionCookie(cfg, id))
			}

			h := session.NewHandle(id, store)
			c.Response().Before(func() {
				if cur := h.ID(); cur != id {
					c.SetCookie(sessionCookie(cfg, cur))
				}
			})
			c.Set(sessionKey, h)
			req := c.Request()
			c.SetRequest(req.WithContext(session.NewContext(req.Context(), h)))
			return next(c)
		}
	}
}

// SessionHandle returns the handle bound by Session, or nil.
func SessionHandle(c echo.Context) *session.Handle {
	h, _ := c.Get(sessionKey).(*session.Handle)
	return h
}

// ExpireSessionCookie tells the browser to drop the session cookie.
func ExpireSessionCookie(c echo.Context, cfg SessionConfig) {
	ck := sessionCookie(cfg, "")
	ck.MaxAge = -1
	ck.Expires = time.Unix(0, 0)
	c.SetCookie(ck)
}

func sessionCookie(cfg SessionConfig, id string) *http.Cookie {
	return &http.Cookie{
		Name:     cfg.CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(cfg.TTL.Seconds()),
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}
