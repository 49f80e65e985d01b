package middleware

import (
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lawbot360/web/internal/core/ports"
	"github.com/lawbot360/web/internal/core/service"
)

const authKey = "auth"

// LoadAuth builds the request's AuthContext on top of the session handle and
// runs its initialisation before the handler. Must run after Session.
func LoadAuth(svc ports.AuthService, log zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			h := SessionHandle(c)
			if h == nil {
				return next(c)
			}

			ac := service.NewAuthContext(svc, h, log)
			defer ac.Close()

			res := ac.Initialize(c.Request().Context())
			if res.Outcome == service.InitFailed {
				log.Debug().Err(res.Err).Str("path", c.Path()).Msg("stored session did not revalidate")
			}

			c.Set(authKey, ac)
			return next(c)
		}
	}
}

// Auth returns the request's AuthContext, or nil outside LoadAuth.
func Auth(c echo.Context) *service.AuthContext {
	ac, _ := c.Get(authKey).(*service.AuthContext)
	return ac
}

// AuthState returns the current auth state. Requests that never went through
// LoadAuth read as anonymous.
func AuthState(c echo.Context) service.AuthState {
	if ac := Auth(c); ac != nil {
		return ac.State()
	}
	return service.AuthState{Phase: service.PhaseAnonymous}
}
