package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lawbot360/web/internal/core/service"
)

// Decision is the route guard's verdict for a protected page.
type Decision int

const (
	Render Decision = iota
	Loading
	Redirect
)

func (d Decision) String() string {
	switch d {
	case Loading:
		return "loading"
	case Redirect:
		return "redirect"
	default:
		return "render"
	}
}

// Decide maps auth state to a guard decision. It has no side effects.
func Decide(st service.AuthState) Decision {
	switch {
	case st.Loading:
		return Loading
	case !st.IsAuthenticated:
		return Redirect
	default:
		return Render
	}
}

// RequireAuth protects a route: while auth is still initialising the loading
// handler answers, anonymous visitors are redirected to loginPath, and
// everyone else reaches the page.
func RequireAuth(loginPath string, loading echo.HandlerFunc) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			switch Decide(AuthState(c)) {
			case Loading:
				return loading(c)
			case Redirect:
				return c.Redirect(http.StatusFound, loginPath)
			default:
				return next(c)
			}
		}
	}
}
