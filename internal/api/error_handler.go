package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lawbot360/web/internal/api/handler"
	"github.com/lawbot360/web/internal/api/middleware"
	"github.com/lawbot360/web/internal/infrastructure/lawbot"
)

const loginPath = "/login"

type errorView struct {
	Code    int
	Message string
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Sends visitors whose backend session expired back to the login page.
//   - Renders the not-found page for unknown routes.
//   - Logs unexpected errors internally without leaking details to the visitor.
func NewHTTPErrorHandler(layout *handler.Layout, sessions middleware.SessionConfig, log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		if errors.Is(err, lawbot.ErrSessionExpired) {
			middleware.ExpireSessionCookie(c, sessions)
			_ = c.Redirect(http.StatusFound, loginPath)
			return
		}

		code, msg := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}

		p := layout.Page(c, http.StatusText(code))
		if code == http.StatusNotFound {
			if rerr := c.Render(code, "notfound", p); rerr != nil {
				log.Error().Err(rerr).Msg("render not found page")
			}
			return
		}
		p.Data = errorView{Code: code, Message: msg}
		if rerr := c.Render(code, "error", p); rerr != nil {
			log.Error().Err(rerr).Msg("render error page")
			_ = c.String(code, msg)
		}
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		if he.Message == nil {
			return he.Code, http.StatusText(he.Code)
		}
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	// Unexpected error: log the real cause, show a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "Something went wrong. Please try again."
}
