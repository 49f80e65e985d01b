package handler

import (
	"errors"

	"github.com/labstack/echo/v4"

	"github.com/lawbot360/web/internal/api/middleware"
	"github.com/lawbot360/web/internal/infrastructure/lawbot"
	"github.com/lawbot360/web/internal/web"
)

// Layout builds the shared part of every page view-model.
type Layout struct {
	nav *web.Navigation
}

func NewLayout(nav *web.Navigation) *Layout {
	return &Layout{nav: nav}
}

// Page returns a view-model for the current visitor.
func (l *Layout) Page(c echo.Context, title string) web.Page {
	st := middleware.AuthState(c)
	return web.Page{
		Title:           title,
		CurrentPath:     c.Request().URL.Path,
		Nav:             l.nav.For(st.IsAuthenticated),
		IsAuthenticated: st.IsAuthenticated,
		User:            st.User,
	}
}

// backendMessage turns a backend failure into page text. A 401 is never
// shown: it comes back as the error so the central handler can redirect.
func backendMessage(err error, fallback string) (string, error) {
	if errors.Is(err, lawbot.ErrSessionExpired) {
		return "", err
	}
	return lawbot.MessageOf(err, fallback), nil
}
