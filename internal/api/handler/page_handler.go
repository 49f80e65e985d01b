package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lawbot360/web/internal/api/middleware"
	"github.com/lawbot360/web/internal/core/domain"
	"github.com/lawbot360/web/internal/web"
)

// ClauseTemplate is one row of the clause template library.
type ClauseTemplate struct {
	Name         string
	Jurisdiction string
	RiskLevel    string
}

var clauseTemplates = []ClauseTemplate{
	{Name: "Mutual NDA", Jurisdiction: "IN", RiskLevel: "Medium"},
	{Name: "Employment Agreement", Jurisdiction: "IN", RiskLevel: "High"},
	{Name: "Service Agreement", Jurisdiction: "US", RiskLevel: "Medium"},
}

// SettingsView is the data for the settings page.
type SettingsView struct {
	Profile *domain.User
	Error   string
}

// PageHandler serves the pages that need no backend call.
type PageHandler struct {
	layout *Layout
}

func NewPageHandler(layout *Layout) *PageHandler {
	return &PageHandler{layout: layout}
}

func (h *PageHandler) Home(c echo.Context) error {
	return c.Render(http.StatusOK, "home", h.layout.Page(c, "LawBot 360"))
}

// Document renders one of the embedded markdown documents.
func (h *PageHandler) Document(name, title string) echo.HandlerFunc {
	return func(c echo.Context) error {
		doc, err := web.Content(name)
		if err != nil {
			return err
		}
		p := h.layout.Page(c, title)
		p.Data = doc
		return c.Render(http.StatusOK, "document", p)
	}
}

func (h *PageHandler) Templates(c echo.Context) error {
	p := h.layout.Page(c, "Clause Templates")
	p.Data = clauseTemplates
	return c.Render(http.StatusOK, "templates", p)
}

// Settings shows the profile of the signed-in user. The user comes from the
// auth context, so the page needs no extra backend call.
func (h *PageHandler) Settings(c echo.Context) error {
	st := middleware.AuthState(c)
	view := SettingsView{}
	if st.User != nil {
		view.Profile = st.User
	} else {
		view.Error = "Failed to load user profile"
	}
	p := h.layout.Page(c, "Settings")
	p.Data = view
	return c.Render(http.StatusOK, "settings", p)
}

// Loading is the placeholder shown while a visitor's session is still being
// resolved.
func (h *PageHandler) Loading(c echo.Context) error {
	return c.Render(http.StatusOK, "loading", h.layout.Page(c, "Loading"))
}

func (h *PageHandler) NotFound(c echo.Context) error {
	return c.Render(http.StatusNotFound, "notfound", h.layout.Page(c, "Page Not Found"))
}
