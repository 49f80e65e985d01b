package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/lawbot360/web/internal/core/ports"
)

// DashboardView is the data for the dashboard page.
type DashboardView struct {
	Metrics      *ports.DashboardMetrics
	MaxRiskCount int
	Error        string
}

type DashboardHandler struct {
	api    ports.LawbotAPI
	layout *Layout
}

func NewDashboardHandler(api ports.LawbotAPI, layout *Layout) *DashboardHandler {
	return &DashboardHandler{api: api, layout: layout}
}

// Show handles GET /dashboard. Every visit fetches fresh metrics.
func (h *DashboardHandler) Show(c echo.Context) error {
	var view DashboardView
	m, err := h.api.DashboardMetrics(c.Request().Context())
	if err != nil {
		msg, err := backendMessage(err, "Failed to load metrics.")
		if err != nil {
			return err
		}
		view.Error = msg
	} else {
		view.Metrics = m
		for _, b := range m.RiskHistogram {
			if b.Count > view.MaxRiskCount {
				view.MaxRiskCount = b.Count
			}
		}
	}

	p := h.layout.Page(c, "Dashboard")
	p.Data = view
	return c.Render(http.StatusOK, "dashboard", p)
}
