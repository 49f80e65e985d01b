package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lawbot360/web/internal/api/metrics"
	"github.com/lawbot360/web/internal/api/middleware"
	"github.com/lawbot360/web/internal/core/domain"
	"github.com/lawbot360/web/internal/core/service"
	"github.com/lawbot360/web/internal/form"
	"github.com/lawbot360/web/internal/web"
)

const contactThanks = "Thank you for your message! We will get back to you soon."

// ContactSubmitter stores contact messages.
type ContactSubmitter interface {
	Submit(ctx context.Context, sessionID string, in service.ContactInput) (bool, error)
}

type ContactHandler struct {
	contacts ContactSubmitter
	layout   *Layout
	log      zerolog.Logger
}

func NewContactHandler(contacts ContactSubmitter, layout *Layout, log zerolog.Logger) *ContactHandler {
	return &ContactHandler{contacts: contacts, layout: layout, log: log.With().Str("component", "contact_handler").Logger()}
}

func (h *ContactHandler) Show(c echo.Context) error {
	return h.render(c, http.StatusOK, form.New(contactSchema()), web.Flash{})
}

// Send handles POST /contact. A successful or duplicate submission both show
// the thank-you notice and an empty form.
func (h *ContactHandler) Send(c echo.Context) error {
	params, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	var sessionID string
	if sh := middleware.SessionHandle(c); sh != nil {
		sessionID = sh.ID()
	}
	var userEmail string
	if u := middleware.AuthState(c).User; u != nil {
		userEmail = u.Email
	}

	f := fillForm(contactSchema(), params)
	ok, err := f.HandleSubmit(c.Request().Context(), func(ctx context.Context, v form.Values) error {
		_, err := h.contacts.Submit(ctx, sessionID, service.ContactInput{
			Name:      v["name"],
			Email:     v["email"],
			Subject:   v["subject"],
			Message:   v["message"],
			UserEmail: userEmail,
		})
		return err
	})
	if !ok {
		metrics.FormRejectionsTotal.WithLabelValues(formContact).Inc()
		return h.render(c, http.StatusUnprocessableEntity, f, web.Flash{})
	}
	if err != nil {
		if errors.Is(err, domain.ErrContactInvalid) {
			return h.render(c, http.StatusUnprocessableEntity, f, web.Flash{Kind: web.FlashError, Text: "Please check the form and try again."})
		}
		h.log.Error().Err(err).Msg("contact message not stored")
		return h.render(c, http.StatusOK, f, web.Flash{Kind: web.FlashError, Text: "Failed to send message. Please try again."})
	}
	return h.render(c, http.StatusOK, form.New(contactSchema()), web.Flash{Kind: web.FlashSuccess, Text: contactThanks})
}

func (h *ContactHandler) render(c echo.Context, status int, f *form.Form, flash web.Flash) error {
	p := h.layout.Page(c, "Contact Us")
	p.Form = f
	return c.Render(status, "contact", p.WithFlash(flash.Kind, flash.Text))
}
