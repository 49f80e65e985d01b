package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/lawbot360/web/internal/api/metrics"
	"github.com/lawbot360/web/internal/api/middleware"
	"github.com/lawbot360/web/internal/form"
	"github.com/lawbot360/web/internal/web"
)

const (
	afterLoginPath  = "/dashboard"
	afterLogoutPath = "/login"
)

var errNoAuthContext = errors.New("auth context missing from request")

type AuthHandler struct {
	layout *Layout
	log    zerolog.Logger
}

func NewAuthHandler(layout *Layout, log zerolog.Logger) *AuthHandler {
	return &AuthHandler{layout: layout, log: log.With().Str("component", "auth_handler").Logger()}
}

// LoginForm renders GET /login.
func (h *AuthHandler) LoginForm(c echo.Context) error {
	return h.render(c, http.StatusOK, "login", "Login", form.New(loginSchema()), "")
}

// Login handles POST /login. Invalid input is reported inline without
// contacting the backend.
func (h *AuthHandler) Login(c echo.Context) error {
	ac := middleware.Auth(c)
	if ac == nil {
		return errNoAuthContext
	}
	params, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	f := fillForm(loginSchema(), params)
	var backendErr error
	ok, err := f.HandleSubmit(c.Request().Context(), func(ctx context.Context, v form.Values) error {
		backendErr = ac.Login(ctx, v["email"], v["password"])
		return nil
	})
	if err != nil {
		return err
	}
	if !ok {
		metrics.FormRejectionsTotal.WithLabelValues(formLogin).Inc()
		return h.render(c, http.StatusUnprocessableEntity, "login", "Login", f, "")
	}
	if backendErr != nil {
		msg, err := backendMessage(backendErr, "Login failed. Please try again.")
		if err != nil {
			return err
		}
		return h.render(c, http.StatusOK, "login", "Login", f, msg)
	}
	return c.Redirect(http.StatusSeeOther, afterLoginPath)
}

// RegisterForm renders GET /register.
func (h *AuthHandler) RegisterForm(c echo.Context) error {
	return h.render(c, http.StatusOK, "register", "Register", form.New(registerSchema()), "")
}

// Register handles POST /register.
func (h *AuthHandler) Register(c echo.Context) error {
	ac := middleware.Auth(c)
	if ac == nil {
		return errNoAuthContext
	}
	params, err := c.FormParams()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid form")
	}

	f := fillForm(registerSchema(), params)
	var backendErr error
	ok, err := f.HandleSubmit(c.Request().Context(), func(ctx context.Context, v form.Values) error {
		backendErr = ac.Register(ctx, v["name"], v["email"], v["password"])
		return nil
	})
	if err != nil {
		return err
	}
	if !ok {
		metrics.FormRejectionsTotal.WithLabelValues(formRegister).Inc()
		return h.render(c, http.StatusUnprocessableEntity, "register", "Register", f, "")
	}
	if backendErr != nil {
		msg, err := backendMessage(backendErr, "Registration failed. Please try again.")
		if err != nil {
			return err
		}
		return h.render(c, http.StatusOK, "register", "Register", f, msg)
	}
	return c.Redirect(http.StatusSeeOther, afterLoginPath)
}

// Logout handles POST /logout. It never contacts the backend.
func (h *AuthHandler) Logout(c echo.Context) error {
	if ac := middleware.Auth(c); ac != nil {
		if err := ac.Logout(c.Request().Context()); err != nil {
			h.log.Error().Err(err).Msg("logout failed to clear session")
		}
	}
	return c.Redirect(http.StatusSeeOther, afterLogoutPath)
}

func (h *AuthHandler) render(c echo.Context, status int, name, title string, f *form.Form, flash string) error {
	p := h.layout.Page(c, title)
	p.Form = f
	return c.Render(status, name, p.WithFlash(web.FlashError, flash))
}
