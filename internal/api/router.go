package api

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/lawbot360/web/internal/api/handler"
	"github.com/lawbot360/web/internal/api/middleware"
	"github.com/lawbot360/web/internal/core/ports"
	"github.com/lawbot360/web/internal/core/session"
	"github.com/lawbot360/web/internal/infrastructure/http/handlers"
	"github.com/lawbot360/web/internal/web"
)

// uploadSlack leaves room for the non-file fields of the verify form.
const uploadSlack = 1 << 20

// Deps carries everything the router wires into handlers.
type Deps struct {
	Sessions      session.Store
	SessionConfig middleware.SessionConfig
	Auth          ports.AuthService
	API           ports.LawbotAPI
	Contacts      handler.ContactSubmitter
	Checks        []handlers.Check
	MaxUploadSize int64
	Log           zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) (*echo.Echo, error) {
	renderer, err := web.NewRenderer()
	if err != nil {
		return nil, err
	}
	nav, err := web.DefaultNavigation()
	if err != nil {
		return nil, fmt.Errorf("load navigation: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Renderer = renderer
	e.Validator = handler.NewValidator()

	layout := handler.NewLayout(nav)
	e.HTTPErrorHandler = NewHTTPErrorHandler(layout, d.SessionConfig, d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))
	e.Use(middleware.Metrics())

	// --- Operational endpoints (no session) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(d.Checks...)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.StaticFS("/static", web.Static())
	e.POST("/validate/:form/:field", handler.ValidateField)

	// --- Dependencies ---
	pageHandler := handler.NewPageHandler(layout)
	authHandler := handler.NewAuthHandler(layout, d.Log)
	chatHandler := handler.NewChatHandler(d.API, layout, d.Log)
	contractHandler := handler.NewContractHandler(d.API, layout, d.Log)
	verifyHandler := handler.NewVerifyHandler(d.API, layout, d.MaxUploadSize, d.Log)
	explainHandler := handler.NewExplainHandler(d.API, layout)
	dashboardHandler := handler.NewDashboardHandler(d.API, layout)
	contactHandler := handler.NewContactHandler(d.Contacts, layout, d.Log)

	// --- Pages ---
	pages := e.Group("",
		middleware.Session(d.Sessions, d.SessionConfig, d.Log),
		middleware.LoadAuth(d.Auth, d.Log),
	)

	pages.GET("/", pageHandler.Home)
	pages.GET("/login", authHandler.LoginForm)
	pages.POST("/login", authHandler.Login)
	pages.GET("/register", authHandler.RegisterForm)
	pages.POST("/register", authHandler.Register)
	pages.POST("/logout", authHandler.Logout)

	pages.GET("/chat", chatHandler.Show)
	pages.POST("/chat", chatHandler.Send)
	pages.GET("/mission", pageHandler.Document("mission", "Our Mission"))
	pages.GET("/about", pageHandler.Document("about", "About Us"))
	pages.GET("/terms", pageHandler.Document("terms", "Terms & Conditions"))
	pages.GET("/contact", contactHandler.Show)
	pages.POST("/contact", contactHandler.Send)

	// --- Protected pages ---
	guard := middleware.RequireAuth(loginPath, pageHandler.Loading)

	pages.GET("/dashboard", dashboardHandler.Show, guard)
	pages.GET("/create", contractHandler.Show, guard)
	pages.POST("/create", contractHandler.Generate, guard)
	pages.GET("/verify", verifyHandler.Show, guard)
	pages.POST("/verify", verifyHandler.Verify, guard, bodyLimit(d.MaxUploadSize))
	pages.GET("/explain", explainHandler.Show, guard)
	pages.POST("/explain", explainHandler.Explain, guard)
	pages.GET("/templates", pageHandler.Templates, guard)
	pages.GET("/settings", pageHandler.Settings, guard)

	pages.RouteNotFound("/*", pageHandler.NotFound)

	return e, nil
}

func bodyLimit(maxUpload int64) echo.MiddlewareFunc {
	if maxUpload <= 0 {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	return echomiddleware.BodyLimit(fmt.Sprintf("%dB", maxUpload+uploadSlack))
}

func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		Skipper: func(c echo.Context) bool {
			p := c.Request().URL.Path
			return p == "/health" || p == "/metrics"
		},
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Status >= http.StatusInternalServerError {
				ev = log.Error().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}

