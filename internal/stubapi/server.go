// Package stubapi is an in-process stand-in for the LawBot backend. It
// speaks the same JSON contract with deterministic canned answers, so the
// web tier can be run and tested without the real service and its model
// providers.
package stubapi

import (
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/lawbot360/web/internal/core/ports"
)

// Config configures the stub backend.
type Config struct {
	JWTSecret string
	TokenTTL  time.Duration
	// BcryptCost defaults to bcrypt.DefaultCost. Tests lower it.
	BcryptCost int
	// ChatDisabled makes /api/chat answer 503 as when no model key is set.
	ChatDisabled bool
}

type errorBody struct {
	Error string `json:"error"`
}

// Server holds the stub's state. It is safe for concurrent use.
type Server struct {
	cfg   Config
	users *users
	log   zerolog.Logger

	mu          sync.Mutex
	contracts   int64
	reports     int64
	riskScores  []float64
	missingHits map[string]int
}

func New(cfg Config, log zerolog.Logger) *Server {
	return &Server{
		cfg:         cfg,
		users:       newUsers(cfg.JWTSecret, cfg.TokenTTL, cfg.BcryptCost),
		log:         log.With().Str("component", "stubapi").Logger(),
		missingHits: make(map[string]int),
	}
}

// Handler returns the echo instance serving the backend routes.
func (s *Server) Handler() *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomiddleware.Recover())

	api := e.Group("/api")
	api.POST("/auth/register", s.register)
	api.POST("/auth/login", s.login)
	api.GET("/auth/me", s.me, s.requireToken)
	api.POST("/chat/", s.chat)
	api.POST("/contracts/generate", s.generateContract, s.requireToken)
	api.POST("/verify/document", s.verifyDocument, s.requireToken)
	api.POST("/explain/", s.explain, s.requireToken)
	api.GET("/dashboard/metrics", s.dashboardMetrics, s.requireToken)

	return e
}

func badRequest(c echo.Context, msg string) error {
	return c.JSON(http.StatusBadRequest, errorBody{Error: msg})
}

type registerBody struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

func (s *Server) register(c echo.Context) error {
	var req registerBody
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Request body is required")
	}
	switch {
	case strings.TrimSpace(req.Name) == "":
		return badRequest(c, "Name is required")
	case strings.TrimSpace(req.Email) == "":
		return badRequest(c, "Email is required")
	case req.Password == "":
		return badRequest(c, "Password is required")
	case len(req.Password) < 6:
		return badRequest(c, "Password must be at least 6 characters")
	case !strings.Contains(req.Email, "@") || !strings.Contains(req.Email, "."):
		return badRequest(c, "Invalid email format")
	}

	user, err := s.users.register(req.Name, req.Email, req.Password, req.Role)
	if err != nil {
		if errors.Is(err, errUserExists) {
			return badRequest(c, "Email already registered")
		}
		return badRequest(c, "Registration failed: "+err.Error())
	}
	token, err := s.users.issue(user)
	if err != nil {
		return err
	}

	s.log.Info().Int64("user_id", user.ID).Msg("user registered")
	return c.JSON(http.StatusCreated, ports.AuthResponse{
		Message:     "User registered successfully",
		AccessToken: token,
		User:        user,
	})
}

func (s *Server) login(c echo.Context) error {
	var req ports.LoginRequest
	if err := c.Bind(&req); err != nil || req.Email == "" || req.Password == "" {
		return badRequest(c, "Email and password required")
	}

	user, err := s.users.login(req.Email, req.Password)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, errorBody{Error: "Invalid credentials"})
	}
	token, err := s.users.issue(user)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, ports.AuthResponse{AccessToken: token, User: user})
}

type meResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"created_at"`
}

func (s *Server) me(c echo.Context) error {
	id, _ := c.Get(userIDKey).(int64)
	acc, err := s.users.byUserID(id)
	if err != nil {
		return c.JSON(http.StatusNotFound, errorBody{Error: "User not found"})
	}
	return c.JSON(http.StatusOK, meResponse{
		ID:        acc.user.ID,
		Name:      acc.user.Name,
		Email:     acc.user.Email,
		Role:      acc.user.Role,
		CreatedAt: acc.createdAt.Format(time.RFC3339),
	})
}

func (s *Server) chat(c echo.Context) error {
	if s.cfg.ChatDisabled {
		return c.JSON(http.StatusServiceUnavailable, errorBody{
			Error: "OpenAI API key is not configured. Please set OPENAI_API_KEY in your environment variables or .env file.",
		})
	}
	var req ports.ChatRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	reply := fmt.Sprintf("You asked: %q. This is general legal information for educational purposes only, not legal advice. "+
		"Please consult a qualified lawyer for your specific situation.", req.Message)
	prompt := len(req.Messages) + 1
	return c.JSON(http.StatusOK, ports.ChatResponse{
		Message: reply,
		Usage:   &ports.ChatUsage{PromptTokens: prompt, CompletionTokens: 1, TotalTokens: prompt + 1},
	})
}

func (s *Server) generateContract(c echo.Context) error {
	var req ports.GenerateContractRequest
	if err := c.Bind(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.ContractType == "" || len(req.Parties) == 0 {
		return badRequest(c, "contract_type and parties are required")
	}

	s.mu.Lock()
	s.contracts++
	id := s.contracts
	s.mu.Unlock()

	title := req.ContractType + " Agreement"
	md := fmt.Sprintf("# %s\n\nThis %s is entered into by %s under the laws of %s.\n\n## 1. Confidentiality\n\nEach party shall keep the other party's information confidential.\n",
		title, title, strings.Join(req.Parties, " and "), req.Jurisdiction)

	return c.JSON(http.StatusOK, ports.ContractResult{
		ContractID: id,
		PDFURL:     fmt.Sprintf("/api/contracts/%d/pdf", id),
		DOCXURL:    fmt.Sprintf("/api/contracts/%d/docx", id),
		Summary: &ports.ContractSummary{
			ContractType: req.ContractType,
			Parties:      req.Parties,
			KeyTerms:     req.Terms,
		},
		Markdown: md,
	})
}

var allowedUploads = map[string]bool{".pdf": true, ".docx": true}

func (s *Server) verifyDocument(c echo.Context) error {
	fh, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "No file provided")
	}
	if fh.Filename == "" {
		return badRequest(c, "No file selected")
	}
	if !allowedUploads[strings.ToLower(filepath.Ext(fh.Filename))] {
		return badRequest(c, "Invalid file type. Allowed: PDF, DOCX")
	}

	findings := []ports.VerificationFinding{
		{Clause: "Termination", Issue: "No termination clause found", Severity: "high", Suggestion: "Add a termination clause with a notice period."},
		{Clause: "Governing Law", Issue: "Governing law is not stated", Severity: "medium"},
	}
	score := 72.5 - float64(fh.Size%20)

	s.mu.Lock()
	s.reports++
	id := s.reports
	s.riskScores = append(s.riskScores, score)
	for _, f := range findings {
		s.missingHits[f.Clause]++
	}
	s.mu.Unlock()

	return c.JSON(http.StatusOK, ports.VerificationResult{
		ReportID:    id,
		RiskScore:   score,
		Findings:    findings,
		Suggestions: []string{"Review the liability cap.", "Confirm the dispute resolution forum for " + c.FormValue("jurisdiction") + "."},
	})
}

func (s *Server) explain(c echo.Context) error {
	var req ports.ExplainRequest
	if err := c.Bind(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		return badRequest(c, "text is required")
	}
	return c.JSON(http.StatusOK, ports.ExplainResult{
		Explanation: fmt.Sprintf("**In plain terms:** %s\n\nThis applies under %s law.", req.Text, req.Jurisdiction),
		Refs:        []string{"ICA-10"},
	})
}

var riskRanges = [][2]float64{{0, 30}, {31, 50}, {51, 70}, {71, 85}, {86, 100}}

func (s *Server) dashboardMetrics(c echo.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := ports.DashboardMetrics{
		Counts:            ports.MetricCounts{Contracts: int(s.contracts), Verifications: int(s.reports)},
		TopMissingClauses: []string{},
		ComplianceScores:  []ports.ComplianceScore{},
	}
	for _, r := range riskRanges {
		b := ports.RiskBucket{Range: fmt.Sprintf("%.0f-%.0f", r[0], r[1])}
		for _, score := range s.riskScores {
			if score >= r[0] && score <= r[1] {
				b.Count++
			}
		}
		out.RiskHistogram = append(out.RiskHistogram, b)
	}
	for clause := range s.missingHits {
		out.TopMissingClauses = append(out.TopMissingClauses, clause)
	}
	sortByHits(out.TopMissingClauses, s.missingHits)
	if len(out.TopMissingClauses) > 5 {
		out.TopMissingClauses = out.TopMissingClauses[:5]
	}
	if n := len(s.riskScores); n > 0 {
		var sum float64
		for _, v := range s.riskScores {
			sum += v
		}
		out.ComplianceScores = append(out.ComplianceScores, ports.ComplianceScore{
			Month:        time.Now().UTC().Format("2006-01"),
			AvgRiskScore: sum / float64(n),
		})
	}
	return c.JSON(http.StatusOK, out)
}

func sortByHits(clauses []string, hits map[string]int) {
	sort.Slice(clauses, func(i, j int) bool {
		if hits[clauses[i]] != hits[clauses[j]] {
			return hits[clauses[i]] > hits[clauses[j]]
		}
		return clauses[i] < clauses[j]
	})
}
