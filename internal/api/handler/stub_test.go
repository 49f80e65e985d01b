package handler

import (
	"context"
	"io"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/lawbot360/web/internal/core/domain"
	"github.com/lawbot360/web/internal/core/ports"
	"github.com/lawbot360/web/internal/web"
)

// stubAPI is a hand-written ports.LawbotAPI. Unset results come back as
// zero values.
type stubAPI struct {
	chatResp *ports.ChatResponse
	chatErr  error
	lastChat ports.ChatRequest

	contract    *ports.ContractResult
	contractErr error
	lastDraft   ports.GenerateContractRequest

	verify     *ports.VerificationResult
	verifyErr  error
	uploaded   string
	verifyCall int

	explain    *ports.ExplainResult
	explainErr error

	metrics    *ports.DashboardMetrics
	metricsErr error

	calls int
}

func (s *stubAPI) Login(context.Context, ports.LoginRequest) (*ports.AuthResponse, error) {
	s.calls++
	return &ports.AuthResponse{}, nil
}

func (s *stubAPI) Register(context.Context, ports.RegisterRequest) (*ports.AuthResponse, error) {
	s.calls++
	return &ports.AuthResponse{}, nil
}

func (s *stubAPI) Me(context.Context) (*domain.User, error) {
	s.calls++
	return &domain.User{}, nil
}

func (s *stubAPI) Chat(_ context.Context, req ports.ChatRequest) (*ports.ChatResponse, error) {
	s.calls++
	s.lastChat = req
	if s.chatErr != nil {
		return nil, s.chatErr
	}
	if s.chatResp == nil {
		return &ports.ChatResponse{}, nil
	}
	return s.chatResp, nil
}

func (s *stubAPI) GenerateContract(_ context.Context, req ports.GenerateContractRequest) (*ports.ContractResult, error) {
	s.calls++
	s.lastDraft = req
	return s.contract, s.contractErr
}

func (s *stubAPI) VerifyDocument(_ context.Context, req ports.VerifyDocumentRequest) (*ports.VerificationResult, error) {
	s.calls++
	s.verifyCall++
	b, _ := io.ReadAll(req.Content)
	s.uploaded = req.Filename + ":" + string(b)
	return s.verify, s.verifyErr
}

func (s *stubAPI) Explain(context.Context, ports.ExplainRequest) (*ports.ExplainResult, error) {
	s.calls++
	return s.explain, s.explainErr
}

func (s *stubAPI) DashboardMetrics(context.Context) (*ports.DashboardMetrics, error) {
	s.calls++
	return s.metrics, s.metricsErr
}

// newEcho returns an echo instance with the real renderer and validator.
func newEcho(t *testing.T) *echo.Echo {
	t.Helper()
	r, err := web.NewRenderer()
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	e := echo.New()
	e.Renderer = r
	e.Validator = NewValidator()
	return e
}

func testLayout(t *testing.T) *Layout {
	t.Helper()
	nav, err := web.DefaultNavigation()
	if err != nil {
		t.Fatalf("DefaultNavigation: %v", err)
	}
	return NewLayout(nav)
}
