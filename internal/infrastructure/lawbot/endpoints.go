package lawbot

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/lawbot360/web/internal/core/domain"
	"github.com/lawbot360/web/internal/core/ports"
)

// Backend paths.
const (
	PathLogin            = "/api/auth/login"
	PathRegister         = "/api/auth/register"
	PathMe               = "/api/auth/me"
	PathChat             = "/api/chat/"
	PathGenerateContract = "/api/contracts/generate"
	PathVerifyDocument   = "/api/verify/document"
	PathExplain          = "/api/explain/"
	PathDashboardMetrics = "/api/dashboard/metrics"
)

var _ ports.LawbotAPI = (*Client)(nil)

func (c *Client) Login(ctx context.Context, req ports.LoginRequest) (*ports.AuthResponse, error) {
	var out ports.AuthResponse
	if err := c.doJSON(ctx, "auth_login", http.MethodPost, PathLogin, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Register(ctx context.Context, req ports.RegisterRequest) (*ports.AuthResponse, error) {
	var out ports.AuthResponse
	if err := c.doJSON(ctx, "auth_register", http.MethodPost, PathRegister, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Me returns the profile of the token holder. Nothing is cached.
func (c *Client) Me(ctx context.Context) (*domain.User, error) {
	var out domain.User
	if err := c.doJSON(ctx, "auth_me", http.MethodGet, PathMe, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Chat(ctx context.Context, req ports.ChatRequest) (*ports.ChatResponse, error) {
	if req.Messages == nil {
		req.Messages = []ports.ChatMessage{}
	}
	var out ports.ChatResponse
	if err := c.doJSON(ctx, "chat", http.MethodPost, PathChat, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GenerateContract(ctx context.Context, req ports.GenerateContractRequest) (*ports.ContractResult, error) {
	var out ports.ContractResult
	if err := c.doJSON(ctx, "contract_generate", http.MethodPost, PathGenerateContract, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyDocument uploads the document as multipart/form-data with the fields
// file, jurisdiction and language.
func (c *Client) VerifyDocument(ctx context.Context, req ports.VerifyDocumentRequest) (*ports.VerificationResult, error) {
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("file", req.Filename)
	if err != nil {
		return nil, fmt.Errorf("lawbot verify: create form file: %w", err)
	}
	if _, err := io.Copy(part, req.Content); err != nil {
		return nil, fmt.Errorf("lawbot verify: copy file data: %w", err)
	}
	if err := writer.WriteField("jurisdiction", req.Jurisdiction); err != nil {
		return nil, fmt.Errorf("lawbot verify: write jurisdiction: %w", err)
	}
	if err := writer.WriteField("language", req.Language); err != nil {
		return nil, fmt.Errorf("lawbot verify: write language: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("lawbot verify: close multipart writer: %w", err)
	}

	var out ports.VerificationResult
	if err := c.do(ctx, "verify_document", http.MethodPost, PathVerifyDocument, body, writer.FormDataContentType(), &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) Explain(ctx context.Context, req ports.ExplainRequest) (*ports.ExplainResult, error) {
	var out ports.ExplainResult
	if err := c.doJSON(ctx, "explain", http.MethodPost, PathExplain, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) DashboardMetrics(ctx context.Context) (*ports.DashboardMetrics, error) {
	var out ports.DashboardMetrics
	if err := c.doJSON(ctx, "dashboard_metrics", http.MethodGet, PathDashboardMetrics, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
