package ports

import (
	"context"
	"io"

	"github.com/lawbot360/web/internal/core/domain"
)

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role,omitempty"`
}

// AuthResponse is returned by login and registration.
type AuthResponse struct {
	AccessToken string       `json:"access_token"`
	User        *domain.User `json:"user"`
	Message     string       `json:"message,omitempty"`
}

// AuthAPI is the subset of the backend used by the auth service.
type AuthAPI interface {
	Login(ctx context.Context, req LoginRequest) (*AuthResponse, error)
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Me(ctx context.Context) (*domain.User, error)
}

// ChatMessage is one turn of the conversation sent to the assistant.
type ChatMessage struct {
	Role    string `json:"role" validate:"oneof=user assistant"`
	Content string `json:"content" validate:"max=20000"`
}

type ChatRequest struct {
	Messages []ChatMessage `json:"messages"`
	Message  string        `json:"message"`
}

type ChatUsage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}

type ChatResponse struct {
	Message string     `json:"message"`
	Usage   *ChatUsage `json:"usage,omitempty"`
}

type GenerateContractRequest struct {
	ContractType string         `json:"contract_type"`
	Parties      []string       `json:"parties"`
	Terms        map[string]any `json:"terms"`
	Jurisdiction string         `json:"jurisdiction"`
	Language     string         `json:"language"`
}

type ContractSummary struct {
	ContractType string         `json:"contract_type,omitempty"`
	Parties      []string       `json:"parties,omitempty"`
	KeyTerms     map[string]any `json:"key_terms,omitempty"`
}

type ContractResult struct {
	ContractID int64            `json:"contract_id"`
	HTML       string           `json:"html,omitempty"`
	PDFURL     string           `json:"pdf_url,omitempty"`
	DOCXURL    string           `json:"docx_url,omitempty"`
	Summary    *ContractSummary `json:"summary,omitempty"`
	Markdown   string           `json:"markdown,omitempty"`
}

// VerifyDocumentRequest describes a multipart upload to /api/verify/document.
type VerifyDocumentRequest struct {
	Filename     string
	Content      io.Reader
	Jurisdiction string
	Language     string
}

type VerificationFinding struct {
	Clause     string `json:"clause"`
	Issue      string `json:"issue"`
	Severity   string `json:"severity"`
	Suggestion string `json:"suggestion,omitempty"`
}

type VerificationResult struct {
	ReportID      int64                 `json:"report_id"`
	RiskScore     float64               `json:"risk_score"`
	Findings      []VerificationFinding `json:"findings"`
	Suggestions   []string              `json:"suggestions"`
	SummaryPDFURL string                `json:"summary_pdf_url,omitempty"`
}

type ExplainRequest struct {
	Text         string `json:"text"`
	Jurisdiction string `json:"jurisdiction"`
	Language     string `json:"language"`
}

type ExplainResult struct {
	Explanation string   `json:"explanation"`
	Refs        []string `json:"refs,omitempty"`
}

type MetricCounts struct {
	Contracts     int `json:"contracts"`
	Verifications int `json:"verifications"`
}

type RiskBucket struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

type ComplianceScore struct {
	Month        string  `json:"month"`
	AvgRiskScore float64 `json:"avg_risk_score"`
}

type DashboardMetrics struct {
	Counts            MetricCounts      `json:"counts"`
	RiskHistogram     []RiskBucket      `json:"risk_histogram"`
	TopMissingClauses []string          `json:"top_missing_clauses"`
	ComplianceScores  []ComplianceScore `json:"compliance_scores"`
}

// LawbotAPI is the full backend surface consumed by the page handlers.
type LawbotAPI interface {
	AuthAPI
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	GenerateContract(ctx context.Context, req GenerateContractRequest) (*ContractResult, error)
	VerifyDocument(ctx context.Context, req VerifyDocumentRequest) (*VerificationResult, error)
	Explain(ctx context.Context, req ExplainRequest) (*ExplainResult, error)
	DashboardMetrics(ctx context.Context) (*DashboardMetrics, error)
}
