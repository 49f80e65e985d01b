// Package lawbot is the HTTP client for the LawBot 360 backend API.
//
// Every request goes through a transport that attaches the visitor's bearer
// token (except for the chat and explain endpoints) and clears the visitor's
// session on a 401. Errors are never retried.
package lawbot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/lawbot360/web/internal/api/metrics"
)

const (
	defaultTimeout = 60 * time.Second
	maxErrorBody   = 64 << 10
)

// Config controls how the client reaches the backend.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Transport is the underlying round tripper. Defaults to
	// http.DefaultTransport.
	Transport http.RoundTripper
}

// Client implements ports.LawbotAPI.
type Client struct {
	base *url.URL
	http *http.Client
	log  zerolog.Logger
}

// New builds a Client for the backend at cfg.BaseURL.
func New(cfg Config, log zerolog.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("lawbot: parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("lawbot: base url %q must be absolute", cfg.BaseURL)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	rt := cfg.Transport
	if rt == nil {
		rt = http.DefaultTransport
	}

	log = log.With().Str("component", "lawbot_client").Logger()
	return &Client{
		base: base,
		http: &http.Client{
			Timeout:   timeout,
			Transport: &authTransport{base: rt, prefix: base.Path, log: log},
		},
		log: log,
	}, nil
}

// doJSON sends in as a JSON body (when non-nil) and decodes the response
// into out (when non-nil).
func (c *Client) doJSON(ctx context.Context, endpoint, method, path string, in, out any) error {
	var body io.Reader
	contentType := ""
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("lawbot %s: encode request: %w", endpoint, err)
		}
		body = bytes.NewReader(raw)
		contentType = "application/json"
	}
	return c.do(ctx, endpoint, method, path, body, contentType, out)
}

func (c *Client) do(ctx context.Context, endpoint, method, path string, body io.Reader, contentType string, out any) error {
	req, err := http.NewRequestWithContext(ctx, method, c.base.String()+path, body)
	if err != nil {
		return fmt.Errorf("lawbot %s: build request: %w", endpoint, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.http.Do(req)
	metrics.BackendRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.BackendRequestsTotal.WithLabelValues(endpoint, "error").Inc()
		c.log.Warn().Err(err).Str("endpoint", endpoint).Msg("backend request failed")
		return fmt.Errorf("%w: %s: %v", ErrUnreachable, endpoint, err)
	}
	defer resp.Body.Close()

	metrics.BackendRequestsTotal.WithLabelValues(endpoint, strconv.Itoa(resp.StatusCode)).Inc()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeError(endpoint, resp)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("lawbot %s: decode response: %w", endpoint, err)
	}
	return nil
}

type errorEnvelope struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func decodeError(endpoint string, resp *http.Response) error {
	apiErr := &APIError{Endpoint: endpoint, Status: resp.StatusCode}

	raw, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	var env errorEnvelope
	if json.Unmarshal(raw, &env) == nil {
		apiErr.Message = env.Error
		if apiErr.Message == "" {
			apiErr.Message = env.Message
		}
	}
	return apiErr
}
