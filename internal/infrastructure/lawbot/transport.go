package lawbot

import (
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/lawbot360/web/internal/api/metrics"
	"github.com/lawbot360/web/internal/core/session"
)

// publicPrefixes are the endpoint families the backend serves without a
// bearer token. Requests under them never carry the Authorization header.
var publicPrefixes = []string{"/api/chat", "/api/explain"}

func isPublic(path string) bool {
	for _, p := range publicPrefixes {
		if strings.HasPrefix(path, p) {
			return true
		}
	}
	return false
}

// authTransport attaches the visitor's bearer token to outgoing requests and
// clears the visitor's session when the backend answers 401. The session
// handle travels in the request context (see session.NewContext).
// prefix is the path of the configured base URL; endpoints are matched
// against what follows it.
type authTransport struct {
	base   http.RoundTripper
	prefix string
	log    zerolog.Logger
}

func (t *authTransport) endpointPath(req *http.Request) string {
	return strings.TrimPrefix(req.URL.Path, t.prefix)
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	ctx := req.Context()
	h := session.FromContext(ctx)

	if h != nil && !isPublic(t.endpointPath(req)) {
		if token, ok := h.Token(ctx); ok {
			req = req.Clone(ctx)
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := t.base.RoundTrip(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode == http.StatusUnauthorized {
		metrics.SessionExpiriesTotal.Inc()
		if h != nil {
			if clearErr := h.Clear(ctx); clearErr != nil {
				t.log.Error().Err(clearErr).Str("path", req.URL.Path).Msg("failed to clear expired session")
			}
		}
		t.log.Info().Str("path", req.URL.Path).Msg("backend rejected credentials, session cleared")
	}

	return resp, nil
}
