// Package metrics defines and registers all custom Prometheus metrics for the
// LawBot 360 web front-end. It is the single source of truth for metric
// names, labels, and help strings.
//
// Metrics are registered with the default registry on package init via
// promauto; GET /metrics exposes them.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "lawbot"

// ── Inbound HTTP ──────────────────────────────────────────────────────────────

// HTTPRequestsTotal counts requests served by the web tier.
// Labels:
//   - method: HTTP method
//   - route: the registered route pattern (e.g. "/dashboard"), not the raw path
//   - status: response status code
var HTTPRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests served, by method, route and status.",
	},
	[]string{"method", "route", "status"},
)

// HTTPRequestDuration measures request latency per route.
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Latency of HTTP requests served by the web tier.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route"},
)

// ── Backend calls ─────────────────────────────────────────────────────────────

// BackendRequestsTotal counts calls to the LawBot backend.
// Labels:
//   - endpoint: logical endpoint name (e.g. "auth_login", "chat")
//   - status: response status code, or "error" when no response was received
var BackendRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "backend_requests_total",
		Help:      "Total number of requests sent to the LawBot backend.",
	},
	[]string{"endpoint", "status"},
)

// BackendRequestDuration measures backend round-trip time.
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Round-trip duration of LawBot backend requests.",
		Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60},
	},
	[]string{"endpoint"},
)

// ── Sessions ──────────────────────────────────────────────────────────────────

// SessionExpiriesTotal counts sessions cleared because the backend answered 401.
var SessionExpiriesTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_expiries_total",
		Help:      "Total number of sessions cleared after an unauthorized backend response.",
	},
)

// AuthInitTotal counts auth-context initialisations.
// Label:
//   - result: "hydrated", "anonymous" or "failed"
var AuthInitTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_init_total",
		Help:      "Total number of auth context initialisations, by outcome.",
	},
	[]string{"result"},
)

// ── Forms ─────────────────────────────────────────────────────────────────────

// FormRejectionsTotal counts submissions blocked by client-side validation.
// Label:
//   - form: form name (e.g. "register", "contact")
var FormRejectionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "form_rejections_total",
		Help:      "Total number of form submissions blocked by validation.",
	},
	[]string{"form"},
)

// ContactMessagesTotal counts contact-page submissions.
// Label:
//   - result: "stored", "logged", "duplicate" or "error"
var ContactMessagesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "contact_messages_total",
		Help:      "Total number of contact messages received, by outcome.",
	},
	[]string{"result"},
)
