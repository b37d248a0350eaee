// Package metrics defines and registers all custom Prometheus metrics for the
// Jabba Pizza web tier. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on import.
// HTTP request metrics come from echoprometheus and are wired in the router.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "pizza_web"

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionChecksTotal counts session-status checks.
// Label:
//   - result: "authenticated" or the failure kind ("status", "transport", "malformed", "canceled")
var SessionChecksTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_checks_total",
		Help:      "Total number of session-status checks, labelled by result.",
	},
	[]string{"result"},
)

// ── Auth metrics ──────────────────────────────────────────────────────────────

// AuthSubmissionsTotal counts login and registration submissions.
// Labels:
//   - action: "login" or "register"
//   - outcome: "success" or the failure kind
var AuthSubmissionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_submissions_total",
		Help:      "Total number of login and registration submissions, by outcome.",
	},
	[]string{"action", "outcome"},
)

// ── Backend metrics ───────────────────────────────────────────────────────────

// BackendRequestDuration measures calls to the external auth API.
// Labels:
//   - endpoint: "session", "login", "register" or "health"
//   - code: the HTTP status code, or "error" when no response arrived
var BackendRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "backend_request_duration_seconds",
		Help:      "Duration of requests to the auth backend.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"endpoint", "code"},
)
