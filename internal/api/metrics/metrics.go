// Package metrics defines and registers all custom Prometheus metrics for the
// metro console gateway. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics register with the default Prometheus registry at import time via
// promauto; the router exposes them on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "console"

// ── Session metrics ───────────────────────────────────────────────────────────

// AuthAttemptsTotal counts login and registration attempts.
// Labels:
//   - operation: "login" or "register"
//   - result: "success" or "failure"
var AuthAttemptsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "auth_attempts_total",
		Help:      "Total number of login/registration attempts, by outcome.",
	},
	[]string{"operation", "result"},
)

// SessionInvalidationsTotal counts sessions torn down by an upstream 401.
// Label:
//   - surface: "general" or "admin", whichever client surface saw the 401
var SessionInvalidationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_invalidations_total",
		Help:      "Total number of sessions invalidated by an upstream 401 response.",
	},
	[]string{"surface"},
)

// ── Collaborator metrics ──────────────────────────────────────────────────────

// UpstreamRequestsTotal counts requests sent to the metro API.
// Labels:
//   - surface: "general" or "admin"
//   - method:  HTTP method
//   - status:  numeric response status, or "error" when no response arrived
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests issued to the metro API.",
	},
	[]string{"surface", "method", "status"},
)

// UpstreamRequestDuration measures round-trip time to the metro API.
// Label:
//   - surface: "general" or "admin"
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Round-trip duration of metro API requests.",
		Buckets:   prometheus.DefBuckets, // .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10
	},
	[]string{"surface"},
)

// ── Status board metrics ──────────────────────────────────────────────────────

// StatusCacheTotal counts service-status cache lookups.
// Label:
//   - result: "hit" or "miss"
var StatusCacheTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "status_cache_total",
		Help:      "Total number of status-board cache lookups, by result.",
	},
	[]string{"result"},
)
