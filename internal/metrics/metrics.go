// Package metrics defines and registers all custom Prometheus metrics of the
// storefront console. It is the single source of truth for metric names,
// labels, and help strings.
//
// Metrics are registered with the default Prometheus registry on import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "storefront"

// ── Remote API metrics ────────────────────────────────────────────────────────

// UpstreamRequestsTotal counts calls made to the remote storefront API.
// Labels:
//   - operation: client operation name (e.g. "cart.get", "users.login")
//   - outcome: "ok", "unauthorized", "client_error", "server_error", "transport" or "throttled"
var UpstreamRequestsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "upstream_requests_total",
		Help:      "Total number of requests sent to the remote storefront API.",
	},
	[]string{"operation", "outcome"},
)

// UpstreamRequestDuration measures one round trip to the remote API.
var UpstreamRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "upstream_request_duration_seconds",
		Help:      "Duration of requests sent to the remote storefront API.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"operation"},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionTransitionsTotal counts session state changes.
// Labels:
//   - to: "authenticated" or "anonymous"
//   - reason: "login", "logout", "restore", "unauthorized", "expired"
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_transitions_total",
		Help:      "Total number of session state transitions.",
	},
	[]string{"to", "reason"},
)

// ── Checkout metrics ──────────────────────────────────────────────────────────

// PaymentReturnsTotal counts gateway returns by result ("success" / "failure").
var PaymentReturnsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "payment_returns_total",
		Help:      "Total number of payment gateway returns handled.",
	},
	[]string{"result"},
)

// PriceDivergenceTotal counts carts whose remote totals disagree with the
// canonical itemsPrice + shippingPrice + taxPrice formula.
var PriceDivergenceTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "price_divergence_total",
		Help:      "Total number of carts whose remote totals diverged from the canonical formula.",
	},
)
