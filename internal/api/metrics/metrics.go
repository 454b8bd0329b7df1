// Package metrics defines the custom Prometheus metrics of the AgriConnect
// storefront core. It is the single source of truth for metric names, labels
// and help strings; every metric registers itself with the default registry
// on first import.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "agriconnect"

// ── Cart metrics ──────────────────────────────────────────────────────────────

// CartMutationsTotal counts committed cart mutations.
// Label:
//   - op: "add", "remove", "set_quantity" or "clear"
var CartMutationsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_mutations_total",
		Help:      "Total number of cart mutations persisted, by operation.",
	},
	[]string{"op"},
)

// CartPersistErrorsTotal counts write-through failures that were rolled back.
var CartPersistErrorsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "cart_persist_errors_total",
		Help:      "Total number of cart snapshots the storage backend rejected.",
	},
)

// ── Session metrics ───────────────────────────────────────────────────────────

// SessionTransitionsTotal counts session state changes.
// Label:
//   - state: the state entered ("authenticated" or "anonymous")
var SessionTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "session_transitions_total",
		Help:      "Total number of session transitions, by target state.",
	},
	[]string{"state"},
)

// RemoteFailuresTotal counts backend calls that failed at the transport level.
// Label:
//   - operation: e.g. "me", "login", "logout", "place_order"
var RemoteFailuresTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "remote_failures_total",
		Help:      "Total number of backend calls that failed before a response was read.",
	},
	[]string{"operation"},
)

// ── Checkout metrics ──────────────────────────────────────────────────────────

// OrdersPlacedTotal counts orders acknowledged by the backend.
var OrdersPlacedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_placed_total",
		Help:      "Total number of orders placed through checkout.",
	},
)

// ── HTTP metrics ──────────────────────────────────────────────────────────────

// HTTPRequestDuration measures local API request latency.
// Labels:
//   - method: HTTP method
//   - route: echo route pattern (e.g. "/v1/cart/items/:id")
//   - code: response status code
var HTTPRequestDuration = promauto.NewHistogramVec(
	prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of local API requests.",
		Buckets:   prometheus.DefBuckets,
	},
	[]string{"method", "route", "code"},
)
