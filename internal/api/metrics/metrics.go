// Package metrics defines and registers all custom Prometheus metrics for the
// ordering API. It is the single source of truth for metric names, labels, and
// help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "ordering"

// ── Order metrics ─────────────────────────────────────────────────────────────

// OrdersCreatedTotal counts successfully created orders.
// Label:
//   - payment_method: the method chosen at checkout (e.g. "cod", "online")
var OrdersCreatedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_created_total",
		Help:      "Total number of orders created, by payment method.",
	},
	[]string{"payment_method"},
)

// OrdersRejectedTotal counts orders rejected at validation.
// Label:
//   - reason: short failure class (e.g. "out_of_stock", "inventory", "city_not_served")
var OrdersRejectedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_rejected_total",
		Help:      "Total number of rejected order attempts, by reason.",
	},
	[]string{"reason"},
)

// OrdersTotalMismatchTotal counts orders whose client-submitted totals diverged
// from the server computation beyond tolerance. Server values always win; this
// counter exists to spot misbehaving clients.
var OrdersTotalMismatchTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "orders_total_mismatch_total",
		Help:      "Total number of orders whose client totals diverged from the server computation.",
	},
)

// ── Pricing metrics ───────────────────────────────────────────────────────────

// QuotesIssuedTotal counts delivery quotes by decision path.
// Label:
//   - path: "registry" (known city), "free" (threshold met), "custom"
//     (explicit custom location), "geocoded" (distance-based suggestion),
//     "fallback" (geocoding failed, max tier applied)
var QuotesIssuedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "delivery_quotes_total",
		Help:      "Total number of delivery quotes issued, by decision path.",
	},
	[]string{"path"},
)

// GeocodeLookupsTotal counts geocoding provider lookups.
// Label:
//   - result: "hit" (resolved), "miss" (not found or failed), "cached"
var GeocodeLookupsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "geocode_lookups_total",
		Help:      "Total number of geocoding lookups, by result.",
	},
	[]string{"result"},
)

// ── Notification metrics ──────────────────────────────────────────────────────

// NotificationsSentTotal counts customer notifications handed to the notifier.
// Label:
//   - kind: "order_confirmed", "status_updated", "city_approved"
var NotificationsSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Total number of customer notifications dispatched, by kind.",
	},
	[]string{"kind"},
)

// NotificationQueueDepth tracks pending notifications per dispatcher worker.
// Label:
//   - worker_id: numeric worker index (e.g. "0", "1", …)
var NotificationQueueDepth = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "notification_queue_depth",
		Help:      "Current number of notifications pending in each dispatcher worker channel.",
	},
	[]string{"worker_id"},
)
