package metrics

import "github.com/prometheus/client_golang/prometheus"

// Prometheus metrics for the order and payment flows.
var (
	OrdersPlacedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_placed_total",
			Help: "Total number of COD orders placed",
		},
	)

	OrdersCanceledTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_canceled_total",
			Help: "Total number of orders canceled",
		},
	)

	OrderStatusUpdatesTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "order_status_updates_total",
			Help: "Total number of manager status transitions applied",
		},
	)

	CheckoutSessionsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "checkout_sessions_created_total",
			Help: "Total number of gateway checkout sessions created",
		},
	)

	PaymentsReconciledTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "payments_reconciled_total",
			Help: "Total number of paid sessions materialized into orders",
		},
	)

	SessionSweepsTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "session_sweeps_total",
			Help: "Total number of checkout session sweep passes",
		},
	)

	ReconcileDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "payment_reconcile_duration_seconds",
			Help:    "Duration of payment reconciliation calls",
			Buckets: prometheus.DefBuckets,
		},
	)
)

var registered = false

// Register registers all metrics with the default registry. Safe to call once.
func Register() {
	if registered {
		return
	}
	registered = true
	prometheus.MustRegister(OrdersPlacedTotal)
	prometheus.MustRegister(OrdersCanceledTotal)
	prometheus.MustRegister(OrderStatusUpdatesTotal)
	prometheus.MustRegister(CheckoutSessionsTotal)
	prometheus.MustRegister(PaymentsReconciledTotal)
	prometheus.MustRegister(SessionSweepsTotal)
	prometheus.MustRegister(ReconcileDuration)
}
