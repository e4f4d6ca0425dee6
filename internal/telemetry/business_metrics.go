package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics holds Prometheus metrics for business-level observability.
type BusinessMetrics struct {
	// Cart
	CartOperations *prometheus.CounterVec
	CartValue      prometheus.Histogram

	// Checkout and orders
	OrdersCreated    prometheus.Counter
	OrderValue       prometheus.Histogram
	OrderItemCount   prometheus.Histogram
	OrdersPaid       prometheus.Counter
	OrdersDelivered  prometheus.Counter
	CheckoutRejected *prometheus.CounterVec
}

// NewBusinessMetrics creates and registers business metrics on the given
// registerer. Tests pass a fresh prometheus.NewRegistry() to avoid duplicate
// registration panics.
func NewBusinessMetrics(namespace string, reg prometheus.Registerer) *BusinessMetrics {
	if namespace == "" {
		namespace = "embla"
	}
	factory := promauto.With(reg)

	return &BusinessMetrics{
		CartOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "business",
				Name:      "cart_operations_total",
				Help:      "Cart mutations by operation (add, update, remove, clear)",
			},
			[]string{"operation"},
		),
		CartValue: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "business",
				Name:      "cart_value_dollars",
				Help:      "Cart total after each mutation",
				Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500},
			},
		),
		OrdersCreated: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "business",
				Name:      "orders_created_total",
				Help:      "Orders successfully placed at checkout",
			},
		),
		OrderValue: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "business",
				Name:      "order_value_dollars",
				Help:      "Order grand total at checkout",
				Buckets:   []float64{10, 25, 50, 100, 250, 500, 1000, 2500},
			},
		),
		OrderItemCount: factory.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "business",
				Name:      "order_item_count",
				Help:      "Number of units per order",
				Buckets:   []float64{1, 2, 3, 5, 10, 20, 50},
			},
		),
		OrdersPaid: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "business",
				Name:      "orders_paid_total",
				Help:      "Orders with confirmed payment",
			},
		),
		OrdersDelivered: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "business",
				Name:      "orders_delivered_total",
				Help:      "Orders marked delivered",
			},
		),
		CheckoutRejected: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "business",
				Name:      "checkout_rejected_total",
				Help:      "Checkout submissions rejected before order creation",
			},
			[]string{"reason"},
		),
	}
}
