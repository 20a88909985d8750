package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// OrdersCreated counts orders that committed successfully.
	OrdersCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mboaconnect_orders_created_total",
		Help: "Number of orders created successfully.",
	})

	// OrderFailures counts rejected or rolled-back order attempts by reason.
	OrderFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "mboaconnect_order_failures_total",
		Help: "Number of failed order creation attempts.",
	}, []string{"reason"})

	// TransfersInitiated counts money transfers created.
	TransfersInitiated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mboaconnect_transfers_initiated_total",
		Help: "Number of money transfers initiated.",
	})

	// EmailFailures counts best-effort notification emails that failed.
	EmailFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "mboaconnect_email_failures_total",
		Help: "Number of notification emails that failed to send.",
	})
)
