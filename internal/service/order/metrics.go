package order

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	OrdersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total number of created orders",
		},
	)

	OrdersDeletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_deleted_total",
			Help: "Total number of deleted orders",
		},
	)

	OrderStatusTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_status_transitions_total",
			Help: "Total number of order status changes",
		},
		[]string{"from", "to"},
	)

	OrderValidationFailuresTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "order_validation_failures_total",
			Help: "Total number of rejected order requests",
		},
		[]string{"operation"},
	)
)
