package orders_snapshot

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"grubdash/internal/entities"
)

var OrdersByStatus = promauto.NewGaugeVec(
	prometheus.GaugeOpts{
		Name: "orders_current",
		Help: "Number of stored orders by status at the last snapshot",
	},
	[]string{"status"},
)

type Service interface {
	GetOrders(ctx context.Context) ([]entities.Order, error)
}

// OrdersSnapshot periodically publishes how many orders sit in each status.
type OrdersSnapshot struct {
	service  Service
	interval time.Duration
	gauge    *prometheus.GaugeVec
}

func NewOrdersSnapshot(service Service, interval time.Duration) *OrdersSnapshot {
	return NewOrdersSnapshotWithGauge(service, interval, OrdersByStatus)
}

func NewOrdersSnapshotWithGauge(service Service, interval time.Duration, gauge *prometheus.GaugeVec) *OrdersSnapshot {
	return &OrdersSnapshot{
		service:  service,
		interval: interval,
		gauge:    gauge,
	}
}

func (o *OrdersSnapshot) TTL() time.Duration {
	return o.interval
}

func (o *OrdersSnapshot) Do(ctx context.Context) error {
	ctxWithTimeout, cancel := context.WithTimeout(ctx, o.interval)
	defer cancel()

	orders, err := o.service.GetOrders(ctxWithTimeout)
	if err != nil {
		return fmt.Errorf("orders snapshot: %w", err)
	}

	counts := make(map[entities.OrderStatusType]int, len(entities.OrderStatuses))
	for _, order := range orders {
		counts[order.Status]++
	}

	for _, status := range entities.OrderStatuses {
		o.gauge.WithLabelValues(status.String()).Set(float64(counts[status]))
	}
	return nil
}

func (o *OrdersSnapshot) Info() string {
	return "orders snapshot"
}
