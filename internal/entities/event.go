package entities

import "time"

type OrderEventType string

const (
	OrderEventCreated OrderEventType = "order.created"
	OrderEventUpdated OrderEventType = "order.updated"
	OrderEventDeleted OrderEventType = "order.deleted"
)

func (t OrderEventType) String() string {
	return string(t)
}

type OrderEvent struct {
	Type       OrderEventType
	OrderID    string
	Status     OrderStatusType
	OccurredAt time.Time
}
