package order_events

import (
	"encoding/json"
	"time"

	"github.com/IBM/sarama"
	"grubdash/internal/entities"
)

const headerEventType = "event-type"

type orderEventMessage struct {
	Type       string    `json:"type"`
	OrderID    string    `json:"order_id"`
	Status     string    `json:"status"`
	OccurredAt time.Time `json:"occurred_at"`
}

// toMessage keys by order id so every event of one order lands on the same
// partition in publish order.
func toMessage(topic string, event entities.OrderEvent) (*sarama.ProducerMessage, error) {
	payload, err := json.Marshal(orderEventMessage{
		Type:       event.Type.String(),
		OrderID:    event.OrderID,
		Status:     event.Status.String(),
		OccurredAt: event.OccurredAt.UTC(),
	})
	if err != nil {
		return nil, err
	}

	return &sarama.ProducerMessage{
		Topic: topic,
		Key:   sarama.StringEncoder(event.OrderID),
		Value: sarama.ByteEncoder(payload),
		Headers: []sarama.RecordHeader{
			{Key: []byte(headerEventType), Value: []byte(event.Type.String())},
		},
		Timestamp: event.OccurredAt,
	}, nil
}
