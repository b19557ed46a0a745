package order_status_changed

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/IBM/sarama"
	"grubdash/internal/entities"
	orderservice "grubdash/internal/service/order"
	"grubdash/pkg/logger"
)

// statusChangedEvent is published by the kitchen and courier systems when an
// order moves along its lifecycle.
type statusChangedEvent struct {
	OrderID string `json:"order_id"`
	Status  string `json:"status"`
}

type Handler struct {
	service                  Service
	log                      handlerLogger
	messageProcessingTimeout time.Duration
}

func New(log handlerLogger, service Service, timeout time.Duration) *Handler {
	handlerLog := log.With(
		logger.NewField("handler", "order.status.changed"),
	)

	return &Handler{
		service:                  service,
		log:                      handlerLog,
		messageProcessingTimeout: timeout,
	}
}

func (h *Handler) Setup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

func (h *Handler) ConsumeClaim(sess sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok {
				h.log.Info("claim closed, leaving ConsumeClaim")
				return nil
			}

			if stop := h.processMessage(sess, message); stop {
				return nil
			}

		case <-sess.Context().Done():
			h.log.Info("session finished, leaving ConsumeClaim")
			return nil
		}
	}
}

// processMessage handles one record and reports whether consumption must
// stop. Records that can never succeed are marked so they are not redelivered.
func (h *Handler) processMessage(sess sarama.ConsumerGroupSession, message *sarama.ConsumerMessage) bool {
	ctx, cancel := context.WithTimeout(sess.Context(), h.messageProcessingTimeout)
	defer cancel()

	var event statusChangedEvent
	err := json.Unmarshal(message.Value, &event)
	if err != nil || event.OrderID == "" {
		h.log.With(
			logger.NewField("offset", message.Offset),
			logger.NewField("error", err),
		).Error("skip malformed status change")
		sess.MarkMessage(message, "")
		return false
	}

	msgLog := h.log.With(
		logger.NewField("order_id", event.OrderID),
		logger.NewField("status", event.Status),
		logger.NewField("offset", message.Offset),
	)

	updated, err := h.service.ChangeOrderStatus(ctx, event.OrderID, entities.OrderStatusType(event.Status))
	if err != nil {
		switch {
		case errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("status change interrupted, message will be redelivered")
			return true

		case errors.Is(err, orderservice.ErrOrderNotFound):
			msgLog.Warn("status change for unknown order")

		case errors.Is(err, orderservice.ErrValidation):
			msgLog.With(
				logger.NewField("error", err),
			).Warn("status change rejected")

		default:
			msgLog.With(
				logger.NewField("error", err),
			).Error("status change failed")
		}
		sess.MarkMessage(message, "")
		return false
	}

	msgLog.With(
		logger.NewField("current_status", updated.Status.String()),
	).Info("status change applied")

	sess.MarkMessage(message, "")
	return false
}
