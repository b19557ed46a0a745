package order_events

import (
	"context"
	"time"

	"github.com/IBM/sarama"
	"grubdash/internal/entities"
	"grubdash/pkg/logger"
	retrierconfig "grubdash/pkg/retrier"
	"grubdash/pkg/retrier/backoff_adapter"
)

const (
	initialInterval = 50 * time.Millisecond
	maxInterval     = 500 * time.Millisecond
	maxElapsedTime  = 2 * time.Second
	randomization   = 0.5
	multiplier      = 2.0
	maxRetries      = 3
)

const (
	resultOK     = "ok"
	resultFailed = "failed"
)

// Publisher writes order lifecycle events to Kafka. Publishing is best
// effort: a failure is logged and counted, never returned to the caller.
type Publisher struct {
	log      handlerLogger
	producer producer
	retrier  retrier
	topic    string
}

func New(log handlerLogger, producer producer, topic string) *Publisher {
	retryConfig := retrierconfig.Config{
		InitialInterval: initialInterval,
		MaxInterval:     maxInterval,
		MaxElapsedTime:  maxElapsedTime,
		Randomization:   randomization,
		Multiplier:      multiplier,
		MaxRetries:      maxRetries,
		ShouldRetry:     retrierconfig.RetryUnless(sarama.ErrMessageSizeTooLarge, sarama.ErrInvalidMessage),
	}

	return NewWithRetrier(log, producer, topic, backoff_adapter.New(retryConfig))
}

func NewWithRetrier(log handlerLogger, producer producer, topic string, retrier retrier) *Publisher {
	return &Publisher{
		log: log.With(
			logger.NewField("topic", topic),
		),
		producer: producer,
		retrier:  retrier,
		topic:    topic,
	}
}

func (p *Publisher) Publish(ctx context.Context, event entities.OrderEvent) {
	eventLog := p.log.With(
		logger.NewField("event_type", event.Type.String()),
		logger.NewField("order_id", event.OrderID),
	)

	msg, err := toMessage(p.topic, event)
	if err != nil {
		GatewayPublishedTotal.WithLabelValues(event.Type.String(), resultFailed).Inc()
		eventLog.With(
			logger.NewField("error", err),
		).Error("encode order event")
		return
	}

	var (
		attempt   uint64
		partition int32
		offset    int64
	)
	start := time.Now()

	err = p.retrier.ExecuteWithContext(ctx, func(context.Context) error {
		attempt++
		var err error
		partition, offset, err = p.producer.SendMessage(msg)
		return err
	})

	GatewayPublishDuration.WithLabelValues(event.Type.String()).Observe(time.Since(start).Seconds())
	if attempt > 1 {
		GatewayRetriesTotal.WithLabelValues(event.Type.String()).Inc()
	}

	if err != nil {
		GatewayPublishedTotal.WithLabelValues(event.Type.String(), resultFailed).Inc()
		eventLog.With(
			logger.NewField("attempts", attempt),
			logger.NewField("error", err),
		).Error("publish order event")
		return
	}

	GatewayPublishedTotal.WithLabelValues(event.Type.String(), resultOK).Inc()
	eventLog.With(
		logger.NewField("partition", partition),
		logger.NewField("offset", offset),
	).Info("order event published")
}

// Noop drops every event. It stands in when no brokers are configured.
type Noop struct{}

func (Noop) Publish(context.Context, entities.OrderEvent) {}
