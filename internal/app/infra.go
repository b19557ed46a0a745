package app

import (
	"context"
	"fmt"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"grubdash/internal/gateway/kafka/order_events"
	"grubdash/internal/pkg/config"
	"grubdash/internal/pkg/kafka"
	"grubdash/internal/pkg/postgres"
	orderService "grubdash/internal/service/order"
	"grubdash/pkg/logger"
)

// OpenStorage connects the store named by cfg.Orders.Store. The returned func
// releases it.
func OpenStorage(ctx context.Context, log logger.Logger, cfg *config.Config) (*Storage, func(), error) {
	if cfg.Orders.Store != config.StorePostgres {
		log.Info("using in-memory order store")
		return NewMemoryStorage(), func() {}, nil
	}

	pool, err := postgres.NewConnPool(ctx, log, &cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("database: %w", err)
	}

	err = postgres.Migrate(ctx, log, pool)
	if err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("migrations: %w", err)
	}

	return NewPostgresStorage(pool, pgxv5.DefaultCtxGetter), pool.Close, nil
}

// OpenPublisher returns a Kafka publisher when brokers are configured and a
// no-op one otherwise.
func OpenPublisher(ctx context.Context, log logger.Logger, cfg *config.Config) (orderService.EventPublisher, func(), error) {
	if len(cfg.Kafka.BrokerList()) == 0 || cfg.Kafka.TopicOrderEvents == "" {
		log.Info("order events publishing disabled")
		return order_events.Noop{}, func() {}, nil
	}

	producer, err := kafka.NewSyncProducer(ctx, log, &cfg.Kafka)
	if err != nil {
		return nil, nil, fmt.Errorf("kafka producer: %w", err)
	}

	closeProducer := func() {
		if err := producer.Close(); err != nil {
			log.Error("failed to close kafka producer", logger.NewField("error", err))
		}
	}

	return order_events.New(log, producer, cfg.Kafka.TopicOrderEvents), closeProducer, nil
}
