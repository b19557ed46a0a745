//go:build wireinject
// +build wireinject

package app

import (
	"context"

	"github.com/google/wire"
	"grubdash/internal/pkg/config"
	orderService "grubdash/internal/service/order"
	"grubdash/pkg/logger"
)

// InitializeApplication for the HTTP service (cmd/service)
func InitializeApplication(
	ctx context.Context,
	log logger.Logger,
	storage *Storage,
	publisher orderService.EventPublisher,
	cfg *config.Config,
) (*Application, error) {
	wire.Build(
		provideRepository,
		provideTxManager,
		provideIDGenerator,
		provideOrderService,

		provideOrdersSnapshotTask,
		provideTaskList,
		provideBackgroundWorkers,

		wire.Struct(new(Application), "*"),

		wire.Bind(new(ServiceOrder), new(*orderService.Service)),
	)
	return &Application{}, nil
}

// InitializeKafkaWorkerApp for the status-changed consumer (cmd/worker-order-status-changed)
func InitializeKafkaWorkerApp(
	ctx context.Context,
	log logger.Logger,
	storage *Storage,
	publisher orderService.EventPublisher,
	cfg *config.Config,
) (*KafkaWorkerApp, error) {
	wire.Build(
		provideRepository,
		provideTxManager,
		provideIDGenerator,
		provideOrderService,

		wire.Struct(new(KafkaWorkerApp), "*"),
	)
	return nil, nil
}
