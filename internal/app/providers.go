package app

import (
	"context"

	"github.com/avito-tech/go-transaction-manager/pgxv5"
	"github.com/jackc/pgx/v5/pgxpool"
	"grubdash/internal/entities"
	"grubdash/internal/handlers/rest/healthcheck_head"
	"grubdash/internal/handlers/rest/order_delete"
	"grubdash/internal/handlers/rest/order_get"
	"grubdash/internal/handlers/rest/order_post"
	"grubdash/internal/handlers/rest/order_put"
	"grubdash/internal/handlers/rest/orders_get"
	"grubdash/internal/handlers/tasks/orders_snapshot"
	"grubdash/internal/pkg/config"
	"grubdash/internal/repository/memory"
	orderRepo "grubdash/internal/repository/order"
	orderService "grubdash/internal/service/order"
	"grubdash/pkg/background"
	"grubdash/pkg/idgen"
	"grubdash/pkg/logger"
	"grubdash/pkg/querier"
	"grubdash/pkg/tx"
)

// Storage is the order store selected by ORDER_STORE.
type Storage struct {
	Repository orderService.Repository
	TxManager  orderService.TxManager
	Pinger     healthcheck_head.Pinger
}

func NewMemoryStorage(seed ...entities.Order) *Storage {
	repo := memory.New(seed...)

	return &Storage{
		Repository: repo,
		TxManager:  memory.NewTxManager(),
		Pinger:     repo,
	}
}

func NewPostgresStorage(pool *pgxpool.Pool, getter *pgxv5.CtxGetter) *Storage {
	q := querier.New(pool, getter)

	return &Storage{
		Repository: orderRepo.New(q),
		TxManager:  tx.New(pool),
		Pinger:     q,
	}
}

type Application struct {
	ServiceOrder      ServiceOrder
	BackgroundWorkers *background.Worker
}

// ServiceOrder is everything the HTTP handlers need from the order service.
type ServiceOrder interface {
	orders_get.Service
	order_get.Service
	order_post.Service
	order_put.Service
	order_delete.Service
}

type KafkaWorkerApp struct {
	OrderService *orderService.Service
}

func provideRepository(storage *Storage) orderService.Repository {
	return storage.Repository
}

func provideTxManager(storage *Storage) orderService.TxManager {
	return storage.TxManager
}

func provideIDGenerator(cfg *config.Config) (orderService.IDGenerator, error) {
	return idgen.New(cfg.Orders.IDStrategy)
}

func provideOrderService(
	repository orderService.Repository,
	txManager orderService.TxManager,
	idGenerator orderService.IDGenerator,
	publisher orderService.EventPublisher,
) *orderService.Service {
	return orderService.New(repository, txManager, idGenerator, publisher)
}

func provideOrdersSnapshotTask(service *orderService.Service, cfg *config.Config) *orders_snapshot.OrdersSnapshot {
	return orders_snapshot.NewOrdersSnapshot(service, cfg.Tasks.OrdersSnapshotInterval)
}

func provideTaskList(snapshotTask *orders_snapshot.OrdersSnapshot) []background.Task {
	return []background.Task{
		snapshotTask,
	}
}

func provideBackgroundWorkers(ctx context.Context, log logger.Logger, tasks []background.Task) (*background.Worker, error) {
	return background.New(ctx, log, tasks)
}
