//go:generate mockgen -source=contract.go -destination=./contract_mocks_test.go -package=order_test
package order

import (
	"context"

	"grubdash/internal/entities"
)

// Repository keeps orders in insertion order. IndexOf returns -1 when the id
// is absent.
type Repository interface {
	GetAll(ctx context.Context) ([]entities.Order, error)
	GetByID(ctx context.Context, id string) (*entities.Order, error)
	Create(ctx context.Context, order entities.Order) (*entities.Order, error)
	Update(ctx context.Context, order entities.Order) (*entities.Order, error)
	IndexOf(ctx context.Context, id string) (int, error)
	RemoveAt(ctx context.Context, index int) error
}

type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

type IDGenerator interface {
	NewID() string
}

type EventPublisher interface {
	Publish(ctx context.Context, event entities.OrderEvent)
}
