package memory

import (
	"context"
	"sync"
	"time"

	"grubdash/internal/entities"
	"grubdash/internal/service/order"
)

// Repository keeps orders in a slice in insertion order. Callers get copies,
// never references into the slice.
type Repository struct {
	mu     sync.RWMutex
	orders []entities.Order
	now    func() time.Time
}

func New(seed ...entities.Order) *Repository {
	orders := make([]entities.Order, 0, len(seed))
	for _, o := range seed {
		orders = append(orders, o.Clone())
	}

	return &Repository{
		orders: orders,
		now:    time.Now,
	}
}

func (r *Repository) GetAll(_ context.Context) ([]entities.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	res := make([]entities.Order, 0, len(r.orders))
	for _, o := range r.orders {
		res = append(res, o.Clone())
	}
	return res, nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*entities.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOf(id)
	if i < 0 {
		return nil, order.ErrOrderNotFound
	}

	res := r.orders[i].Clone()
	return &res, nil
}

func (r *Repository) Create(_ context.Context, o entities.Order) (*entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	stored := o.Clone()
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.orders = append(r.orders, stored)

	res := stored.Clone()
	return &res, nil
}

func (r *Repository) Update(_ context.Context, o entities.Order) (*entities.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOf(o.ID)
	if i < 0 {
		return nil, order.ErrOrderNotFound
	}

	stored := o.Clone()
	stored.CreatedAt = r.orders[i].CreatedAt
	stored.UpdatedAt = r.now()
	r.orders[i] = stored

	res := stored.Clone()
	return &res, nil
}

func (r *Repository) IndexOf(_ context.Context, id string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.indexOf(id), nil
}

func (r *Repository) RemoveAt(_ context.Context, index int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index < 0 || index >= len(r.orders) {
		return order.ErrOrderNotFound
	}

	r.orders = append(r.orders[:index], r.orders[index+1:]...)
	return nil
}

func (r *Repository) indexOf(id string) int {
	for i := range r.orders {
		if r.orders[i].ID == id {
			return i
		}
	}
	return -1
}

// Ping always succeeds while the context is alive.
func (r *Repository) Ping(ctx context.Context) error {
	return ctx.Err()
}
