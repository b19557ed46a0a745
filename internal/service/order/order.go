package order

import (
	"context"
	"errors"
	"fmt"
	"time"

	"grubdash/internal/entities"
)

type Service struct {
	repository  Repository
	txManager   TxManager
	idGenerator IDGenerator
	publisher   EventPublisher
}

func New(repository Repository, txManager TxManager, idGenerator IDGenerator, publisher EventPublisher) *Service {
	return &Service{
		repository:  repository,
		txManager:   txManager,
		idGenerator: idGenerator,
		publisher:   publisher,
	}
}

func (s *Service) GetOrders(ctx context.Context) ([]entities.Order, error) {
	orders, err := s.repository.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}

	if orders == nil {
		orders = []entities.Order{}
	}
	return orders, nil
}

func (s *Service) GetOrder(ctx context.Context, id string) (*entities.Order, error) {
	return s.lookup(ctx, id)
}

func (s *Service) CreateOrder(ctx context.Context, modify entities.OrderModify) (*entities.Order, error) {
	if err := validateOrderFields(modify); err != nil {
		OrderValidationFailuresTotal.WithLabelValues("create").Inc()
		return nil, err
	}

	order := entities.Order{
		ID:           s.idGenerator.NewID(),
		DeliverTo:    *modify.DeliverTo,
		MobileNumber: *modify.MobileNumber,
		Status:       entities.OrderPending,
		Dishes:       modify.Dishes,
		Quantity:     modify.Quantity,
	}

	var created *entities.Order
	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		var err error
		created, err = s.repository.Create(ctx, order)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	OrdersCreatedTotal.Inc()
	s.publish(ctx, entities.OrderEventCreated, created)

	return created, nil
}

// UpdateOrder overwrites deliverTo, mobileNumber, dishes, status and quantity
// of the order addressed by routeID.
func (s *Service) UpdateOrder(ctx context.Context, routeID string, modify entities.OrderModify) (*entities.Order, error) {
	var (
		updated  *entities.Order
		previous entities.OrderStatusType
	)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.lookup(ctx, routeID)
		if err != nil {
			return err
		}

		if err := validateOrderFields(modify); err != nil {
			return err
		}
		if err := validateUpdate(routeID, current, modify); err != nil {
			return err
		}

		previous = current.Status

		next := *current
		next.DeliverTo = *modify.DeliverTo
		next.MobileNumber = *modify.MobileNumber
		next.Dishes = modify.Dishes
		next.Status = *modify.Status
		next.Quantity = modify.Quantity

		updated, err = s.repository.Update(ctx, next)
		if err != nil {
			return s.notFound(err, routeID)
		}
		return nil
	})
	if err != nil {
		return nil, s.failure("update", err)
	}

	s.recordTransition(previous, updated.Status)
	s.publish(ctx, entities.OrderEventUpdated, updated)

	return updated, nil
}

func (s *Service) DeleteOrder(ctx context.Context, id string) error {
	var deleted *entities.Order

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.lookup(ctx, id)
		if err != nil {
			return err
		}

		if err := validateDelete(current); err != nil {
			return err
		}

		index, err := s.repository.IndexOf(ctx, id)
		if err != nil {
			return fmt.Errorf("index of order: %w", err)
		}
		if index < 0 {
			return &NotFoundError{ID: id}
		}

		if err := s.repository.RemoveAt(ctx, index); err != nil {
			return s.notFound(err, id)
		}

		deleted = current
		return nil
	})
	if err != nil {
		return s.failure("delete", err)
	}

	OrdersDeletedTotal.Inc()
	s.publish(ctx, entities.OrderEventDeleted, deleted)

	return nil
}

// ChangeOrderStatus applies a status change coming from outside the HTTP API.
// The same lifecycle rules as UpdateOrder apply.
func (s *Service) ChangeOrderStatus(ctx context.Context, id string, status entities.OrderStatusType) (*entities.Order, error) {
	var (
		updated  *entities.Order
		previous entities.OrderStatusType
	)

	err := s.txManager.Do(ctx, func(ctx context.Context) error {
		current, err := s.lookup(ctx, id)
		if err != nil {
			return err
		}

		if err := validateTransition(current, status); err != nil {
			return err
		}

		previous = current.Status
		if previous == status {
			updated = current
			return nil
		}

		next := *current
		next.Status = status

		updated, err = s.repository.Update(ctx, next)
		if err != nil {
			return s.notFound(err, id)
		}
		return nil
	})
	if err != nil {
		return nil, s.failure("change_status", err)
	}

	if previous != updated.Status {
		s.recordTransition(previous, updated.Status)
		s.publish(ctx, entities.OrderEventUpdated, updated)
	}

	return updated, nil
}

func (s *Service) lookup(ctx context.Context, id string) (*entities.Order, error) {
	order, err := s.repository.GetByID(ctx, id)
	if err != nil {
		return nil, s.notFound(err, id)
	}
	return order, nil
}

func (s *Service) notFound(err error, id string) error {
	if errors.Is(err, ErrOrderNotFound) {
		return &NotFoundError{ID: id}
	}
	return fmt.Errorf("order repository: %w", err)
}

func (s *Service) failure(operation string, err error) error {
	if errors.Is(err, ErrValidation) {
		OrderValidationFailuresTotal.WithLabelValues(operation).Inc()
		return err
	}
	if errors.Is(err, ErrOrderNotFound) {
		return err
	}
	return fmt.Errorf("failed to %s order: %w", operation, err)
}

func (s *Service) recordTransition(from, to entities.OrderStatusType) {
	if from == to {
		return
	}
	OrderStatusTransitionsTotal.WithLabelValues(from.String(), to.String()).Inc()
}

func (s *Service) publish(ctx context.Context, eventType entities.OrderEventType, order *entities.Order) {
	s.publisher.Publish(ctx, entities.OrderEvent{
		Type:       eventType,
		OrderID:    order.ID,
		Status:     order.Status,
		OccurredAt: time.Now().UTC(),
	})
}
