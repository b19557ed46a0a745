package order

import (
	"encoding/json"
	"fmt"

	"grubdash/internal/entities"
)

func ToDomain(o *OrderDB) (*entities.Order, error) {
	if o == nil {
		return nil, nil
	}

	dishes := []entities.Dish{}
	if len(o.Dishes) > 0 {
		if err := json.Unmarshal(o.Dishes, &dishes); err != nil {
			return nil, fmt.Errorf("decode dishes of order %s: %w", o.ID, err)
		}
		if dishes == nil {
			dishes = []entities.Dish{}
		}
	}

	var quantity *int
	if o.Quantity != nil {
		q := int(*o.Quantity)
		quantity = &q
	}

	return &entities.Order{
		ID:           o.ID,
		DeliverTo:    o.DeliverTo,
		MobileNumber: o.MobileNumber,
		Status:       entities.OrderStatusType(o.Status),
		Dishes:       dishes,
		Quantity:     quantity,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}, nil
}

func FromDomain(o *entities.Order) (*OrderDB, error) {
	if o == nil {
		return nil, nil
	}

	// Dish attributes are kept verbatim in JSONB.
	dishes := []byte("[]")
	if len(o.Dishes) > 0 {
		var err error
		if dishes, err = json.Marshal(o.Dishes); err != nil {
			return nil, fmt.Errorf("encode dishes of order %s: %w", o.ID, err)
		}
	}

	var quantity *int64
	if o.Quantity != nil {
		q := int64(*o.Quantity)
		quantity = &q
	}

	return &OrderDB{
		ID:           o.ID,
		DeliverTo:    o.DeliverTo,
		MobileNumber: o.MobileNumber,
		Status:       o.Status.String(),
		Quantity:     quantity,
		Dishes:       dishes,
		CreatedAt:    o.CreatedAt,
		UpdatedAt:    o.UpdatedAt,
	}, nil
}

func ToDomainList(ordersDB []OrderDB) ([]entities.Order, error) {
	result := make([]entities.Order, len(ordersDB))
	for i := range ordersDB {
		o, err := ToDomain(&ordersDB[i])
		if err != nil {
			return nil, err
		}
		result[i] = *o
	}
	return result, nil
}
