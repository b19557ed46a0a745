package entities

import "time"

type Order struct {
	ID           string
	DeliverTo    string
	MobileNumber string
	Status       OrderStatusType
	Dishes       []Dish
	Quantity     *int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type OrderStatusType string

const (
	OrderPending        OrderStatusType = "pending"
	OrderPreparing      OrderStatusType = "preparing"
	OrderOutForDelivery OrderStatusType = "out-for-delivery"
	OrderDelivered      OrderStatusType = "delivered"
)

// OrderStatuses lists the lifecycle in order.
var OrderStatuses = []OrderStatusType{
	OrderPending,
	OrderPreparing,
	OrderOutForDelivery,
	OrderDelivered,
}

func (s OrderStatusType) String() string {
	return string(s)
}

func (s OrderStatusType) IsValid() bool {
	switch s {
	case OrderPending, OrderPreparing, OrderOutForDelivery, OrderDelivered:
		return true
	default:
		return false
	}
}

// OrderModify carries client input. Nil pointers and a nil Dishes slice mean
// the field was absent from the request. A non-integer quantity is carried as 0.
type OrderModify struct {
	ID           *string
	DeliverTo    *string
	MobileNumber *string
	Status       *OrderStatusType
	Dishes       []Dish
	Quantity     *int
}

// Clone returns a copy that shares no slices or pointers with o.
func (o Order) Clone() Order {
	c := o
	if o.Dishes != nil {
		c.Dishes = make([]Dish, len(o.Dishes))
		for i := range o.Dishes {
			c.Dishes[i] = o.Dishes[i].Clone()
		}
	}
	if o.Quantity != nil {
		q := *o.Quantity
		c.Quantity = &q
	}
	return c
}
