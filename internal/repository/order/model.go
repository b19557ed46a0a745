package order

import "time"

type OrderDB struct {
	ID           string
	DeliverTo    string
	MobileNumber string
	Status       string
	Quantity     *int64
	Dishes       []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
