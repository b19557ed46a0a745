package order

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation    = errors.New("order validation failed")
	ErrOrderNotFound = errors.New("order not found")

	ErrMissingDeliverTo    = errors.New("missing deliverTo")
	ErrMissingMobileNumber = errors.New("missing mobileNumber")
	ErrMissingDishes       = errors.New("missing dishes")
	ErrEmptyDishes         = errors.New("empty dishes")
	ErrInvalidDishQuantity = errors.New("invalid dish quantity")
	ErrInvalidQuantity     = errors.New("invalid order quantity")
	ErrIDMismatch          = errors.New("order id does not match route id")
	ErrInvalidStatus       = errors.New("invalid order status")
	ErrOrderDelivered      = errors.New("delivered order cannot be changed")
	ErrDeleteNotPending    = errors.New("order is not pending")
)

// ValidationError is a client error. Messages are shown to the caller as is.
type ValidationError struct {
	Messages []string
	Rule     error
}

func newValidationError(rule error, messages ...string) *ValidationError {
	return &ValidationError{
		Messages: messages,
		Rule:     rule,
	}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages, "; ")
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func (e *ValidationError) Unwrap() error {
	return e.Rule
}

type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Order id does not exist: %s", e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return ErrOrderNotFound
}

// Message returns the client-facing text of a validation or not-found error
// and false for anything else.
func Message(err error) (string, bool) {
	var validationErr *ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error(), true
	}

	var notFoundErr *NotFoundError
	if errors.As(err, &notFoundErr) {
		return notFoundErr.Error(), true
	}

	return "", false
}
