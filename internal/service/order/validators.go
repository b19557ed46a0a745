package order

import (
	"fmt"

	"grubdash/internal/entities"
)

const statusListMessage = "Order must have a status of pending, preparing, out-for-delivery, delivered"

// validateOrderFields stops at the first failing field. Dish quantities are the
// exception: every offending index is reported.
func validateOrderFields(modify entities.OrderModify) error {
	if !isPresent(modify.DeliverTo) {
		return newValidationError(ErrMissingDeliverTo, "Order must include deliverTo")
	}
	if !isPresent(modify.MobileNumber) {
		return newValidationError(ErrMissingMobileNumber, "Order must include mobileNumber")
	}
	if modify.Dishes == nil {
		return newValidationError(ErrMissingDishes, "Order must include a dish")
	}
	if len(modify.Dishes) == 0 {
		return newValidationError(ErrEmptyDishes, "Order must include at least one dish")
	}

	var messages []string
	for i, dish := range modify.Dishes {
		if dish.Quantity <= 0 {
			messages = append(messages, fmt.Sprintf("Dish %d must have a quantity that is an integer greater than 0", i))
		}
	}
	if len(messages) > 0 {
		return newValidationError(ErrInvalidDishQuantity, messages...)
	}

	if modify.Quantity != nil && *modify.Quantity <= 0 {
		return newValidationError(ErrInvalidQuantity, "Order quantity must be an integer greater than 0")
	}

	return nil
}

func validateUpdate(routeID string, current *entities.Order, modify entities.OrderModify) error {
	if modify.ID != nil && *modify.ID != "" && *modify.ID != routeID {
		return newValidationError(ErrIDMismatch,
			fmt.Sprintf("Order id does not match route id. Order: %s, Route: %s", *modify.ID, routeID))
	}

	if modify.Status == nil {
		return newValidationError(ErrInvalidStatus, statusListMessage)
	}

	return validateTransition(current, *modify.Status)
}

func validateTransition(current *entities.Order, next entities.OrderStatusType) error {
	if !next.IsValid() {
		return newValidationError(ErrInvalidStatus, statusListMessage)
	}
	if current.Status == entities.OrderDelivered {
		return newValidationError(ErrOrderDelivered, "A delivered order cannot be changed")
	}
	return nil
}

func validateDelete(current *entities.Order) error {
	if current.Status != entities.OrderPending {
		return newValidationError(ErrDeleteNotPending, "An order cannot be deleted unless it is pending")
	}
	return nil
}

// isPresent treats any non-empty string as present, whitespace included.
func isPresent(s *string) bool {
	return s != nil && *s != ""
}
