package converters

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"grubdash/internal/entities"
	"grubdash/internal/generated/dto"
	"grubdash/internal/service/order"
)

const (
	MessageMalformedBody = "Request body must be valid JSON"
	MessageInternal      = "Internal server error"
)

var ErrMalformedBody = errors.New("malformed request body")

// orderInput keeps every field raw so that values of the wrong JSON type can
// be judged the way the validation rules expect instead of failing decoding.
type orderInput struct {
	ID           json.RawMessage `json:"id"`
	DeliverTo    json.RawMessage `json:"deliverTo"`
	MobileNumber json.RawMessage `json:"mobileNumber"`
	Status       json.RawMessage `json:"status"`
	Dishes       json.RawMessage `json:"dishes"`
	Quantity     json.RawMessage `json:"quantity"`
}

// DecodeOrderRequest reads a {"data": {...}} envelope. Only unparsable JSON is
// an error. Falsy values (null, false, 0, "") count as absent. Other scalars
// are carried as their text form. A truthy dishes value that is not an array
// becomes an empty list.
func DecodeOrderRequest(body io.Reader) (entities.OrderModify, error) {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}

	err := json.NewDecoder(body).Decode(&envelope)
	if err != nil && !errors.Is(err, io.EOF) {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return entities.OrderModify{}, nil
		}
		return entities.OrderModify{}, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}

	if !isObject(envelope.Data) {
		return entities.OrderModify{}, nil
	}

	var in orderInput
	if err := json.Unmarshal(envelope.Data, &in); err != nil {
		return entities.OrderModify{}, fmt.Errorf("%w: %w", ErrMalformedBody, err)
	}

	return toDomainModify(in)
}

func toDomainModify(in orderInput) (entities.OrderModify, error) {
	modify := entities.OrderModify{
		ID:           textOf(in.ID),
		DeliverTo:    textOf(in.DeliverTo),
		MobileNumber: textOf(in.MobileNumber),
	}

	if status := textOf(in.Status); status != nil {
		s := entities.OrderStatusType(*status)
		modify.Status = &s
	}

	if truthy(in.Dishes) {
		modify.Dishes = []entities.Dish{}
		if isArray(in.Dishes) {
			if err := json.Unmarshal(in.Dishes, &modify.Dishes); err != nil {
				return entities.OrderModify{}, fmt.Errorf("%w: %w", ErrMalformedBody, err)
			}
		}
	}

	if len(in.Quantity) > 0 && !isNull(in.Quantity) {
		quantity, _ := entities.ParseInteger(in.Quantity)
		modify.Quantity = &quantity
	}

	return modify, nil
}

func FromDomain(o *entities.Order) dto.Order {
	dishes := make([]dto.Dish, len(o.Dishes))
	for i, d := range o.Dishes {
		dishes[i] = d.Object()
	}

	return dto.Order{
		Id:           o.ID,
		DeliverTo:    o.DeliverTo,
		MobileNumber: o.MobileNumber,
		Status:       dto.OrderStatus(o.Status.String()),
		Dishes:       dishes,
		Quantity:     o.Quantity,
	}
}

func FromDomainList(orders []entities.Order) []dto.Order {
	res := make([]dto.Order, len(orders))
	for i := range orders {
		res[i] = FromDomain(&orders[i])
	}
	return res
}

func StatusCode(err error) int {
	switch {
	case errors.Is(err, ErrMalformedBody), errors.Is(err, order.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, order.ErrOrderNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ToErrorResponse exposes client errors verbatim and hides everything else.
func ToErrorResponse(err error) dto.ErrorResponse {
	if errors.Is(err, ErrMalformedBody) {
		return dto.ErrorResponse{Message: MessageMalformedBody}
	}
	if message, ok := order.Message(err); ok {
		return dto.ErrorResponse{Message: message}
	}
	return dto.ErrorResponse{Message: MessageInternal}
}

// truthy mirrors JavaScript truthiness for a JSON value. An absent value is
// falsy, as are null, false, 0 and "". Objects and arrays are always truthy.
func truthy(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return false
	}

	switch trimmed[0] {
	case 'n', 'f':
		return false
	case 't', '{', '[':
		return true
	case '"':
		var s string
		return json.Unmarshal(trimmed, &s) == nil && s != ""
	default:
		f, err := strconv.ParseFloat(string(trimmed), 64)
		return err == nil && f != 0
	}
}

// textOf returns nil for falsy values. Strings are unquoted, anything else
// keeps its JSON text, so an id of 2 reads as "2".
func textOf(raw json.RawMessage) *string {
	if !truthy(raw) {
		return nil
	}

	trimmed := bytes.TrimSpace(raw)
	var s string
	if trimmed[0] == '"' && json.Unmarshal(trimmed, &s) == nil {
		return &s
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, trimmed); err != nil {
		s = string(trimmed)
		return &s
	}
	s = compact.String()
	return &s
}

func isObject(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '{'
}

func isArray(raw json.RawMessage) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) > 0 && trimmed[0] == '['
}

func isNull(raw json.RawMessage) bool {
	return string(bytes.TrimSpace(raw)) == "null"
}
