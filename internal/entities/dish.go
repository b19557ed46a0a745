package entities

import (
	"bytes"
	"encoding/json"
	"math"
)

const (
	dishQuantityKey = "quantity"
	maxSafeInteger  = 1<<53 - 1
)

// Dish is one line of an order. Only Quantity is validated. Attributes keeps
// every other field (name, price, image_url, ...) exactly as the client sent
// it, keyed by JSON name.
type Dish struct {
	Quantity   int
	Attributes map[string]json.RawMessage
}

// NewDish encodes attributes into a Dish. Values that cannot be encoded are
// dropped, and a "quantity" attribute is ignored in favour of quantity.
func NewDish(quantity int, attributes map[string]any) Dish {
	d := Dish{Quantity: quantity}
	for name, value := range attributes {
		if name == dishQuantityKey {
			continue
		}
		raw, err := json.Marshal(value)
		if err != nil {
			continue
		}
		if d.Attributes == nil {
			d.Attributes = make(map[string]json.RawMessage, len(attributes))
		}
		d.Attributes[name] = raw
	}
	return d
}

// Object is the JSON object form of the dish: its attributes plus quantity.
func (d Dish) Object() map[string]any {
	object := make(map[string]any, len(d.Attributes)+1)
	for name, raw := range d.Attributes {
		object[name] = raw
	}
	object[dishQuantityKey] = d.Quantity
	return object
}

func (d Dish) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Object())
}

// UnmarshalJSON never fails on well-formed JSON. Anything but an object
// yields an empty dish, and a quantity that is not an integer yields 0.
func (d *Dish) UnmarshalJSON(data []byte) error {
	*d = Dish{}

	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &fields); err != nil {
		return err
	}

	if raw, ok := fields[dishQuantityKey]; ok {
		d.Quantity, _ = ParseInteger(raw)
		delete(fields, dishQuantityKey)
	}
	if len(fields) > 0 {
		d.Attributes = fields
	}
	return nil
}

func (d Dish) Clone() Dish {
	c := Dish{Quantity: d.Quantity}
	if d.Attributes != nil {
		c.Attributes = make(map[string]json.RawMessage, len(d.Attributes))
		for name, raw := range d.Attributes {
			c.Attributes[name] = append(json.RawMessage(nil), raw...)
		}
	}
	return c
}

// ParseInteger accepts a JSON number with no fractional part that a
// double can hold exactly. Strings, booleans and fractions yield false.
func ParseInteger(raw json.RawMessage) (int, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || (trimmed[0] != '-' && (trimmed[0] < '0' || trimmed[0] > '9')) {
		return 0, false
	}
	n := json.Number(trimmed)

	if i, err := n.Int64(); err == nil {
		if i > maxSafeInteger || i < -maxSafeInteger {
			return 0, false
		}
		return int(i), true
	}

	f, err := n.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > maxSafeInteger {
		return 0, false
	}
	return int(f), true
}
