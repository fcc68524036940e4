package types

import (
	"bytes"
	"encoding/json"
)

// Optional is a tri-state JSON field: absent (zero value), present with an
// explicit null, or present with a value. PATCH payloads use it so that
// "leave untouched", "clear this field" and "set this field" stay
// distinguishable after decoding.
type Optional[T any] struct {
	set   bool
	valid bool
	value T
}

// Some returns an Optional holding value.
func Some[T any](value T) Optional[T] {
	return Optional[T]{set: true, valid: true, value: value}
}

// Null returns an Optional that was explicitly set to null.
func Null[T any]() Optional[T] {
	return Optional[T]{set: true}
}

// IsSet reports whether the field appeared in the payload at all.
func (o Optional[T]) IsSet() bool {
	return o.set
}

// IsNull reports whether the field appeared as an explicit null.
func (o Optional[T]) IsNull() bool {
	return o.set && !o.valid
}

// Value returns the decoded value and whether one is present.
func (o Optional[T]) Value() (T, bool) {
	return o.value, o.valid
}

var jsonNull = []byte("null")

// UnmarshalJSON is only invoked for fields present in the payload, which is
// what makes the absent state observable.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.set = true
	if bytes.Equal(data, jsonNull) {
		o.valid = false
		var zero T
		o.value = zero
		return nil
	}
	if err := json.Unmarshal(data, &o.value); err != nil {
		return err
	}
	o.valid = true
	return nil
}

func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.valid {
		return jsonNull, nil
	}
	return json.Marshal(o.value)
}
