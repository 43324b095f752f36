package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"reflect"
)

// Optional is a field that is either absent or present with a value.
// Decoding a JSON object leaves it absent when the key is missing.
// A present key must carry a well-typed value; null is rejected.
type Optional[T any] struct {
	value T
	set   bool
}

// Some returns an Optional holding v.
func Some[T any](v T) Optional[T] {
	return Optional[T]{value: v, set: true}
}

// Get returns the value and whether it was supplied.
func (o Optional[T]) Get() (T, bool) {
	return o.value, o.set
}

// Ptr returns a pointer to a copy of the value, or nil when absent.
func (o Optional[T]) Ptr() *T {
	v, ok := o.Get()
	if !ok {
		return nil
	}
	return &v
}

// UnmarshalJSON implements json.Unmarshaler. It is only called for keys that are present.
func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return &json.UnmarshalTypeError{Value: "null", Type: reflect.TypeFor[T]()}
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.value = v
	o.set = true
	return nil
}

// MarshalJSON implements json.Marshaler. An absent value encodes as null,
// which is how a patch shows up in the JSON request log.
func (o Optional[T]) MarshalJSON() ([]byte, error) {
	if !o.set {
		return []byte("null"), nil
	}
	return json.Marshal(o.value)
}

// String renders the value for text logs.
func (o Optional[T]) String() string {
	if !o.set {
		return "<unset>"
	}
	return fmt.Sprintf("%v", o.value)
}
