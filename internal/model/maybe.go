package model

import (
	"bytes"
	"encoding/json"
	"errors"
)

// Maybe is an optional backend leaf. A missing, null or wrong-typed value decodes as absent.
type Maybe[T any] struct {
	Value T
	Valid bool
}

func Some[T any](v T) Maybe[T] { return Maybe[T]{Value: v, Valid: true} }

// Ptr returns nil when the value is absent.
func (m Maybe[T]) Ptr() *T {
	if !m.Valid {
		return nil
	}
	v := m.Value
	return &v
}

func (m *Maybe[T]) UnmarshalJSON(data []byte) error {
	*m = Maybe[T]{}
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return nil
	}
	*m = Some(v)
	return nil
}

func (m Maybe[T]) MarshalJSON() ([]byte, error) {
	if !m.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(m.Value)
}

// DecodeBackend unmarshals a backend body into v, skipping values whose type does not match.
// Only a body that is not valid JSON is an error.
func DecodeBackend(data []byte, v any) error {
	err := json.Unmarshal(data, v)
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		return nil
	}
	return err
}
