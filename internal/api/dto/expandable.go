package dto

import (
	"encoding/json"
)

// Expandable is a reference field that serializes as the bare id by
// default and as the fully resolved resource when the caller requested
// expansion. This mirrors the provider's expand mechanism without
// resorting to untyped fields.
type Expandable[T any] struct {
	ID     string
	Object *T
}

// NewExpandable returns an unexpanded reference.
func NewExpandable[T any](id string) Expandable[T] {
	return Expandable[T]{ID: id}
}

// NewExpandablePtr returns an unexpanded reference from a nullable id.
func NewExpandablePtr[T any](id *string) Expandable[T] {
	if id == nil {
		return Expandable[T]{}
	}
	return Expandable[T]{ID: *id}
}

// Resolve attaches the resolved resource so marshaling emits the full
// object instead of the id.
func (e *Expandable[T]) Resolve(obj *T) {
	e.Object = obj
}

// IsZero reports whether the reference is empty (serializes as null).
func (e Expandable[T]) IsZero() bool {
	return e.ID == "" && e.Object == nil
}

func (e Expandable[T]) MarshalJSON() ([]byte, error) {
	if e.Object != nil {
		return json.Marshal(e.Object)
	}
	if e.ID == "" {
		return []byte("null"), nil
	}
	return json.Marshal(e.ID)
}

func (e *Expandable[T]) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*e = Expandable[T]{}
		return nil
	}
	var id string
	if err := json.Unmarshal(data, &id); err == nil {
		e.ID = id
		e.Object = nil
		return nil
	}
	var obj T
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	e.Object = &obj
	return nil
}
