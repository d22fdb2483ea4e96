package models

import (
	"bytes"
	"encoding/json"
)

var jsonNull = []byte("null")

// Relation is a pre-joined related record that is either Unloaded or
// Loaded. The backend only fills it for some endpoints/flags, so callers
// must check Loaded before relying on it.
type Relation[T any] struct {
	value *T
}

// LoadedRelation wraps v as a loaded relation.
func LoadedRelation[T any](v T) Relation[T] {
	return Relation[T]{value: &v}
}

// Get returns the related record and whether it was loaded.
func (r Relation[T]) Get() (T, bool) {
	if r.value == nil {
		var zero T
		return zero, false
	}
	return *r.value, true
}

func (r Relation[T]) Loaded() bool { return r.value != nil }

// IsZero lets `omitzero` drop unloaded relations from request bodies.
func (r Relation[T]) IsZero() bool { return r.value == nil }

func (r Relation[T]) MarshalJSON() ([]byte, error) {
	if r.value == nil {
		return jsonNull, nil
	}
	return json.Marshal(r.value)
}

func (r *Relation[T]) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), jsonNull) {
		r.value = nil
		return nil
	}
	v := new(T)
	if err := json.Unmarshal(b, v); err != nil {
		return err
	}
	r.value = v
	return nil
}

// Relations is the list form of Relation. A loaded empty list differs from
// an unloaded one.
type Relations[T any] struct {
	items  []T
	loaded bool
}

func LoadedRelations[T any](items ...T) Relations[T] {
	if items == nil {
		items = []T{}
	}
	return Relations[T]{items: items, loaded: true}
}

// Items returns the related records and whether they were loaded.
func (r Relations[T]) Items() ([]T, bool) {
	return r.items, r.loaded
}

func (r Relations[T]) Loaded() bool { return r.loaded }

func (r Relations[T]) IsZero() bool { return !r.loaded }

func (r Relations[T]) MarshalJSON() ([]byte, error) {
	if !r.loaded {
		return jsonNull, nil
	}
	if r.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(r.items)
}

func (r *Relations[T]) UnmarshalJSON(b []byte) error {
	if bytes.Equal(bytes.TrimSpace(b), jsonNull) {
		*r = Relations[T]{}
		return nil
	}
	var items []T
	if err := json.Unmarshal(b, &items); err != nil {
		return err
	}
	*r = LoadedRelations(items...)
	return nil
}
