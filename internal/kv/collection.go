package kv

import (
	"context"
	"encoding/json"
	"fmt"
)

// Collection is a JSON array of T stored under one backend key.
type Collection[T any] struct {
	backend Backend
	key     string
}

// NewCollection binds a collection of T to key.
func NewCollection[T any](b Backend, key string) *Collection[T] {
	return &Collection[T]{backend: b, key: key}
}

// Key returns the backend key of the collection.
func (c *Collection[T]) Key() string {
	return c.key
}

// Load returns the stored records. A missing key, or a payload that does not
// decode as a JSON array of T, yields an empty slice and no error. Only
// backend failures are returned.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	raw, found, err := c.backend.Get(ctx, c.key)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.key, err)
	}
	return decode[T](raw, found), nil
}

// Save overwrites the whole collection in a single backend write.
func (c *Collection[T]) Save(ctx context.Context, items []T) error {
	b, err := encode(items)
	if err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	if err := c.backend.Put(ctx, c.key, b); err != nil {
		return fmt.Errorf("save %s: %w", c.key, err)
	}
	return nil
}

// Update loads the collection, passes it to fn and saves what fn returns when
// fn reports write=true, all inside one backend update. Errors returned by fn
// are passed through unwrapped.
func (c *Collection[T]) Update(ctx context.Context, fn func(items []T) ([]T, bool, error)) error {
	var fnErr error
	err := c.backend.Update(ctx, c.key, func(raw []byte, found bool) ([]byte, bool, error) {
		next, write, err := fn(decode[T](raw, found))
		if err != nil {
			fnErr = err
			return nil, false, err
		}
		if !write {
			return nil, false, nil
		}
		b, err := encode(next)
		if err != nil {
			return nil, false, err
		}
		return b, true, nil
	})
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return fmt.Errorf("update %s: %w", c.key, err)
	}
	return nil
}

func decode[T any](raw []byte, found bool) []T {
	if !found || len(raw) == 0 {
		return []T{}
	}
	var items []T
	if err := json.Unmarshal(raw, &items); err != nil || items == nil {
		return []T{}
	}
	return items
}

func encode[T any](items []T) ([]byte, error) {
	if items == nil {
		items = []T{}
	}
	return json.Marshal(items)
}
