// Package kv provides the durable string-keyed byte store the entity stores
// persist into, and typed JSON collections on top of it.
package kv

import "context"

// UpdateFunc receives the current value of a key (found is false when the key
// is absent) and returns the value to store. Returning write=false leaves the
// key untouched; a non-nil error aborts the update and is returned as is.
type UpdateFunc func(value []byte, found bool) (next []byte, write bool, err error)

// Backend is a durable string-keyed byte store.
type Backend interface {
	// Get returns the value stored under key and whether it exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Put overwrites the value stored under key.
	Put(ctx context.Context, key string, value []byte) error

	// Update runs a read-modify-write of key atomically with respect to
	// other Update and Put calls on the same backend.
	Update(ctx context.Context, key string, fn UpdateFunc) error

	// Close releases the backend.
	Close() error
}
