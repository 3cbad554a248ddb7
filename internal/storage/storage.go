// Package storage provides the string-keyed local store that session state is
// persisted to.
package storage

import "errors"

// ErrNotFound is returned by Get when the key has never been set or was deleted.
var ErrNotFound = errors.New("storage: key not found")

// KeyValue is a synchronous string-keyed byte store with a single writer.
type KeyValue interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	// Delete removes key; deleting an absent key is not an error.
	Delete(key string) error
}
