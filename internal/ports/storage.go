package ports

import "errors"

// ErrKeyNotFound is returned by KeyValueStore.Read for absent keys
var ErrKeyNotFound = errors.New("key not found")

// KeyValueStore is the local storage boundary: string keys holding
// JSON-encoded (or plain string) values.
type KeyValueStore interface {
	// Read returns the raw value, or ErrKeyNotFound
	Read(key string) ([]byte, error)

	// Write replaces the value stored under key
	Write(key string, value []byte) error

	// Erase removes key. Erasing an absent key is not an error.
	Erase(key string) error
}
