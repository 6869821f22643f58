// Package localstore persists small key/value documents on disk with diskv.
// Each key becomes one file directly under the base directory.
package localstore

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/peterbourgon/diskv/v3"

	"scriptorium/internal/ports"
)

// Store implements ports.KeyValueStore
type Store struct {
	d        *diskv.Diskv
	basePath string
}

// Open creates a store rooted at basePath, creating the directory if needed
func Open(basePath string) (*Store, error) {
	if err := os.MkdirAll(basePath, 0o755); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	return &Store{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			Transform:    flatTransform,
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
		basePath: basePath,
	}, nil
}

func flatTransform(string) []string {
	return []string{}
}

// BasePath returns the directory holding the documents
func (s *Store) BasePath() string {
	return s.basePath
}

// Read returns the document stored under key
func (s *Store) Read(key string) ([]byte, error) {
	data, err := s.d.Read(key)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ports.ErrKeyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", key, err)
	}
	return data, nil
}

// Write replaces the document stored under key
func (s *Store) Write(key string, data []byte) error {
	if err := s.d.Write(key, data); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	return nil
}

// Erase removes key. Erasing a missing key is not an error.
func (s *Store) Erase(key string) error {
	err := s.d.Erase(key)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("erase %s: %w", key, err)
	}
	return nil
}

// Keys lists every stored key
func (s *Store) Keys() []string {
	var keys []string
	for k := range s.d.Keys(nil) {
		keys = append(keys, k)
	}
	return keys
}
