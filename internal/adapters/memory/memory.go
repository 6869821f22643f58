// Package memory provides in-process implementations of the storage ports
package memory

import (
	"errors"
	"slices"
	"sync"

	"scriptorium/internal/ports"
)

// ErrWriteFailed is returned by a store whose writes were made to fail
var ErrWriteFailed = errors.New("memory: write failed")

// Store is a ports.KeyValueStore backed by a map
type Store struct {
	mu        sync.Mutex
	data      map[string][]byte
	failWrite bool
	writes    int
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Seed stores raw data without counting it as a write
func (s *Store) Seed(key string, data []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = slices.Clone(data)
}

// FailWrites makes every following Write return ErrWriteFailed
func (s *Store) FailWrites(fail bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failWrite = fail
}

// Writes returns how many successful writes happened
func (s *Store) Writes() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writes
}

func (s *Store) Read(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	data, ok := s.data[key]
	if !ok {
		return nil, ports.ErrKeyNotFound
	}
	return slices.Clone(data), nil
}

func (s *Store) Write(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failWrite {
		return ErrWriteFailed
	}
	s.data[key] = slices.Clone(data)
	s.writes++
	return nil
}

func (s *Store) Erase(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
