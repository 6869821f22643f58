// Package state holds the application's persistent state containers.
// Each container is constructed once at the application root and passed
// down explicitly; none of them is a package-level singleton.
package state

import (
	"encoding/json"
	"errors"
	"slices"
	"sync"

	"scriptorium/internal/application"
	"scriptorium/internal/ports"
)

// PersistResult is the outcome of writing a container to storage.
// A failed write never rolls back the in-memory value.
type PersistResult struct {
	Key string
	Err error
}

// OK reports whether the value reached storage
func (r PersistResult) OK() bool {
	return r.Err == nil
}

// AtomOption configures an Atom
type AtomOption[T any] func(*Atom[T])

// WithDecoder replaces the JSON decoder
func WithDecoder[T any](decode func([]byte) (T, error)) AtomOption[T] {
	return func(a *Atom[T]) {
		a.decode = decode
	}
}

// WithEncoder replaces the JSON encoder
func WithEncoder[T any](encode func(T) ([]byte, error)) AtomOption[T] {
	return func(a *Atom[T]) {
		a.encode = encode
	}
}

// WithWarn registers a hook called for every failed write
func WithWarn[T any](warn func(error)) AtomOption[T] {
	return func(a *Atom[T]) {
		a.warn = warn
	}
}

// Atom is a single value persisted under one storage key. Reads are served
// from memory; every write is encoded and written through synchronously.
type Atom[T any] struct {
	key     string
	storage ports.KeyValueStore
	encode  func(T) ([]byte, error)
	decode  func([]byte) (T, error)
	warn    func(error)

	mu     sync.Mutex
	value  T
	nextID int
	subs   map[int]func(T)
}

// NewAtom loads key from storage, falling back to initial when the key is
// absent, unreadable or malformed.
func NewAtom[T any](storage ports.KeyValueStore, key string, initial T, opts ...AtomOption[T]) *Atom[T] {
	a := &Atom[T]{
		key:     key,
		storage: storage,
		value:   initial,
		subs:    make(map[int]func(T)),
		encode: func(v T) ([]byte, error) {
			return json.Marshal(v)
		},
		decode: func(data []byte) (T, error) {
			var v T
			err := json.Unmarshal(data, &v)
			return v, err
		},
	}
	for _, opt := range opts {
		opt(a)
	}

	if storage == nil {
		return a
	}
	data, err := storage.Read(key)
	if err != nil {
		return a
	}
	if v, err := a.decode(data); err == nil {
		a.value = v
	}
	return a
}

// Key returns the storage key
func (a *Atom[T]) Key() string {
	return a.key
}

// Get returns the current value
func (a *Atom[T]) Get() T {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.value
}

// Set replaces the value, persists it and notifies subscribers
func (a *Atom[T]) Set(v T) PersistResult {
	return a.Update(func(T) T { return v })
}

// Update computes the next value from the current one under the lock, so
// concurrent updates never interleave.
func (a *Atom[T]) Update(fn func(T) T) PersistResult {
	a.mu.Lock()
	next := fn(a.value)
	a.value = next
	res := a.persist(next)
	subs := a.snapshotSubs()
	a.mu.Unlock()

	if !res.OK() && a.warn != nil {
		a.warn(res.Err)
	}
	for _, fn := range subs {
		fn(next)
	}
	return res
}

// Subscribe registers fn to receive every new value
func (a *Atom[T]) Subscribe(fn func(T)) func() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.nextID++
	id := a.nextID
	a.subs[id] = fn
	return func() {
		a.mu.Lock()
		defer a.mu.Unlock()
		delete(a.subs, id)
	}
}

func (a *Atom[T]) persist(v T) PersistResult {
	res := PersistResult{Key: a.key}
	if a.storage == nil {
		res.Err = &application.PersistError{Key: a.key, Err: errors.New("no storage")}
		return res
	}
	data, err := a.encode(v)
	if err != nil {
		res.Err = &application.PersistError{Key: a.key, Err: err}
		return res
	}
	if err := a.storage.Write(a.key, data); err != nil {
		res.Err = &application.PersistError{Key: a.key, Err: err}
	}
	return res
}

func (a *Atom[T]) snapshotSubs() []func(T) {
	ids := make([]int, 0, len(a.subs))
	for id := range a.subs {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	out := make([]func(T), 0, len(ids))
	for _, id := range ids {
		out = append(out, a.subs[id])
	}
	return out
}
