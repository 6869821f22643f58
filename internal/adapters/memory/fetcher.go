package memory

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"scriptorium/internal/application"
)

// Fetcher is a ports.ContentFetcher serving fixed documents. Paths without
// a document answer like a 404.
type Fetcher struct {
	mu    sync.Mutex
	docs  map[string][]byte
	calls map[string]int
}

// NewFetcher creates a fetcher serving docs
func NewFetcher(docs map[string]string) *Fetcher {
	f := &Fetcher{docs: make(map[string][]byte), calls: make(map[string]int)}
	for path, body := range docs {
		f.docs[path] = []byte(body)
	}
	return f
}

// Put adds or replaces a document
func (f *Fetcher) Put(path, body string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[path] = []byte(body)
}

// Calls returns how many times path was fetched
func (f *Fetcher) Calls(path string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[path]
}

func (f *Fetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[path]++
	body, ok := f.docs[path]
	if !ok {
		return nil, &application.ContentError{Path: path, Status: 404, Err: fmt.Errorf("not found")}
	}
	return slices.Clone(body), nil
}
