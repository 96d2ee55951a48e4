// Package memory implements an in-memory content store.
package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/tierview/tierview/pkg/content"
)

// MemoryContentStore implements content.ContentStore using in-memory byte
// slices. It backs tests and demo deployments; data is lost on restart.
//
// Thread Safety:
// All operations are protected by an RWMutex. Readers operate on a copy of
// the stored bytes so they never race later writes.
type MemoryContentStore struct {
	// address identifies this store in reported locations
	address string

	// data stores content keyed by ID
	data map[string][]byte

	// mu protects data
	mu sync.RWMutex
}

// NewMemoryContentStore creates an empty store that reports the given
// address for every stored content ID.
func NewMemoryContentStore(ctx context.Context, address string) (*MemoryContentStore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &MemoryContentStore{
		address: address,
		data:    make(map[string][]byte),
	}, nil
}

// Put stores content under the given ID, overwriting any previous bytes.
// Used by seeding and tests.
func (s *MemoryContentStore) Put(ctx context.Context, id string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = append([]byte(nil), data...)
	return nil
}

// Open returns a reader over a copy of the stored bytes. The BypassCache
// option is accepted but has no effect; there is no cache tier to bypass.
func (s *MemoryContentStore) Open(ctx context.Context, id string, opts content.OpenOptions) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	data, ok := s.data[id]
	if !ok {
		return nil, fmt.Errorf("content %s: %w", id, content.ErrContentNotFound)
	}
	return io.NopCloser(bytes.NewReader(append([]byte(nil), data...))), nil
}

// Locations reports the store's own address for existing content.
func (s *MemoryContentStore) Locations(ctx context.Context, id string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.data[id]; !ok {
		return nil, fmt.Errorf("content %s: %w", id, content.ErrContentNotFound)
	}
	return []string{s.address}, nil
}
