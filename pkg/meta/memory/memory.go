// Package memory implements an in-memory metadata store.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/tierview/tierview/pkg/meta"
)

// MemoryMetadataStore implements meta.MetadataStore using in-memory maps.
//
// This implementation keeps the whole namespace in process memory. It's
// designed for:
//   - Testing and development
//   - Demo deployments seeded at startup
//   - Backing the conformance suite for the MetadataStore contract
//
// Characteristics:
//   - Fast: all operations are memory-speed
//   - Volatile: namespace lost on restart
//   - Thread-safe: protected by an RWMutex
//
// Returned FileInfo and FileBlockInfo values are copies; callers can hold
// them across the request without racing concurrent writers.
type MemoryMetadataStore struct {
	// mu protects all maps below
	mu sync.RWMutex

	// entries maps canonical path to entry metadata
	entries map[string]*meta.FileInfo

	// children maps a directory path to the set of its child paths
	children map[string]map[string]struct{}

	// blocks maps a file path to its block records
	blocks map[string][]*meta.FileBlockInfo
}

// NewMemoryMetadataStore creates a store containing only the root directory.
func NewMemoryMetadataStore(ctx context.Context) (*MemoryMetadataStore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	store := &MemoryMetadataStore{
		entries:  make(map[string]*meta.FileInfo),
		children: make(map[string]map[string]struct{}),
		blocks:   make(map[string][]*meta.FileBlockInfo),
	}
	store.entries[meta.RootPath] = &meta.FileInfo{
		Path:         meta.RootPath,
		Name:         meta.RootPath,
		IsDirectory:  true,
		LastModified: time.Now(),
	}
	store.children[meta.RootPath] = make(map[string]struct{})
	return store, nil
}

// GetFileInfo resolves a canonical path to its metadata.
func (s *MemoryMetadataStore) GetFileInfo(ctx context.Context, path string) (*meta.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	canonical, err := meta.NormalizePath(path)
	if err != nil || canonical != path {
		return nil, meta.InvalidPath(path)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[path]
	if !ok {
		return nil, meta.NotFound(path)
	}
	return copyInfo(entry), nil
}

// ListDirectory returns the immediate children of a directory.
func (s *MemoryMetadataStore) ListDirectory(ctx context.Context, path string) ([]*meta.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	canonical, err := meta.NormalizePath(path)
	if err != nil || canonical != path {
		return nil, meta.InvalidPath(path)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.entries[path]
	if !ok {
		return nil, meta.NotFound(path)
	}
	if !entry.IsDirectory {
		return nil, &meta.StoreError{
			Code:    meta.ErrNotDirectory,
			Message: "not a directory",
			Path:    path,
		}
	}

	childSet := s.children[path]
	listing := make([]*meta.FileInfo, 0, len(childSet))
	for childPath := range childSet {
		listing = append(listing, copyInfo(s.entries[childPath]))
	}
	return listing, nil
}

// GetFileBlockInfo returns per-block metadata for a file.
func (s *MemoryMetadataStore) GetFileBlockInfo(ctx context.Context, path string) ([]*meta.FileBlockInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	canonical, err := meta.NormalizePath(path)
	if err != nil || canonical != path {
		return nil, meta.InvalidPath(path)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	if _, ok := s.entries[path]; !ok {
		return nil, meta.NotFound(path)
	}

	records := s.blocks[path]
	out := make([]*meta.FileBlockInfo, len(records))
	for i, record := range records {
		out[i] = copyBlock(record)
	}
	return out, nil
}

// CreateDirectory creates a directory entry. The parent must exist.
func (s *MemoryMetadataStore) CreateDirectory(ctx context.Context, path string) (*meta.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	canonical, err := meta.NormalizePath(path)
	if err != nil || canonical != path || path == meta.RootPath {
		return nil, meta.InvalidPath(path)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[path]; exists {
		return nil, &meta.StoreError{
			Code:    meta.ErrAlreadyExists,
			Message: "path already exists",
			Path:    path,
		}
	}

	parent := meta.ParentPath(path)
	parentEntry, ok := s.entries[parent]
	if !ok {
		return nil, meta.NotFound(parent)
	}
	if !parentEntry.IsDirectory {
		return nil, &meta.StoreError{
			Code:    meta.ErrNotDirectory,
			Message: "parent is not a directory",
			Path:    parent,
		}
	}

	entry := &meta.FileInfo{
		Path:         path,
		Name:         meta.BaseName(path),
		IsDirectory:  true,
		Completed:    true,
		LastModified: time.Now(),
	}
	s.entries[path] = entry
	s.children[path] = make(map[string]struct{})
	s.children[parent][path] = struct{}{}
	return copyInfo(entry), nil
}

// CreateFile creates a file entry with its block records.
func (s *MemoryMetadataStore) CreateFile(ctx context.Context, info *meta.FileInfo, blocks []*meta.FileBlockInfo) (*meta.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	canonical, err := meta.NormalizePath(info.Path)
	if err != nil || canonical != info.Path || info.Path == meta.RootPath {
		return nil, meta.InvalidPath(info.Path)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[info.Path]; exists {
		return nil, &meta.StoreError{
			Code:    meta.ErrAlreadyExists,
			Message: "path already exists",
			Path:    info.Path,
		}
	}

	parent := meta.ParentPath(info.Path)
	parentEntry, ok := s.entries[parent]
	if !ok {
		return nil, meta.NotFound(parent)
	}
	if !parentEntry.IsDirectory {
		return nil, &meta.StoreError{
			Code:    meta.ErrNotDirectory,
			Message: "parent is not a directory",
			Path:    parent,
		}
	}

	entry := copyInfo(info)
	entry.Name = meta.BaseName(info.Path)
	entry.IsDirectory = false
	if entry.LastModified.IsZero() {
		entry.LastModified = time.Now()
	}

	records := make([]*meta.FileBlockInfo, len(blocks))
	for i, block := range blocks {
		records[i] = copyBlock(block)
	}

	s.entries[info.Path] = entry
	s.blocks[info.Path] = records
	s.children[parent][info.Path] = struct{}{}
	return copyInfo(entry), nil
}

// Close is a no-op for the in-memory store.
func (s *MemoryMetadataStore) Close() error {
	return nil
}

func copyInfo(info *meta.FileInfo) *meta.FileInfo {
	clone := *info
	return &clone
}

func copyBlock(block *meta.FileBlockInfo) *meta.FileBlockInfo {
	clone := *block
	clone.Locations = append([]meta.BlockLocation(nil), block.Locations...)
	clone.UnderStoreLocations = append([]string(nil), block.UnderStoreLocations...)
	return &clone
}
