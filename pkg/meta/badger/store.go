// Package badger implements a BadgerDB-backed metadata store.
package badger

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	badger "github.com/dgraph-io/badger/v4"

	"github.com/tierview/tierview/pkg/meta"
)

// Key schema:
//
//	entry:<path>           -> JSON meta.FileInfo
//	blocks:<path>          -> JSON []*meta.FileBlockInfo
//	child:<parent>\x00<path> -> empty (child index for directory listings)
//
// The \x00 separator keeps "child:/data" scans from matching "/database".
const (
	entryPrefix = "entry:"
	blockPrefix = "blocks:"
	childPrefix = "child:"
	childSep    = "\x00"
)

// BadgerMetadataStore implements meta.MetadataStore using BadgerDB for
// persistence.
//
// It is suitable for deployments where the namespace must survive restarts.
// All records are JSON-encoded under namespaced key prefixes; directory
// listings are served by a prefix scan over the child index.
//
// Thread Safety:
// Operations are protected by a single read-write mutex on top of Badger's
// own transaction isolation. Coarse-grained but correct; the browse workload
// is read-dominated so RLock contention is cheap.
type BadgerMetadataStore struct {
	mu sync.RWMutex
	db *badger.DB
}

// Config holds BadgerDB-specific settings.
type Config struct {
	// Dir is the directory holding the Badger value log and LSM tree
	Dir string `mapstructure:"dir"`

	// InMemory runs Badger without touching disk (used by tests)
	InMemory bool `mapstructure:"in_memory"`
}

// NewBadgerMetadataStore opens (or creates) the database and ensures the
// root directory entry exists.
func NewBadgerMetadataStore(ctx context.Context, cfg Config) (*BadgerMetadataStore, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	opts := badger.DefaultOptions(cfg.Dir).WithLogger(nil)
	if cfg.InMemory {
		opts = opts.WithInMemory(true).WithDir("").WithValueDir("")
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger database: %w", err)
	}

	store := &BadgerMetadataStore{db: db}
	if err := store.ensureRoot(); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *BadgerMetadataStore) ensureRoot() error {
	return s.db.Update(func(txn *badger.Txn) error {
		_, err := txn.Get([]byte(entryPrefix + meta.RootPath))
		if err == nil {
			return nil
		}
		if !errors.Is(err, badger.ErrKeyNotFound) {
			return err
		}
		root := &meta.FileInfo{
			Path:         meta.RootPath,
			Name:         meta.RootPath,
			IsDirectory:  true,
			LastModified: time.Now(),
		}
		return putJSON(txn, entryPrefix+meta.RootPath, root)
	})
}

// GetFileInfo resolves a canonical path to its metadata.
func (s *BadgerMetadataStore) GetFileInfo(ctx context.Context, path string) (*meta.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	canonical, err := meta.NormalizePath(path)
	if err != nil || canonical != path {
		return nil, meta.InvalidPath(path)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var info meta.FileInfo
	err = s.db.View(func(txn *badger.Txn) error {
		return getJSON(txn, entryPrefix+path, &info)
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, meta.NotFound(path)
		}
		return nil, ioError(err, path)
	}
	return &info, nil
}

// ListDirectory returns the immediate children of a directory via a prefix
// scan over the child index.
func (s *BadgerMetadataStore) ListDirectory(ctx context.Context, path string) ([]*meta.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	canonical, err := meta.NormalizePath(path)
	if err != nil || canonical != path {
		return nil, meta.InvalidPath(path)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var listing []*meta.FileInfo
	err = s.db.View(func(txn *badger.Txn) error {
		var parent meta.FileInfo
		if err := getJSON(txn, entryPrefix+path, &parent); err != nil {
			return err
		}
		if !parent.IsDirectory {
			return &meta.StoreError{
				Code:    meta.ErrNotDirectory,
				Message: "not a directory",
				Path:    path,
			}
		}

		prefix := []byte(childPrefix + path + childSep)
		iterOpts := badger.DefaultIteratorOptions
		iterOpts.Prefix = prefix
		iterOpts.PrefetchValues = false

		it := txn.NewIterator(iterOpts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			childPath := string(it.Item().Key()[len(prefix):])
			var child meta.FileInfo
			if err := getJSON(txn, entryPrefix+childPath, &child); err != nil {
				return err
			}
			listing = append(listing, &child)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, meta.NotFound(path)
		}
		var storeErr *meta.StoreError
		if errors.As(err, &storeErr) {
			return nil, storeErr
		}
		return nil, ioError(err, path)
	}
	if listing == nil {
		listing = []*meta.FileInfo{}
	}
	return listing, nil
}

// GetFileBlockInfo returns per-block metadata for a file.
func (s *BadgerMetadataStore) GetFileBlockInfo(ctx context.Context, path string) ([]*meta.FileBlockInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	canonical, err := meta.NormalizePath(path)
	if err != nil || canonical != path {
		return nil, meta.InvalidPath(path)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var blocks []*meta.FileBlockInfo
	err = s.db.View(func(txn *badger.Txn) error {
		if err := getJSON(txn, entryPrefix+path, &meta.FileInfo{}); err != nil {
			return err
		}
		err := getJSON(txn, blockPrefix+path, &blocks)
		if errors.Is(err, badger.ErrKeyNotFound) {
			// Directories and empty files carry no block records.
			return nil
		}
		return err
	})
	if err != nil {
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil, meta.NotFound(path)
		}
		return nil, ioError(err, path)
	}
	if blocks == nil {
		blocks = []*meta.FileBlockInfo{}
	}
	return blocks, nil
}

// CreateDirectory creates a directory entry. The parent must exist.
func (s *BadgerMetadataStore) CreateDirectory(ctx context.Context, path string) (*meta.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	canonical, err := meta.NormalizePath(path)
	if err != nil || canonical != path || path == meta.RootPath {
		return nil, meta.InvalidPath(path)
	}

	entry := &meta.FileInfo{
		Path:         path,
		Name:         meta.BaseName(path),
		IsDirectory:  true,
		Completed:    true,
		LastModified: time.Now(),
	}
	if err := s.createEntry(entry, nil); err != nil {
		return nil, err
	}
	return entry, nil
}

// CreateFile creates a file entry with its block records.
func (s *BadgerMetadataStore) CreateFile(ctx context.Context, info *meta.FileInfo, blocks []*meta.FileBlockInfo) (*meta.FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	canonical, err := meta.NormalizePath(info.Path)
	if err != nil || canonical != info.Path || info.Path == meta.RootPath {
		return nil, meta.InvalidPath(info.Path)
	}

	entry := *info
	entry.Name = meta.BaseName(info.Path)
	entry.IsDirectory = false
	if entry.LastModified.IsZero() {
		entry.LastModified = time.Now()
	}
	if err := s.createEntry(&entry, blocks); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (s *BadgerMetadataStore) createEntry(entry *meta.FileInfo, blocks []*meta.FileBlockInfo) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	parent := meta.ParentPath(entry.Path)
	err := s.db.Update(func(txn *badger.Txn) error {
		if _, err := txn.Get([]byte(entryPrefix + entry.Path)); err == nil {
			return &meta.StoreError{
				Code:    meta.ErrAlreadyExists,
				Message: "path already exists",
				Path:    entry.Path,
			}
		}

		var parentEntry meta.FileInfo
		if err := getJSON(txn, entryPrefix+parent, &parentEntry); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return meta.NotFound(parent)
			}
			return err
		}
		if !parentEntry.IsDirectory {
			return &meta.StoreError{
				Code:    meta.ErrNotDirectory,
				Message: "parent is not a directory",
				Path:    parent,
			}
		}

		if err := putJSON(txn, entryPrefix+entry.Path, entry); err != nil {
			return err
		}
		if blocks != nil {
			if err := putJSON(txn, blockPrefix+entry.Path, blocks); err != nil {
				return err
			}
		}
		return txn.Set([]byte(childPrefix+parent+childSep+entry.Path), nil)
	})
	if err != nil {
		var storeErr *meta.StoreError
		if errors.As(err, &storeErr) {
			return storeErr
		}
		return ioError(err, entry.Path)
	}
	return nil
}

// Close closes the underlying database.
func (s *BadgerMetadataStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

func getJSON(txn *badger.Txn, key string, out any) error {
	item, err := txn.Get([]byte(key))
	if err != nil {
		return err
	}
	return item.Value(func(val []byte) error {
		return json.Unmarshal(val, out)
	})
}

func putJSON(txn *badger.Txn, key string, value any) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return txn.Set([]byte(key), encoded)
}

func ioError(err error, path string) *meta.StoreError {
	return &meta.StoreError{
		Code:    meta.ErrIOError,
		Message: fmt.Sprintf("metadata store unavailable: %v", err),
		Path:    path,
	}
}
