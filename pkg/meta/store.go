package meta

import "context"

// MetadataStore resolves namespace paths to file and directory metadata.
//
// The store is the browse layer's only source of truth about the namespace:
// which entries exist, their attributes, their children, and where each
// file's blocks are held (in-memory replicas and backing-store copies).
//
// Read operations take canonical paths as produced by NormalizePath.
// Implementations are free to reject non-canonical input with ErrInvalidPath.
//
// Error Handling:
// All business-logic failures are reported as *StoreError with an ErrorCode
// the caller can branch on (ErrNotFound, ErrInvalidPath, ErrAccessDenied,
// ErrNotDirectory, ErrIOError). Infrastructure failures may be wrapped but
// should carry ErrIOError so the browse layer can downgrade them uniformly.
//
// Thread Safety:
// Implementations must be safe for concurrent use by many simultaneous
// requests. The browse layer shares one store handle across all requests
// and never mutates it.
type MetadataStore interface {
	// GetFileInfo resolves a canonical path to its metadata.
	//
	// Returns:
	//   - *FileInfo: Metadata for the file or directory at the path
	//   - error: ErrNotFound if the path doesn't exist, ErrInvalidPath if
	//     the path is not canonical, or context cancellation
	GetFileInfo(ctx context.Context, path string) (*FileInfo, error)

	// ListDirectory returns the immediate children of a directory.
	//
	// The order of the returned slice is implementation-specific; callers
	// that need a stable order must sort.
	//
	// Returns:
	//   - []*FileInfo: The directory's children (may be empty)
	//   - error: ErrNotFound if the path doesn't exist, ErrNotDirectory if
	//     it resolves to a file, or context cancellation
	ListDirectory(ctx context.Context, path string) ([]*FileInfo, error)

	// GetFileBlockInfo returns per-block metadata for a file, in block
	// order, including in-memory replica locations and backing-store
	// locations for each block.
	//
	// Returns:
	//   - []*FileBlockInfo: One entry per block (empty for empty files)
	//   - error: ErrNotFound if the path doesn't exist, ErrInvalidPath if
	//     it is not canonical, or context cancellation
	GetFileBlockInfo(ctx context.Context, path string) ([]*FileBlockInfo, error)

	// CreateDirectory creates a directory entry at the given canonical
	// path. The parent must already exist.
	//
	// Used by server bootstrap (demo seeding) and tests; the browse layer
	// itself never writes.
	CreateDirectory(ctx context.Context, path string) (*FileInfo, error)

	// CreateFile creates a file entry with the given attributes and block
	// records. The parent directory must already exist.
	CreateFile(ctx context.Context, info *FileInfo, blocks []*FileBlockInfo) (*FileInfo, error)

	// Close releases any resources held by the store.
	Close() error
}
