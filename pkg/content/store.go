// Package content defines the read-side content store consumed by the
// browse layer.
package content

import (
	"context"
	"io"
)

// OpenOptions controls how content is opened for reading.
type OpenOptions struct {
	// BypassCache opens the stream without promoting the content into any
	// fast tier. Previews are read-once and must not pollute the cache.
	BypassCache bool
}

// ContentStore provides read access to file content.
//
// The store manages only raw bytes; metadata (paths, attributes, block maps)
// lives in the metadata store, which references content by ContentID.
//
// Content Identifiers:
// IDs are opaque strings. The format is implementation-specific:
//   - Memory: caller-chosen key
//   - S3: object key within the configured bucket
//
// Thread Safety:
// Implementations must be safe for concurrent use. A returned reader belongs
// to a single request and must be closed by the caller on every path.
type ContentStore interface {
	// Open returns a reader for the content identified by the given ID.
	//
	// Returns:
	//   - io.ReadCloser: Reader for the content (must be closed by caller)
	//   - error: ErrContentNotFound if the ID doesn't exist,
	//     ErrStoreUnavailable if the backing service can't be reached, or
	//     context cancellation
	Open(ctx context.Context, id string, opts OpenOptions) (io.ReadCloser, error)

	// Locations reports where this store holds the content, as address
	// strings in the store's own format (e.g. "worker-1:29999" or
	// "s3://bucket/key"). The order is the store's reported order and is
	// preserved by callers.
	//
	// Returns:
	//   - []string: Store addresses holding the content (may be empty)
	//   - error: ErrContentNotFound if the ID doesn't exist, or context
	//     cancellation
	Locations(ctx context.Context, id string) ([]string, error)
}
