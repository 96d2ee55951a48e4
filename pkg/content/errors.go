package content

import "errors"

// Sentinel errors shared by all content store implementations.
//
// Implementations wrap these with context:
//
//	return nil, fmt.Errorf("content %s: %w", id, content.ErrContentNotFound)
//
// so callers can branch with errors.Is while keeping the detail.
var (
	// ErrContentNotFound indicates the requested content does not exist.
	ErrContentNotFound = errors.New("content not found")

	// ErrStoreUnavailable indicates the backing service could not be
	// reached. This is a transient infrastructure failure, distinct from
	// a missing ID.
	ErrStoreUnavailable = errors.New("content store unavailable")
)
