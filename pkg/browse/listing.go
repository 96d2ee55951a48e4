package browse

import (
	"context"
	"errors"
	"sort"
	"strconv"

	"github.com/tierview/tierview/pkg/meta"
)

// Pagination failures. The browse boundary maps these onto the view's
// error field; they never escape a request.
var (
	// ErrBadPaginationInput indicates a non-integer (or missing) offset
	// or limit parameter when pagination was requested.
	ErrBadPaginationInput = errors.New("offset or limit parse error")

	// ErrPaginationOutOfBounds indicates a window that does not satisfy
	// 0 <= offset <= offset+limit <= total.
	ErrPaginationOutOfBounds = errors.New("offset or offset + limit is out of bound")
)

// DirectoryLister fetches and orders a directory's children.
type DirectoryLister struct {
	store meta.MetadataStore
}

// NewDirectoryLister creates a lister over the given store.
func NewDirectoryLister(store meta.MetadataStore) *DirectoryLister {
	return &DirectoryLister{store: store}
}

// List returns the directory's children sorted ascending by absolute path.
// Paths are unique, so the order is a strict total order and sorting is
// idempotent.
func (l *DirectoryLister) List(ctx context.Context, path string) ([]*meta.FileInfo, error) {
	children, err := l.store.ListDirectory(ctx, path)
	if err != nil {
		return nil, err
	}

	sort.Slice(children, func(i, j int) bool {
		return children[i].Path < children[j].Path
	})
	return children, nil
}

// Window describes a pagination request as it arrived: raw parameter
// strings plus presence flags, since deferral depends on absence.
type Window struct {
	Offset    string
	Limit     string
	HasOffset bool
	HasLimit  bool
}

// Requested reports whether the caller asked for any windowing at all.
// When neither parameter is present, windowing is deferred to the client,
// which knows its page size; the server does not guess one.
func (w Window) Requested() bool {
	return w.HasOffset || w.HasLimit
}

// Slice applies the pagination window to the sorted entries.
//
// Both parameters must parse as integers (ErrBadPaginationInput otherwise)
// and the window must satisfy 0 <= offset <= offset+limit <= total
// (ErrPaginationOutOfBounds otherwise). On success the result is the exact
// sub-sequence [offset, offset+limit), never a silent truncation.
func (w Window) Slice(entries []*Entry) ([]*Entry, error) {
	offset, err := strconv.Atoi(w.Offset)
	if err != nil {
		return nil, ErrBadPaginationInput
	}
	limit, err := strconv.Atoi(w.Limit)
	if err != nil {
		return nil, ErrBadPaginationInput
	}

	// Checked without computing offset+limit: the sum overflows for
	// MaxInt-scale query parameters.
	if offset < 0 || limit < 0 || offset > len(entries) || limit > len(entries)-offset {
		return nil, ErrPaginationOutOfBounds
	}
	return entries[offset : offset+limit], nil
}
