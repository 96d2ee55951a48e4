package meta

import "errors"

// StoreError represents a domain error from metadata store operations.
//
// These are business logic errors (path not found, access denied, etc.)
// as opposed to infrastructure errors (disk error, network failure).
// The browse layer translates StoreError codes into the single
// human-readable error field of the view model.
type StoreError struct {
	// Code is the error category
	Code ErrorCode

	// Message is a human-readable error description
	Message string

	// Path is the namespace path related to the error (if applicable)
	Path string
}

// Error implements the error interface.
func (e *StoreError) Error() string {
	if e.Path != "" {
		return e.Message + ": " + e.Path
	}
	return e.Message
}

// ErrorCode represents the category of a metadata store error.
type ErrorCode int

const (
	// ErrNotFound indicates the requested path doesn't exist
	ErrNotFound ErrorCode = iota

	// ErrInvalidPath indicates the path string cannot be parsed into
	// canonical segments
	ErrInvalidPath

	// ErrAccessDenied indicates the store rejected the caller
	ErrAccessDenied

	// ErrNotDirectory indicates a listing was requested on a file
	ErrNotDirectory

	// ErrAlreadyExists indicates an entry with the path already exists
	ErrAlreadyExists

	// ErrIOError indicates the backing service could not be reached
	ErrIOError
)

// NotFound builds a StoreError for a missing path.
func NotFound(path string) *StoreError {
	return &StoreError{Code: ErrNotFound, Message: "path does not exist", Path: path}
}

// InvalidPath builds a StoreError for an unparseable path.
func InvalidPath(path string) *StoreError {
	return &StoreError{Code: ErrInvalidPath, Message: "invalid path", Path: path}
}

// CodeOf extracts the ErrorCode from an error, if it carries one.
func CodeOf(err error) (ErrorCode, bool) {
	var storeErr *StoreError
	if errors.As(err, &storeErr) {
		return storeErr.Code, true
	}
	return 0, false
}
