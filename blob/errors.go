package blob

import "errors"

// Blob storage errors
var (
	// ErrNotFound indicates no blob exists at the requested path.
	ErrNotFound = errors.New("blob not found")

	// ErrInvalidPath indicates a blob path that escapes the store's root.
	ErrInvalidPath = errors.New("invalid blob path")
)
