package index

import "errors"

// Vector index errors
var (
	// ErrCollectionConflict indicates the collection exists with a different
	// vector size. Never auto-migrated.
	ErrCollectionConflict = errors.New("collection exists with different vector size")

	// ErrInvalidCollection indicates a collection name that is not a safe
	// SQL identifier.
	ErrInvalidCollection = errors.New("invalid collection name")

	// ErrCountMismatch indicates chunk and embedding sequences of different
	// lengths. Nothing is written.
	ErrCountMismatch = errors.New("chunk and embedding counts differ")

	// ErrNoTenant indicates a job with neither firm nor user scope.
	ErrNoTenant = errors.New("no tenant to resolve a collection for")
)
