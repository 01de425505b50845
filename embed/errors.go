package embed

import "errors"

// Embedding errors
var (
	// ErrNotConfigured indicates no embedding provider has been configured.
	// It is returned before any network activity takes place.
	ErrNotConfigured = errors.New("embedding provider not configured")

	// ErrInvalidBatchSize is returned when the batch size is not positive.
	ErrInvalidBatchSize = errors.New("batch size must be greater than 0")

	// ErrInvalidMaxAttempts is returned when the retry attempt limit is not positive.
	ErrInvalidMaxAttempts = errors.New("maxAttempts must be greater than 0")

	// ErrCountMismatch indicates the provider returned a different number of
	// vectors than texts sent. Not retried: the response is structurally wrong.
	ErrCountMismatch = errors.New("embedding count mismatch")

	// ErrDimensionMismatch indicates a vector whose width disagrees with the
	// configured or previously observed dimensionality. Not retried: this is
	// a configuration fault, not a transient failure.
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)
