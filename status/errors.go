package status

import "errors"

// ErrFileNotFound indicates the owning system has no record of the file id.
// Callers treat it as terminal rather than retrying.
var ErrFileNotFound = errors.New("file not found in owning system")
