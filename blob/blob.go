package blob

import "context"

// Downloader fetches the raw bytes of an uploaded file by its blob path.
// Implementations must be safe for concurrent use across jobs.
type Downloader interface {
	Download(ctx context.Context, blobPath string) ([]byte, error)
}
