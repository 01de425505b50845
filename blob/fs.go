package blob

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// FSStore serves blobs from a rooted directory. Intended for local
// operation and tests; paths may not escape the root.
type FSStore struct {
	root   string
	logger *slog.Logger
}

// NewFSStore creates a store rooted at dir. The directory must exist.
func NewFSStore(dir string, logger *slog.Logger) (*FSStore, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("blob root %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("blob root %s is not a directory", dir)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &FSStore{
		root:   dir,
		logger: logger.With("component", "blob"),
	}, nil
}

// Download reads the file at blobPath relative to the store root.
func (s *FSStore) Download(ctx context.Context, blobPath string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cleaned := filepath.Clean(filepath.FromSlash(blobPath))
	if cleaned == "." || !filepath.IsLocal(cleaned) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPath, blobPath)
	}

	body, err := os.ReadFile(filepath.Join(s.root, cleaned))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, blobPath)
		}
		return nil, fmt.Errorf("read blob %s: %w", blobPath, err)
	}

	s.logger.Debug("read blob", "path", cleaned, "bytes", len(body))
	return body, nil
}
