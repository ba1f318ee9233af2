package local

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"docai-backend/internal/shared/storage/object"
)

// Store implements object.Fetcher over a local directory. It backs
// file:// storage paths in development and tests.
type Store struct {
	baseDir string
}

// New creates a local fetcher rooted at baseDir.
func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

// Fetch reads the file addressed by the storage path key. The bucket part
// of a file:// path is empty and ignored.
func (s *Store) Fetch(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	rel := key
	if bucket != "" {
		rel = filepath.Join(bucket, key)
	}
	clean := filepath.Clean(rel)
	if clean == "" || clean == "." || strings.HasPrefix(clean, "..") || filepath.IsAbs(clean) {
		return nil, fmt.Errorf("%w: %q", object.ErrInvalidPath, rel)
	}

	data, err := os.ReadFile(filepath.Join(s.baseDir, clean))
	if err != nil {
		switch {
		case os.IsNotExist(err):
			return nil, fmt.Errorf("%w: %s", object.ErrNotFound, clean)
		case os.IsPermission(err):
			return nil, fmt.Errorf("%w: %s", object.ErrAccessDenied, clean)
		default:
			return nil, fmt.Errorf("read %s: %w", clean, err)
		}
	}
	return data, nil
}
