package gcs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"cloud.google.com/go/storage"
	"google.golang.org/api/googleapi"

	"docai-backend/internal/shared/storage/object"
)

// Store implements object.Fetcher over Google Cloud Storage using the
// host's ambient credentials.
type Store struct {
	client *storage.Client
}

// New creates a GCS-backed fetcher.
func New(ctx context.Context) (*Store, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs client: %w", err)
	}
	return &Store{client: client}, nil
}

// Fetch downloads gs://bucket/key in full.
func (s *Store) Fetch(ctx context.Context, bucket, key string) ([]byte, error) {
	if bucket == "" || key == "" {
		return nil, fmt.Errorf("%w: gcs path needs bucket and key", object.ErrInvalidPath)
	}

	rc, err := s.client.Bucket(bucket).Object(key).NewReader(ctx)
	if err != nil {
		return nil, mapError(bucket, key, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("gcs read bucket=%s key=%s: %w", bucket, key, err)
	}
	return data, nil
}

// Close releases the underlying client.
func (s *Store) Close() error {
	return s.client.Close()
}

func mapError(bucket, key string, err error) error {
	if errors.Is(err, storage.ErrObjectNotExist) || errors.Is(err, storage.ErrBucketNotExist) {
		return fmt.Errorf("%w: gs://%s/%s", object.ErrNotFound, bucket, key)
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		switch apiErr.Code {
		case http.StatusForbidden, http.StatusUnauthorized:
			return fmt.Errorf("%w: gs://%s/%s", object.ErrAccessDenied, bucket, key)
		case http.StatusNotFound:
			return fmt.Errorf("%w: gs://%s/%s", object.ErrNotFound, bucket, key)
		}
	}
	return fmt.Errorf("gcs get bucket=%s key=%s: %w", bucket, key, err)
}
