package object

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Fetcher reads a remote object identified by bucket and key.
type Fetcher interface {
	Fetch(ctx context.Context, bucket, key string) ([]byte, error)
}

var (
	// ErrInvalidPath marks a storage path that is malformed or uses an
	// unsupported scheme.
	ErrInvalidPath = errors.New("invalid storage path")
	// ErrNotFound marks a referenced object that does not exist.
	ErrNotFound = errors.New("object not found")
	// ErrAccessDenied marks an object the service credentials cannot read.
	ErrAccessDenied = errors.New("object access denied")
)

// ParsePath splits a storage path like gs://bucket/key into its parts.
func ParsePath(storagePath string) (scheme, bucket, key string, err error) {
	raw := strings.TrimSpace(storagePath)
	if raw == "" {
		return "", "", "", fmt.Errorf("%w: empty path", ErrInvalidPath)
	}

	u, parseErr := url.Parse(raw)
	if parseErr != nil || u.Scheme == "" {
		return "", "", "", fmt.Errorf("%w: %q", ErrInvalidPath, storagePath)
	}

	key = strings.TrimPrefix(u.Path, "/")
	if u.Host == "" && key == "" {
		return "", "", "", fmt.Errorf("%w: %q", ErrInvalidPath, storagePath)
	}
	return strings.ToLower(u.Scheme), u.Host, key, nil
}

// Resolver routes storage paths to the fetcher registered for their scheme.
type Resolver struct {
	fetchers map[string]Fetcher
}

// NewResolver builds a resolver over the given scheme-keyed fetchers.
func NewResolver(fetchers map[string]Fetcher) *Resolver {
	copied := make(map[string]Fetcher, len(fetchers))
	for scheme, f := range fetchers {
		if f != nil {
			copied[strings.ToLower(scheme)] = f
		}
	}
	return &Resolver{fetchers: copied}
}

// Fetch parses the storage path and reads the object through the matching
// fetcher.
func (r *Resolver) Fetch(ctx context.Context, storagePath string) ([]byte, error) {
	scheme, bucket, key, err := ParsePath(storagePath)
	if err != nil {
		return nil, err
	}

	fetcher, ok := r.fetchers[scheme]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported scheme %q", ErrInvalidPath, scheme)
	}
	return fetcher.Fetch(ctx, bucket, key)
}

// Schemes lists the schemes the resolver can serve.
func (r *Resolver) Schemes() []string {
	out := make([]string, 0, len(r.fetchers))
	for scheme := range r.fetchers {
		out = append(out, scheme)
	}
	return out
}
