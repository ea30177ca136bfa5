package infra

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// ErrStorage wraps every failure reported by an object store backend.
var ErrStorage = errors.New("storage error")

// ObjectStore is the gateway to the bucket holding images and videos. Keys are
// the original filenames of the uploaded files.
type ObjectStore interface {
	// Store uploads body under key, silently overwriting an existing object.
	Store(ctx context.Context, bucket, key string, body io.Reader, size int64, contentType string) error
	// Remove deletes key; a missing object is not an error.
	Remove(ctx context.Context, bucket, key string) error
	Exists(ctx context.Context, bucket, key string) (bool, error)
	// List returns every key in the bucket, following pagination to the end.
	List(ctx context.Context, bucket string) ([]string, error)
	URL(bucket, key string) string
}

// PublicURL is the canonical public address of a stored object.
func PublicURL(bucket, region, key string) string {
	return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", bucket, region, url.PathEscape(key))
}

// ObjectURL honours a configured public base URL (S3-compatible hosts) and
// otherwise falls back to PublicURL.
func ObjectURL(baseURL, bucket, region, key string) string {
	if baseURL == "" {
		return PublicURL(bucket, region, key)
	}
	return fmt.Sprintf("%s/%s/%s", strings.TrimSuffix(baseURL, "/"), bucket, url.PathEscape(key))
}

// KeyFromURL recovers the object key (the filename) from a public URL.
func KeyFromURL(rawURL string) string {
	segment := rawURL
	if idx := strings.LastIndex(rawURL, "/"); idx >= 0 {
		segment = rawURL[idx+1:]
	}
	if decoded, err := url.PathUnescape(segment); err == nil {
		return decoded
	}
	return segment
}

func storageError(op, bucket, key string, err error) error {
	return fmt.Errorf("%w: %s %s/%s: %v", ErrStorage, op, bucket, key, err)
}
