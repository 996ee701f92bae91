package storage

import (
	"context"
	"errors"
	"io"
)

var (
	ErrInvalidPath = errors.New("invalid file path")
	ErrNotFound    = errors.New("file not found")
)

// FileStorage persists uploaded attachments under opaque keys.
type FileStorage interface {
	// Upload stores file under key and returns the normalized key.
	Upload(ctx context.Context, file io.Reader, key string, contentType string) (string, error)
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
	// URL is the public address clients use to fetch key.
	URL(key string) string
}
