package ports

import (
	"context"
	"io"
	"time"
)

// StoragePort blob store behind task attachments (local disk or S3 compatible)
type StoragePort interface {
	// UploadFile stores size bytes from r under path and returns the public URL
	UploadFile(ctx context.Context, r io.Reader, size int64, path string, contentType string) (string, error)

	// DeleteFiles removes every path; missing objects are not an error
	DeleteFiles(ctx context.Context, paths []string) error

	// GetFileURL public URL derived from the path, never stored
	GetFileURL(path string) string

	// GetSignedURL time limited URL, expiry is clamped by the provider
	GetSignedURL(ctx context.Context, path string, expiry time.Duration) (string, error)

	// GetProviderName local, s3
	GetProviderName() string
}
