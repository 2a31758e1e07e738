package storage

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"
)

// Storage defines the object-storage operations used by the app. Objects
// live in named buckets ("resume" for uploaded resumes, "avatars" for
// profile photos).
type Storage interface {
	// Save stores an object, overwriting any existing one at the path
	Save(ctx context.Context, bucket, path string, reader io.Reader, contentType string) error

	// Get retrieves an object
	Get(ctx context.Context, bucket, path string) (io.ReadCloser, error)

	// Delete removes an object
	Delete(ctx context.Context, bucket, path string) error

	// Exists checks if an object exists
	Exists(ctx context.Context, bucket, path string) (bool, error)

	// GetURL returns the public URL for the object
	GetURL(ctx context.Context, bucket, path string) (string, error)

	// GetSignedURL returns a temporary signed URL for private objects
	GetSignedURL(ctx context.Context, bucket, path string, expiry time.Duration) (string, error)

	// GetSize returns the object size in bytes
	GetSize(ctx context.Context, bucket, path string) (int64, error)
}

// Config holds storage configuration
type Config struct {
	Type      string // local, s3
	BasePath  string // for local storage
	BaseURL   string // public URL base
	Region    string // for S3
	AccessKey string // for S3/R2
	SecretKey string // for S3/R2
	Endpoint  string // for R2 or custom S3
}

// NewStorage creates a storage instance based on configuration.
func NewStorage(cfg Config) (Storage, error) {
	switch cfg.Type {
	case "local":
		return NewLocalStorage(cfg)
	case "s3":
		return NewS3Storage(cfg)
	default:
		return nil, fmt.Errorf("unsupported storage type: %s", cfg.Type)
	}
}

// PublicObjectPath extracts bucket-relative object path from a public URL
// produced by GetURL, e.g. ".../object/public/resume/<path>". Returns ""
// when the URL does not reference the given bucket.
func PublicObjectPath(url, bucket string) string {
	marker := "/object/public/" + bucket + "/"
	idx := strings.Index(url, marker)
	if idx == -1 {
		return ""
	}
	return url[idx+len(marker):]
}

// publicURL builds the canonical public URL for an object.
func publicURL(baseURL, bucket, path string) string {
	return fmt.Sprintf("%s/object/public/%s/%s", strings.TrimRight(baseURL, "/"), bucket, path)
}
