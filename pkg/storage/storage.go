package storage

import (
	"context"
	"io"
)

// Storage defines the interface for file storage operations.
type Storage interface {
	// Put writes data from a reader to storage.
	// The size parameter is used for content-length and validation.
	// A key must be provided with WithKey; existing files with the same key are replaced.
	Put(ctx context.Context, r io.Reader, size int64, opts ...Option) (*FileInfo, error)

	// Get retrieves a file from storage.
	// The caller is responsible for closing the returned reader.
	Get(ctx context.Context, key string) (io.ReadCloser, error)

	// Delete removes a file from storage.
	Delete(ctx context.Context, key string) error

	// URL returns a location for accessing the file.
	URL(ctx context.Context, key string) (string, error)
}

// FileInfo contains metadata about a stored file.
type FileInfo struct {
	// Key is the storage key (path) for the file.
	Key string

	// ContentType is the detected or supplied MIME type.
	ContentType string

	// Size is the file size in bytes.
	Size int64
}

// Config holds S3-compatible storage configuration.
type Config struct {
	// Bucket is the S3 bucket name (required).
	Bucket string `env:"STORAGE_S3_BUCKET"`

	// AccessKey is the AWS access key ID (required).
	AccessKey string `env:"STORAGE_S3_ACCESS_KEY"`

	// SecretKey is the AWS secret access key (required).
	SecretKey string `env:"STORAGE_S3_SECRET_KEY"`

	// Endpoint is the custom S3 endpoint URL (optional, for MinIO or other S3-compatible services).
	Endpoint string `env:"STORAGE_S3_ENDPOINT"`

	// Region is the AWS region (default: us-east-1).
	Region string `env:"STORAGE_S3_REGION"`

	// Prefix is prepended to every key, e.g. "certificates".
	Prefix string `env:"STORAGE_S3_PREFIX"`

	// PathStyle enables path-style URLs (required for MinIO).
	PathStyle bool `env:"STORAGE_S3_PATH_STYLE"`
}

// Enabled reports whether enough configuration is present to build an S3 client.
func (c Config) Enabled() bool {
	return c.Bucket != ""
}

// DefaultRegion is used when Config.Region is empty.
const DefaultRegion = "us-east-1"

func (c *Config) applyDefaults() {
	if c.Region == "" {
		c.Region = DefaultRegion
	}
}

func (c *Config) validate() error {
	if c.Bucket == "" || c.AccessKey == "" || c.SecretKey == "" {
		return ErrInvalidConfig
	}
	return nil
}
