package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

// S3Storage keeps objects in one bucket of an S3-compatible service.
// Generated certificates are mirrored here when a bucket is configured.
type S3Storage struct {
	client *s3.Client
	cfg    Config
}

// NewS3 builds a client with static credentials. Endpoint switches to a
// custom service such as MinIO.
func NewS3(cfg Config) (*S3Storage, error) {
	cfg.applyDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	client := s3.New(s3.Options{
		Region:      cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
	}, func(o *s3.Options) {
		if cfg.Endpoint == "" {
			return
		}
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = cfg.PathStyle
	})

	return &S3Storage{client: client, cfg: cfg}, nil
}

// Put uploads r under Config.Prefix joined with the WithKey key.
func (s *S3Storage) Put(ctx context.Context, r io.Reader, size int64, opts ...Option) (*FileInfo, error) {
	o := newPutOptions(opts)

	key, err := buildKey(s.cfg.Prefix, o.key)
	if err != nil {
		return nil, err
	}

	contentType, body, err := s.prepare(r, o.contentType)
	if err != nil {
		return nil, fmt.Errorf("%w: read input: %v", ErrUploadFailed, err)
	}
	if err := Validate(size, contentType, o.validationRules...); err != nil {
		return nil, err
	}

	if _, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(s.cfg.Bucket),
		Key:           aws.String(key),
		Body:          body,
		ContentLength: aws.Int64(size),
		ContentType:   aws.String(contentType),
	}); err != nil {
		return nil, wrapS3Error(err, ErrUploadFailed)
	}

	return &FileInfo{Key: key, Size: size, ContentType: contentType}, nil
}

// prepare returns a seekable body and its content type, sniffing the type when none is given.
func (s *S3Storage) prepare(r io.Reader, contentType string) (string, io.ReadSeeker, error) {
	if contentType == "" {
		return detectMIMEWithReader(r)
	}
	if rs, ok := r.(io.ReadSeeker); ok {
		return contentType, rs, nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", nil, err
	}
	return contentType, bytes.NewReader(data), nil
}

// Get opens the object stored under key.
func (s *S3Storage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, wrapS3Error(err, ErrNotFound)
	}
	return out.Body, nil
}

// Delete removes the object stored under key.
func (s *S3Storage) Delete(ctx context.Context, key string) error {
	if _, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.Bucket),
		Key:    aws.String(key),
	}); err != nil {
		return wrapS3Error(err, ErrDeleteFailed)
	}
	return nil
}

// URL returns the unsigned object URL.
func (s *S3Storage) URL(_ context.Context, key string) (string, error) {
	switch endpoint := strings.TrimSuffix(s.cfg.Endpoint, "/"); {
	case endpoint == "":
		return fmt.Sprintf("https://%s.s3.%s.amazonaws.com/%s", s.cfg.Bucket, s.cfg.Region, key), nil
	case s.cfg.PathStyle:
		return endpoint + "/" + s.cfg.Bucket + "/" + key, nil
	default:
		return endpoint + "/" + key, nil
	}
}

var _ Storage = (*S3Storage)(nil)
