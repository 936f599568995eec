package storage

import (
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
)

var (
	ErrInvalidConfig = errors.New("storage: invalid configuration")
	ErrKeyRequired   = errors.New("storage: key is required")
	ErrInvalidKey    = errors.New("storage: invalid key")
	ErrNotFound      = errors.New("storage: file not found")
	ErrAccessDenied  = errors.New("storage: access denied")
	ErrUploadFailed  = errors.New("storage: upload failed")
	ErrDeleteFailed  = errors.New("storage: delete failed")
)

// wrapS3Error classifies an S3 failure as ErrNotFound, ErrAccessDenied or fallback.
// The AWS error is formatted, not wrapped.
func wrapS3Error(err, fallback error) error {
	sentinel := fallback

	var apiErr smithy.APIError
	var noSuchKey *types.NoSuchKey
	switch {
	case errors.As(err, &noSuchKey):
		sentinel = ErrNotFound
	case errors.As(err, &apiErr):
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			sentinel = ErrNotFound
		case "AccessDenied", "Forbidden":
			sentinel = ErrAccessDenied
		}
	}
	return fmt.Errorf("%w: %v", sentinel, err)
}
