package storage

import "fmt"

// Codes carried by FileValidationError.
const (
	ErrCodeFileTooLarge = "file_too_large"
	ErrCodeInvalidMIME  = "invalid_mime"
	ErrCodeEmptyFile    = "empty_file"
)

// FileValidationError is returned by Put when a rule rejects the input.
// Nothing is written in that case.
type FileValidationError struct {
	Details map[string]any
	Code    string
	Message string
}

func (e *FileValidationError) Error() string {
	return e.Message
}

func rejected(code string, details map[string]any, format string, args ...any) *FileValidationError {
	return &FileValidationError{Code: code, Details: details, Message: fmt.Sprintf(format, args...)}
}

// ValidationRule inspects the size and sniffed MIME type of an upload.
type ValidationRule func(size int64, mimeType string) error

// Validate applies rules in order and stops at the first rejection.
func Validate(size int64, mimeType string, rules ...ValidationRule) error {
	for _, check := range rules {
		if err := check(size, mimeType); err != nil {
			return err
		}
	}
	return nil
}

// MaxSize rejects uploads above limit bytes.
func MaxSize(limit int64) ValidationRule {
	return func(size int64, _ string) error {
		if size <= limit {
			return nil
		}
		return rejected(ErrCodeFileTooLarge, map[string]any{"limit": limit, "got": size},
			"file size %d exceeds limit of %d bytes", size, limit)
	}
}

// NotEmpty rejects zero-length uploads.
func NotEmpty() ValidationRule {
	return func(size int64, _ string) error {
		if size != 0 {
			return nil
		}
		return rejected(ErrCodeEmptyFile, map[string]any{}, "file is empty")
	}
}

// AllowedTypes accepts only the given MIME types. A pattern may end in "/*".
func AllowedTypes(patterns ...string) ValidationRule {
	return func(_ int64, mimeType string) error {
		if matchesMIME(mimeType, patterns) {
			return nil
		}
		return rejected(ErrCodeInvalidMIME, map[string]any{"type": mimeType, "allowed": patterns},
			"file type %q is not allowed", mimeType)
	}
}
