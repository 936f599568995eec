package storage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		size     int64
		mimeType string
		rules    []ValidationRule
		wantCode string
	}{
		{"all pass", 1024, "image/jpeg", []ValidationRule{MaxSize(2048), AllowedTypes("image/*")}, ""},
		{"too large", 4096, "image/jpeg", []ValidationRule{MaxSize(2048)}, ErrCodeFileTooLarge},
		{"empty", 0, "image/jpeg", []ValidationRule{NotEmpty()}, ErrCodeEmptyFile},
		{"wrong type", 10, "text/plain; charset=utf-8", []ValidationRule{AllowedTypes("image/*")}, ErrCodeInvalidMIME},
		{"exact type with params", 10, "image/PNG; x=y", []ValidationRule{AllowedTypes("image/png")}, ""},
		{"first failure wins", 0, "text/plain", []ValidationRule{NotEmpty(), AllowedTypes("image/*")}, ErrCodeEmptyFile},
		{"no rules", 0, "", nil, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := Validate(tt.size, tt.mimeType, tt.rules...)
			if tt.wantCode == "" {
				require.NoError(t, err)
				return
			}
			var verr *FileValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.wantCode, verr.Code)
			assert.NotEmpty(t, verr.Error())
		})
	}
}

func TestMatchesMIME(t *testing.T) {
	t.Parallel()

	assert.True(t, matchesMIME("image/png", []string{"image/*"}))
	assert.False(t, matchesMIME("imagex/png", []string{"image/*"}))
	assert.False(t, matchesMIME("application/pdf", []string{"image/*", "text/plain"}))
	assert.True(t, matchesMIME("Application/PDF", []string{" application/pdf "}))
}

func TestMIMEHelpers(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ".pdf", ExtFromMIME("application/pdf"))
	assert.Equal(t, ".png", ExtFromMIME("image/png; q=1"))
	assert.Empty(t, ExtFromMIME("video/mp4"))

	assert.Equal(t, "image/jpeg", MIMEFromExt("AWARD.JPEG"))
	assert.Equal(t, "application/pdf", MIMEFromExt("x.pdf"))
	assert.Equal(t, MIMEOctetStream, MIMEFromExt("x.bin"))

	assert.Equal(t, MIMEOctetStream, DetectMIME(nil))
	assert.Equal(t, "application/pdf", DetectMIME([]byte("%PDF-1.4")))
}

func TestBuildKey(t *testing.T) {
	t.Parallel()

	tests := []struct {
		prefix, key, want string
		wantErr           error
	}{
		{"", "JANE.pdf", "JANE.pdf", nil},
		{"previews", "JANE.png", "previews/JANE.png", nil},
		{"a/b/", "c.txt", "a/b/c.txt", nil},
		{"../up", "x y.pdf", "up/x_y.pdf", nil},
		{"", "cert..v2.png", "cert..v2.png", nil},
		{"", "..png", "..png", nil},
		{"", "../../etc/passwd", ".._.._etc_passwd", nil},
		{"", ".", "", ErrInvalidKey},
		{"", "  ", "", ErrKeyRequired},
		{"", "..", "", ErrInvalidKey},
	}

	for _, tt := range tests {
		got, err := buildKey(tt.prefix, tt.key)
		if tt.wantErr != nil {
			require.ErrorIs(t, err, tt.wantErr)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}
