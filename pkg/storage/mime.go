package storage

import (
	"bytes"
	"io"
	"net/http"
	"path/filepath"
	"strings"
)

// MIME type constants.
const (
	MIMEOctetStream    = "application/octet-stream"
	mimeDetectionBytes = 512 // http.DetectContentType requires up to 512 bytes
)

// mimeExtensions maps MIME types to preferred file extensions.
var mimeExtensions = map[string]string{
	"image/jpeg":      ".jpg",
	"image/png":       ".png",
	"application/pdf": ".pdf",
	"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet": ".xlsx",
	"text/csv":   ".csv",
	"font/ttf":   ".ttf",
	"text/plain": ".txt",
}

// ExtFromMIME returns the file extension for a MIME type.
// Returns empty string if MIME type is unknown.
func ExtFromMIME(mimeType string) string {
	return mimeExtensions[normalizeMIME(mimeType)]
}

// MIMEFromExt returns the MIME type registered for the extension of name,
// or MIMEOctetStream when unknown.
func MIMEFromExt(name string) string {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == ".jpeg" {
		ext = ".jpg"
	}
	for mimeType, e := range mimeExtensions {
		if e == ext {
			return mimeType
		}
	}
	return MIMEOctetStream
}

// DetectMIME sniffs the MIME type of data from its magic bytes.
func DetectMIME(data []byte) string {
	if len(data) == 0 {
		return MIMEOctetStream
	}
	if len(data) > mimeDetectionBytes {
		data = data[:mimeDetectionBytes]
	}
	return http.DetectContentType(data)
}

// detectMIMEWithReader detects MIME type from a reader and returns a seekable reader.
// AWS SDK v2 requires io.ReadSeeker for computing payload hash.
// If input is already seekable, it seeks back to start after detection.
// Otherwise, it buffers the entire content into memory.
func detectMIMEWithReader(r io.Reader) (string, io.ReadSeeker, error) {
	if rs, ok := r.(io.ReadSeeker); ok {
		buf := make([]byte, mimeDetectionBytes)
		n, err := io.ReadFull(rs, buf)
		if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
			return "", nil, err
		}
		if _, err := rs.Seek(0, io.SeekStart); err != nil {
			return "", nil, err
		}
		return DetectMIME(buf[:n]), rs, nil
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", nil, err
	}
	return DetectMIME(data), bytes.NewReader(data), nil
}

// normalizeMIME extracts the base MIME type, removing parameters like charset.
func normalizeMIME(mimeType string) string {
	mimeType, _, _ = strings.Cut(mimeType, ";")
	return strings.TrimSpace(strings.ToLower(mimeType))
}

// matchesMIME checks if a MIME type matches any of the allowed patterns.
// Supports wildcards like "image/*".
func matchesMIME(mimeType string, allowed []string) bool {
	mimeType = normalizeMIME(mimeType)

	for _, pattern := range allowed {
		pattern = strings.TrimSpace(strings.ToLower(pattern))

		if mimeType == pattern {
			return true
		}

		if prefix, ok := strings.CutSuffix(pattern, "*"); ok && strings.HasSuffix(prefix, "/") {
			if strings.HasPrefix(mimeType, prefix) {
				return true
			}
		}
	}

	return false
}
