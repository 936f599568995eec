package storage

import (
	"path"
	"regexp"
	"strings"
)

// pathSegmentRegex matches characters that are not safe for path segments.
var pathSegmentRegex = regexp.MustCompile(`[^a-zA-Z0-9\-_.]`)

// sanitizePathSegment maps segment onto a single safe path element. Separators
// become '_', so dots inside a name are kept; "." and ".." alone yield "".
func sanitizePathSegment(segment string) string {
	segment = pathSegmentRegex.ReplaceAllString(strings.Trim(segment, " /\\"), "_")
	if segment == "." || segment == ".." {
		return ""
	}
	return segment
}

// buildKey joins the sanitized prefix segments and key.
func buildKey(prefix, key string) (string, error) {
	if strings.TrimSpace(key) == "" {
		return "", ErrKeyRequired
	}

	var parts []string
	for _, p := range strings.Split(prefix, "/") {
		if s := sanitizePathSegment(p); s != "" {
			parts = append(parts, s)
		}
	}

	name := sanitizePathSegment(key)
	if name == "" {
		return "", ErrInvalidKey
	}
	parts = append(parts, name)

	return path.Join(parts...), nil
}

// cleanKey validates a key passed to Get/Delete/URL.
func cleanKey(key string) (string, error) {
	if key == "" {
		return "", ErrKeyRequired
	}
	cleaned := path.Clean("/" + strings.ReplaceAll(key, "\\", "/"))[1:]
	if cleaned == "" || cleaned != strings.TrimPrefix(key, "/") {
		return "", ErrInvalidKey
	}
	return cleaned, nil
}
