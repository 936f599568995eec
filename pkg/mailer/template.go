package mailer

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

var frontmatterDelim = []byte("---")

// Template is an email template split into frontmatter metadata and a markdown body.
type Template struct {
	Metadata map[string]any
	Body     string
}

// ParseTemplate splits content into YAML frontmatter and body.
// Content without a leading "---" has no metadata.
func ParseTemplate(content []byte) (*Template, error) {
	rest, ok := bytes.CutPrefix(content, frontmatterDelim)
	if !ok {
		return &Template{Metadata: map[string]any{}, Body: string(content)}, nil
	}

	rest = bytes.TrimLeft(rest, "\r\n")
	if len(rest) == 0 {
		return nil, fmt.Errorf("%w: no content after opening delimiter", ErrInvalidFrontmatter)
	}

	head, body, found := bytes.Cut(rest, frontmatterDelim)
	if !found {
		return nil, fmt.Errorf("%w: closing delimiter not found", ErrInvalidFrontmatter)
	}
	if b, ok := bytes.CutPrefix(body, []byte("\r\n")); ok {
		body = b
	} else {
		body = bytes.TrimPrefix(body, []byte("\n"))
	}

	meta := map[string]any{}
	if len(bytes.TrimSpace(head)) > 0 {
		if err := yaml.Unmarshal(head, &meta); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidFrontmatter, err)
		}
	}

	return &Template{Metadata: meta, Body: string(body)}, nil
}
