package artifact

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"strings"

	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/certificate"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/logger"
	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/storage"
)

// File extensions of stored artifacts.
const (
	ExtDocument = ".pdf"
	ExtPreview  = ".png"
)

// ErrSave is returned when an artifact cannot be encoded or written.
var ErrSave = errors.New("artifact: save failed")

// Paths are the local filesystem paths of a saved certificate.
// Preview is empty unless a preview was requested.
type Paths struct {
	Document string
	Preview  string
}

// SanitizeName replaces every rune outside [A-Za-z0-9] with an underscore.
func SanitizeName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		default:
			return '_'
		}
	}, name)
}

// Store writes certificates to local storage and an optional mirror.
type Store struct {
	local  *storage.LocalStorage
	mirror storage.Storage
	log    *slog.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithMirror uploads a copy of every artifact to s.
func WithMirror(s storage.Storage) Option {
	return func(st *Store) {
		st.mirror = s
	}
}

// WithLogger sets the logger used to report mirror failures.
func WithLogger(l *slog.Logger) Option {
	return func(st *Store) {
		if l != nil {
			st.log = l
		}
	}
}

// NewStore creates a Store writing into local.
func NewStore(local *storage.LocalStorage, opts ...Option) *Store {
	st := &Store{
		local: local,
		log:   logger.NewNope(),
	}
	for _, opt := range opts {
		opt(st)
	}
	return st
}

// Dir returns the local output directory.
func (s *Store) Dir() string {
	return s.local.Root()
}

// Save writes img as <SAFE>.pdf and, when preview is set, as <SAFE>.png.
// Existing files with the same name are replaced.
func (s *Store) Save(ctx context.Context, img image.Image, name string, preview bool) (Paths, error) {
	base := SanitizeName(name)

	var doc bytes.Buffer
	if err := certificate.EncodePDF(&doc, img); err != nil {
		return Paths{}, fmt.Errorf("%w: %w", ErrSave, err)
	}

	var paths Paths
	var err error
	paths.Document, err = s.put(ctx, base+ExtDocument, certificate.ContentTypePDF, doc.Bytes())
	if err != nil {
		return Paths{}, err
	}

	if preview {
		var png bytes.Buffer
		if err := certificate.EncodePNG(&png, img); err != nil {
			return Paths{}, fmt.Errorf("%w: %w", ErrSave, err)
		}
		paths.Preview, err = s.put(ctx, base+ExtPreview, certificate.ContentTypePNG, png.Bytes())
		if err != nil {
			return Paths{}, err
		}
	}

	return paths, nil
}

func (s *Store) put(ctx context.Context, key, contentType string, data []byte) (string, error) {
	info, err := s.local.Put(ctx, bytes.NewReader(data), int64(len(data)),
		storage.WithKey(key),
		storage.WithContentType(contentType),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrSave, key, err)
	}

	path, err := s.local.Path(info.Key)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %w", ErrSave, key, err)
	}

	if s.mirror != nil {
		if _, err := s.mirror.Put(ctx, bytes.NewReader(data), int64(len(data)),
			storage.WithKey(key),
			storage.WithContentType(contentType),
		); err != nil {
			s.log.WarnContext(ctx, "artifact mirror upload failed",
				slog.String("key", key),
				slog.String("error", err.Error()),
			)
		}
	}

	return path, nil
}
