// Package catalog lists and accepts the certificate templates and fonts a
// batch can choose from.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/draccs2211/AUTOCERTIFY-WEB-APPLICATION/pkg/storage"
)

var (
	ErrNoFile          = errors.New("catalog: no file selected")
	ErrUnsupportedType = errors.New("catalog: only JPG or PNG files are allowed")
	ErrInvalidImage    = errors.New("catalog: file is not a JPG or PNG image")
)

// Accepted file extensions, matched case-insensitively.
var (
	TemplateExtensions = []string{".jpg", ".png"}
	FontExtensions     = []string{".ttf"}
)

// DefaultMaxUploadSize limits template uploads.
const DefaultMaxUploadSize = 20 << 20

var unsafeFilename = regexp.MustCompile(`[^a-zA-Z0-9_.-]`)

// SanitizeFilename replaces characters outside [a-zA-Z0-9_.-] with underscores.
func SanitizeFilename(name string) string {
	return unsafeFilename.ReplaceAllString(name, "_")
}

// Catalog is a pair of directories holding templates and fonts.
type Catalog struct {
	templatesDir string
	fontsDir     string
	templates    *storage.LocalStorage
	maxUpload    int64
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithMaxUploadSize overrides DefaultMaxUploadSize.
func WithMaxUploadSize(n int64) Option {
	return func(c *Catalog) {
		c.maxUpload = n
	}
}

// New creates a Catalog, creating both directories if missing.
func New(templatesDir, fontsDir string, opts ...Option) (*Catalog, error) {
	templates, err := storage.NewLocal(templatesDir)
	if err != nil {
		return nil, fmt.Errorf("catalog: templates dir: %w", err)
	}
	if err := os.MkdirAll(fontsDir, 0o755); err != nil {
		return nil, fmt.Errorf("catalog: fonts dir: %w", err)
	}

	c := &Catalog{
		templatesDir: templatesDir,
		fontsDir:     fontsDir,
		templates:    templates,
		maxUpload:    DefaultMaxUploadSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// TemplatesDir returns the templates directory.
func (c *Catalog) TemplatesDir() string { return c.templatesDir }

// FontsDir returns the fonts directory.
func (c *Catalog) FontsDir() string { return c.fontsDir }

// FontPath joins name onto the fonts directory. It does not check existence.
func (c *Catalog) FontPath(name string) string {
	return filepath.Join(c.fontsDir, filepath.Base(name))
}

// Templates returns the sorted names of template images.
func (c *Catalog) Templates() ([]string, error) {
	return list(c.templatesDir, TemplateExtensions)
}

// Fonts returns the sorted names of TrueType fonts.
func (c *Catalog) Fonts() ([]string, error) {
	return list(c.fontsDir, FontExtensions)
}

// UploadTemplate stores r as a template under the sanitized filename and
// returns the name it was written under. An existing template with the same name is replaced.
func (c *Catalog) UploadTemplate(ctx context.Context, filename string, r io.Reader, size int64) (string, error) {
	if filename == "" || r == nil {
		return "", ErrNoFile
	}
	if !hasExt(filename, TemplateExtensions) {
		return "", ErrUnsupportedType
	}

	name := SanitizeFilename(filename)
	info, err := c.templates.Put(ctx, r, size,
		storage.WithKey(name),
		storage.WithValidation(
			storage.NotEmpty(),
			storage.MaxSize(c.maxUpload),
			storage.AllowedTypes("image/jpeg", "image/png"),
		),
	)
	var verr *storage.FileValidationError
	if errors.As(err, &verr) {
		return "", fmt.Errorf("%w: %s", ErrInvalidImage, verr.Message)
	}
	if err != nil {
		return "", fmt.Errorf("catalog: save %s: %w", name, err)
	}
	return info.Key, nil
}

func list(dir string, exts []string) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	names := []string{}
	for _, e := range entries {
		if e.Type().IsRegular() && hasExt(e.Name(), exts) {
			names = append(names, e.Name())
		}
	}
	slices.Sort(names)
	return names, nil
}

func hasExt(name string, exts []string) bool {
	return slices.Contains(exts, strings.ToLower(filepath.Ext(name)))
}
