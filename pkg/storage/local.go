package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

// LocalStorage implements Storage on a directory of the local filesystem.
// Writes go to a temp file in the target directory and are renamed into place,
// so readers never see a partially written file.
type LocalStorage struct {
	root string
	perm fs.FileMode
}

// NewLocal creates a LocalStorage rooted at dir, creating the directory if needed.
func NewLocal(dir string) (*LocalStorage, error) {
	if dir == "" {
		return nil, ErrInvalidConfig
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &LocalStorage{root: dir, perm: 0o644}, nil
}

// Root returns the directory the storage writes into.
func (s *LocalStorage) Root() string {
	return s.root
}

// Path returns the filesystem path for key.
func (s *LocalStorage) Path(key string) (string, error) {
	k, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.root, filepath.FromSlash(k)), nil
}

// Put writes r under the key given with WithKey, replacing any existing file.
func (s *LocalStorage) Put(ctx context.Context, r io.Reader, size int64, opts ...Option) (*FileInfo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	o := newPutOptions(opts)
	key, err := buildKey("", o.key)
	if err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("%w: read input: %v", ErrUploadFailed, err)
	}
	if size <= 0 {
		size = int64(len(data))
	}

	contentType := o.contentType
	if contentType == "" {
		contentType = DetectMIME(data)
	}

	if len(o.validationRules) > 0 {
		if err := Validate(size, contentType, o.validationRules...); err != nil {
			return nil, err
		}
	}

	path := filepath.Join(s.root, filepath.FromSlash(key))
	if err := writeAtomic(path, bytes.NewReader(data), s.perm); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}

	return &FileInfo{Key: key, ContentType: contentType, Size: int64(len(data))}, nil
}

// Get opens the file stored under key.
func (s *LocalStorage) Get(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path, err := s.Path(key)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return nil, err
	}
	return f, nil
}

// Delete removes the file stored under key.
func (s *LocalStorage) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path, err := s.Path(key)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %s", ErrNotFound, key)
	}
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDeleteFailed, err)
	}
	return nil
}

// URL returns the slash-separated filesystem path of the file.
func (s *LocalStorage) URL(ctx context.Context, key string) (string, error) {
	path, err := s.Path(key)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(path), nil
}

// writeAtomic writes r to path via a temp file in the same directory.
func writeAtomic(path string, r io.Reader, perm fs.FileMode) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
	}()

	if _, err := io.Copy(tmp, r); err != nil {
		return fmt.Errorf("write temp: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		return fmt.Errorf("fsync temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp: %w", err)
	}
	_ = os.Chmod(tmpPath, perm)

	// Windows refuses to rename over an existing file.
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(path)
		if err2 := os.Rename(tmpPath, path); err2 != nil {
			return fmt.Errorf("rename: %v (after remove: %v)", err, err2)
		}
	}
	return nil
}

// WriteFileAtomic writes data to path using a temp file and rename.
func WriteFileAtomic(path string, data []byte, perm fs.FileMode) error {
	return writeAtomic(path, bytes.NewReader(data), perm)
}

var _ Storage = (*LocalStorage)(nil)
