// Package filestorage keeps uploaded receipts, invoices and delivery files on
// the local filesystem under a single root directory.
package filestorage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"orderflow/internal/core/domain/model/kernel"
	"orderflow/internal/pkg/errs"
)

// Local implements ports.FileStorage on a directory. Keys are slash separated
// paths relative to the root; URLs are the key appended to baseURL.
type Local struct {
	root    string
	baseURL string
}

// NewLocal creates the root directory if needed.
func NewLocal(root, baseURL string) (*Local, error) {
	if strings.TrimSpace(root) == "" {
		return nil, errs.NewValueIsRequiredError("storage root")
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("create storage root: %w", err)
	}
	return &Local{root: root, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

// Save writes r under prefix/<uuid>-<name>.
func (s *Local) Save(ctx context.Context, prefix, name string, r io.Reader) (kernel.FileRef, error) {
	if err := ctx.Err(); err != nil {
		return kernel.FileRef{}, err
	}
	name = cleanName(name)
	key := path.Join(prefix, kernel.NewUUID().String()+"-"+name)
	full, err := s.resolve(key)
	if err != nil {
		return kernel.FileRef{}, err
	}

	if err = os.MkdirAll(filepath.Dir(full), 0o750); err != nil {
		return kernel.FileRef{}, fmt.Errorf("save %s: %w", key, err)
	}
	f, err := os.OpenFile(full, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o640)
	if err != nil {
		return kernel.FileRef{}, fmt.Errorf("save %s: %w", key, err)
	}
	if _, err = io.Copy(f, r); err != nil {
		_ = f.Close()
		_ = os.Remove(full)
		return kernel.FileRef{}, fmt.Errorf("save %s: %w", key, err)
	}
	if err = f.Close(); err != nil {
		_ = os.Remove(full)
		return kernel.FileRef{}, fmt.Errorf("save %s: %w", key, err)
	}

	return kernel.NewFileRef(key, name, s.baseURL+"/"+key)
}

// Open returns the stored bytes of key.
func (s *Local) Open(ctx context.Context, key string) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full, err := s.resolve(key)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(full)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errs.NewObjectNotFoundError("file", key)
	}
	return f, err
}

// Delete removes key. A missing key is not an error.
func (s *Local) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	full, err := s.resolve(key)
	if err != nil {
		return err
	}
	if err = os.Remove(full); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}

func (s *Local) resolve(key string) (string, error) {
	rel := filepath.FromSlash(key)
	if key == "" || !filepath.IsLocal(rel) {
		return "", errs.NewValueIsInvalidErrorWithCause("file key", fmt.Errorf("%q escapes the storage root", key))
	}
	return filepath.Join(s.root, rel), nil
}

func cleanName(name string) string {
	name = path.Base(strings.ReplaceAll(strings.TrimSpace(name), "\\", "/"))
	if name == "." || name == "/" || name == "" {
		return "file"
	}
	return name
}
