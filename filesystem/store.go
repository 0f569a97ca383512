// Package filesystem provides the local directory storage backend for the
// gallery. Relative paths are resolved against the configured root; absolute
// paths are used as given, so callers own any containment policy.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sagarc03/gallery"
)

// Store provides read-only file system operations.
type Store struct {
	root string
}

// NewFileStorage creates a new Store rooted at dir. The root is resolved to an
// absolute path once; it must exist and be a directory.
func NewFileStorage(dir string) (*Store, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolve root %s: %w", dir, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("open root %s: %w", dir, gallery.ErrNotFound)
		}
		return nil, fmt.Errorf("open root %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("open root %s: not a directory", dir)
	}

	return &Store{root: abs}, nil
}

// Root returns the absolute root directory.
func (s *Store) Root() string {
	return s.root
}

// ReadDir lists the immediate children of dir. Each child is stat'ed so that
// symlinks report the type of their target. A child that cannot be stat'ed
// fails the whole listing.
func (s *Store) ReadDir(ctx context.Context, dir string) ([]gallery.Entry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	full := gallery.ResolvePath(s.root, dir)

	dirEntries, err := os.ReadDir(full)
	if err != nil {
		return nil, mapError(err)
	}

	entries := make([]gallery.Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		info, err := os.Stat(filepath.Join(full, de.Name()))
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", de.Name(), mapError(err))
		}

		entries = append(entries, gallery.Entry{
			Name:  de.Name(),
			IsDir: info.IsDir(),
		})
	}

	slog.Debug("read dir", "dir", full, "entries", len(entries))

	return entries, nil
}

// ReadFile returns the full content of path. Returns gallery.ErrNotFound if
// the file does not exist.
func (s *Store) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(gallery.ResolvePath(s.root, path))
	if err != nil {
		return nil, mapError(err)
	}

	return data, nil
}

// mapError tags missing paths with gallery.ErrNotFound while keeping the
// underlying error text.
func mapError(err error) error {
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%w: %w", gallery.ErrNotFound, err)
	}
	return err
}
