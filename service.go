package gallery

import (
	"context"
	"fmt"
)

// FileStorage defines the read-only filesystem operations the gallery needs.
// Paths are either absolute or relative to Root.
//
// All methods accept a context for cancellation. Implementations should check
// it before touching the filesystem.
type FileStorage interface {
	// Root returns the absolute, cleaned gallery root directory.
	Root() string

	// ReadDir returns the immediate children of dir. The directory flag of
	// each entry reflects the type of the entry's target, so a symlink to a
	// directory is reported as a directory.
	//
	// Returns ErrNotFound if dir does not exist.
	ReadDir(ctx context.Context, dir string) ([]Entry, error)

	// ReadFile returns the full content of the file at path.
	//
	// Returns ErrNotFound if the file does not exist.
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// GalleryService answers directory, image and static-file queries against a
// FileStorage. It holds no mutable state and is safe for concurrent use.
type GalleryService struct {
	storage       FileStorage
	confineStatic bool
}

func NewGalleryService(storage FileStorage, cfg ServiceConfig) *GalleryService {
	return &GalleryService{
		storage:       storage,
		confineStatic: cfg.ConfineStatic,
	}
}

// ListDirectories returns the names of the directories directly under the
// gallery root.
func (s *GalleryService) ListDirectories(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list directories: %w", err)
	}

	dirs, err := s.directories(ctx, ".")
	if err != nil {
		return nil, fmt.Errorf("list directories: %w", err)
	}
	return dirs, nil
}

// ListSubdirectories returns the names of the directories directly under
// folder. folder is percent-encoded as it appeared in the request URL and must
// resolve inside the gallery root, otherwise ErrIllegalPath is returned.
func (s *GalleryService) ListSubdirectories(ctx context.Context, folder string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list subdirectories: %w", err)
	}

	decoded, err := s.checkFolder(folder)
	if err != nil {
		return nil, fmt.Errorf("list subdirectories: %w", err)
	}

	dirs, err := s.directories(ctx, decoded)
	if err != nil {
		return nil, fmt.Errorf("list subdirectories: %w", err)
	}
	return dirs, nil
}

// ListImages returns the bare names of the image files directly under the
// gallery root.
func (s *GalleryService) ListImages(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	images, err := s.images(ctx, ".")
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}
	return images, nil
}

// ListFolderImages returns the image files directly under folder, each as
// EncodeURIComponent(folder) + "/" + EncodeURIComponent(name) so that the
// result can be fetched as a URL path without further escaping.
// folder is validated the same way as in ListSubdirectories.
func (s *GalleryService) ListFolderImages(ctx context.Context, folder string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	decoded, err := s.checkFolder(folder)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	images, err := s.images(ctx, decoded)
	if err != nil {
		return nil, fmt.Errorf("list images: %w", err)
	}

	prefix := EncodeURIComponent(decoded) + "/"
	for i, name := range images {
		images[i] = prefix + EncodeURIComponent(name)
	}
	return images, nil
}

// ReadFile returns the content of the file at path, which must already be
// decoded. Unless the service was built with ConfineStatic, the path is not
// checked against the gallery root.
func (s *GalleryService) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	if s.confineStatic {
		root := s.storage.Root()
		if !IsWithinRoot(root, ResolvePath(root, path)) {
			return nil, fmt.Errorf("read file: %w: %s", ErrIllegalPath, path)
		}
	}

	data, err := s.storage.ReadFile(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	return data, nil
}

// checkFolder decodes folder and verifies that it resolves inside the root.
func (s *GalleryService) checkFolder(folder string) (string, error) {
	decoded, err := DecodeURIComponent(folder)
	if err != nil {
		return "", err
	}

	if decoded == "" {
		return "", fmt.Errorf("%w: empty folder name", ErrInvalidInput)
	}

	root := s.storage.Root()
	if !IsWithinRoot(root, ResolvePath(root, decoded)) {
		return "", fmt.Errorf("%w: %s", ErrIllegalPath, decoded)
	}

	return decoded, nil
}

func (s *GalleryService) directories(ctx context.Context, dir string) ([]string, error) {
	entries, err := s.storage.ReadDir(ctx, dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir {
			names = append(names, e.Name)
		}
	}
	return names, nil
}

func (s *GalleryService) images(ctx context.Context, dir string) ([]string, error) {
	entries, err := s.storage.ReadDir(ctx, dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if IsImageFile(e.Name) {
			names = append(names, e.Name)
		}
	}
	return names, nil
}
