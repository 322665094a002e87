package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalStore writes images to a directory on disk, served back via the
// /uploads route.
type LocalStore struct {
	dir string
}

func NewLocalStore(dir string) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload directory: %w", err)
	}
	return &LocalStore{dir: dir}, nil
}

func (s *LocalStore) Save(data []byte, contentType string) (string, error) {
	name := filename(contentType)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write image: %w", err)
	}
	return name, nil
}

// Remove deletes the stored image. A missing file is not an error; the meal
// row is the source of truth and the file may already be gone.
func (s *LocalStore) Remove(name string) error {
	path, err := s.Path(name)
	if err != nil {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove image: %w", err)
	}
	return nil
}

func (s *LocalStore) URL(name string) string {
	return "/uploads/" + name
}

// Path resolves a stored name to a disk path, rejecting traversal outside
// the upload directory.
func (s *LocalStore) Path(name string) (string, error) {
	if name == "" || strings.Contains(name, "/") || strings.Contains(name, "\\") || name == ".." {
		return "", fmt.Errorf("invalid image name %q", name)
	}
	return filepath.Join(s.dir, name), nil
}
