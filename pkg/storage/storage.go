// Package storage handles uploaded project images.
package storage

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ObjectStore persists uploaded files and returns the public URL path they
// are served from.
type ObjectStore interface {
	Save(filename string, r io.Reader) (string, error)
	Remove(url string) error
}

// FileStore is the local-disk ObjectStore. Files are stored flat under one
// directory with random names and served at /uploads/<name>.
type FileStore struct {
	dir string
}

// NewFileStore creates the upload directory if it does not exist.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory files are stored in.
func (s *FileStore) Dir() string {
	return s.dir
}

// Save writes the upload under a random name, keeping only the original
// extension. The original filename never reaches the filesystem, so path
// traversal in client-supplied names is a non-issue.
func (s *FileStore) Save(filename string, r io.Reader) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	name := uuid.NewString() + ext

	f, err := os.Create(filepath.Join(s.dir, name))
	if err != nil {
		return "", fmt.Errorf("create upload file: %w", err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("write upload file: %w", err)
	}
	return "/uploads/" + name, nil
}

// Remove deletes the file behind a URL returned by Save. Unknown URLs are
// a no-op.
func (s *FileStore) Remove(url string) error {
	name := strings.TrimPrefix(url, "/uploads/")
	if name == url || name == "" || strings.ContainsAny(name, "/\\") {
		return nil
	}
	err := os.Remove(filepath.Join(s.dir, name))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}
