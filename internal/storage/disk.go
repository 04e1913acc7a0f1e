package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// DiskStore persists photos under a local directory. Saved files are served
// statically under /uploads/<filename>.
type DiskStore struct {
	dir string
}

// NewDiskStore creates the upload directory if needed and returns a store
// writing into it.
func NewDiskStore(dir string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir %q: %w", dir, err)
	}
	return &DiskStore{dir: dir}, nil
}

// Dir returns the directory files are written to.
func (s *DiskStore) Dir() string {
	return s.dir
}

// Save writes the file under a generated unique name and returns its
// /uploads reference.
func (s *DiskStore) Save(_ context.Context, originalName string, _ string, data []byte) (SavedPhoto, error) {
	name := newFilename(originalName)
	if err := os.WriteFile(filepath.Join(s.dir, name), data, 0o644); err != nil {
		return SavedPhoto{}, fmt.Errorf("write upload %q: %w", name, err)
	}
	return SavedPhoto{Filename: name, URL: "/uploads/" + name}, nil
}
