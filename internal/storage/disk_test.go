package storage

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDiskStoreSaveWritesFileAndReturnsReference(t *testing.T) {
	dir := t.TempDir()
	store, err := NewDiskStore(dir)
	if err != nil {
		t.Fatalf("failed to create disk store: %v", err)
	}

	saved, err := store.Save(context.Background(), "photo.jpg", "image/jpeg", []byte("image-bytes"))
	if err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	if !strings.HasPrefix(saved.URL, "/uploads/") {
		t.Fatalf("expected /uploads/ reference, got %q", saved.URL)
	}
	if !strings.HasSuffix(saved.Filename, ".jpg") {
		t.Fatalf("expected extension preserved, got %q", saved.Filename)
	}

	data, err := os.ReadFile(filepath.Join(dir, saved.Filename))
	if err != nil {
		t.Fatalf("failed to read saved file: %v", err)
	}
	if string(data) != "image-bytes" {
		t.Fatalf("file content mismatch: %q", data)
	}
}

func TestDiskStoreGeneratesUniqueNames(t *testing.T) {
	store, err := NewDiskStore(t.TempDir())
	if err != nil {
		t.Fatalf("failed to create disk store: %v", err)
	}

	a, err := store.Save(context.Background(), "same.jpg", "image/jpeg", []byte("a"))
	if err != nil {
		t.Fatalf("first Save returned error: %v", err)
	}
	b, err := store.Save(context.Background(), "same.jpg", "image/jpeg", []byte("b"))
	if err != nil {
		t.Fatalf("second Save returned error: %v", err)
	}

	if a.Filename == b.Filename {
		t.Fatalf("expected unique filenames, both were %q", a.Filename)
	}
}

func TestDiskStoreCreatesMissingDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "uploads")
	if _, err := NewDiskStore(dir); err != nil {
		t.Fatalf("expected directory to be created, got error: %v", err)
	}
	info, err := os.Stat(dir)
	if err != nil || !info.IsDir() {
		t.Fatalf("expected %q to exist as a directory, err=%v", dir, err)
	}
}
