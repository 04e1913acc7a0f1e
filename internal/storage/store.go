package storage

import (
	"context"
	"fmt"
	"math/rand"
	"path/filepath"
	"time"
)

// SavedPhoto identifies a persisted upload: the generated filename and the
// stable reference clients use to fetch it.
type SavedPhoto struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// PhotoStore persists uploaded photo binaries and returns a stable reference
// per file. Implementations: DiskStore and S3Store.
type PhotoStore interface {
	Save(ctx context.Context, originalName string, contentType string, data []byte) (SavedPhoto, error)
}

// newFilename generates a unique name of the form <unix-ms>-<random>.<ext>,
// keeping the original file's extension.
func newFilename(originalName string) string {
	ext := filepath.Ext(originalName)
	return fmt.Sprintf("%d-%d%s", time.Now().UnixMilli(), rand.Intn(1_000_000_000), ext)
}
