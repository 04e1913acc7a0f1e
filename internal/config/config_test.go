package config

import (
	"testing"
	"time"
)

func setRequiredDB(t *testing.T) {
	t.Helper()
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_USER", "shop")
	t.Setenv("DB_NAME", "shop")
}

func TestLoadDefaults(t *testing.T) {
	setRequiredDB(t)
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("STORAGE_BACKEND", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}

	if cfg.Port != "3000" {
		t.Fatalf("expected default port 3000, got %q", cfg.Port)
	}
	if cfg.Env != "development" {
		t.Fatalf("expected default env development, got %q", cfg.Env)
	}
	if cfg.DB.MaxOpenConns != 10 {
		t.Fatalf("expected default pool bound 10, got %d", cfg.DB.MaxOpenConns)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Fatalf("expected default request timeout 30s, got %v", cfg.RequestTimeout)
	}
	if cfg.Storage.Backend != "disk" || cfg.Storage.UploadDir != "uploads" {
		t.Fatalf("unexpected storage defaults: %+v", cfg.Storage)
	}
	if cfg.Storage.MaxFileBytes != 10*1024*1024 {
		t.Fatalf("expected 10MB upload cap, got %d", cfg.Storage.MaxFileBytes)
	}
}

func TestLoadFailsWithoutDatabaseConfig(t *testing.T) {
	t.Setenv("DB_HOST", "")
	t.Setenv("DB_USER", "")
	t.Setenv("DB_NAME", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for incomplete database config")
	}
}

func TestLoadRejectsUnknownStorageBackend(t *testing.T) {
	setRequiredDB(t)
	t.Setenv("STORAGE_BACKEND", "ftp")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for unknown storage backend")
	}
}

func TestLoadRequiresS3SettingsForS3Backend(t *testing.T) {
	setRequiredDB(t)
	t.Setenv("STORAGE_BACKEND", "s3")
	t.Setenv("S3_BUCKET", "")
	t.Setenv("S3_REGION", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for incomplete s3 config")
	}
}
