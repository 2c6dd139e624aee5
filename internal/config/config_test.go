package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("STOREFRONT_CONFIG", "")
	t.Setenv("SERVER_HOST", "")
	t.Setenv("STORAGE_BACKEND", "")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "")

	cfg := Load()
	if cfg.ServerHost == "" {
		t.Fatalf("expected a default server host")
	}
	if cfg.RequestTimeoutSeconds != 15 {
		t.Fatalf("expected default timeout 15, got %d", cfg.RequestTimeoutSeconds)
	}
	if cfg.StorageBackend != "file" {
		t.Fatalf("expected file storage backend by default, got %q", cfg.StorageBackend)
	}
	if cfg.BaseURL() != "http://"+cfg.ServerHost {
		t.Fatalf("unexpected base url %q", cfg.BaseURL())
	}
}

func TestEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "storefront.yaml")
	body := "server_host: file-host:9000\nrequest_timeout_seconds: 3\ncurrency: eur\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv("STOREFRONT_CONFIG", path)
	t.Setenv("SERVER_HOST", "env-host:8082")
	t.Setenv("REQUEST_TIMEOUT_SECONDS", "")
	t.Setenv("CURRENCY", "")

	cfg := Load()
	if cfg.ServerHost != "env-host:8082" {
		t.Fatalf("expected env host to win, got %q", cfg.ServerHost)
	}
	if cfg.RequestTimeoutSeconds != 3 {
		t.Fatalf("expected file timeout 3, got %d", cfg.RequestTimeoutSeconds)
	}
	if cfg.Currency != "eur" {
		t.Fatalf("expected file currency, got %q", cfg.Currency)
	}
}

func TestCorruptConfigFileFallsBackToDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "broken.yaml")
	if err := os.WriteFile(path, []byte("{not yaml: ["), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}

	t.Setenv("STOREFRONT_CONFIG", path)
	t.Setenv("SERVER_HOST", "")

	cfg := Load()
	if cfg.ServerHost == "" {
		t.Fatalf("expected defaults to survive a corrupt config file")
	}
}
