package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/flipperlabs/flipper-console/internal/config"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServiceURL != "http://localhost:8080/api" {
		t.Errorf("unexpected default service url: %s", cfg.ServiceURL)
	}
	if cfg.DefaultUser != "user12" {
		t.Errorf("unexpected default user: %s", cfg.DefaultUser)
	}
	if cfg.Port != 8085 {
		t.Errorf("unexpected default port: %d", cfg.Port)
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flipper-console.yaml")
	data := []byte("service_url: http://flags.internal:9000/api\nport: 9999\ndefault_user: alice\nverbose: true\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServiceURL != "http://flags.internal:9000/api" {
		t.Errorf("unexpected service url: %s", cfg.ServiceURL)
	}
	if cfg.Port != 9999 || cfg.DefaultUser != "alice" || !cfg.Verbose {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flipper-console.yaml")
	if err := os.WriteFile(path, []byte("service_url: http://from-file/api\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("FLIPPER_SERVICE_URL", "http://from-env/api")
	t.Setenv("FLIPPER_DEFAULT_USER", "bob")
	t.Setenv("FLIPPER_CONSOLE_PORT", "7070")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ServiceURL != "http://from-env/api" {
		t.Errorf("expected env override, got %s", cfg.ServiceURL)
	}
	if cfg.DefaultUser != "bob" || cfg.Port != 7070 {
		t.Errorf("unexpected config: %+v", cfg)
	}
}

func TestLoadRejectsBadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flipper-console.yaml")
	if err := os.WriteFile(path, []byte("service_url: [not valid\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := config.Load(path); err == nil {
		t.Error("expected a parse error")
	}
}

func TestLoadRejectsEmptyServiceURL(t *testing.T) {
	path := filepath.Join(t.TempDir(), "flipper-console.yaml")
	if err := os.WriteFile(path, []byte("service_url: \"\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := config.Load(path); err == nil {
		t.Error("expected an error for an empty service url")
	}
}
