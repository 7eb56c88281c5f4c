package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_FirstRunWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Backend != "sqlite" {
		t.Errorf("expected sqlite default backend, got %s", cfg.Backend)
	}
	if cfg.ServerURL == "" {
		t.Error("expected a default server url")
	}
	if _, err := os.Stat(path); err != nil {
		t.Errorf("first run should write the config file: %v", err)
	}
}

func TestLoadSave_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")

	cfg := DefaultConfig()
	cfg.Backend = "json"
	cfg.ServerURL = "http://localhost:9999"
	cfg.Debug = true
	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Backend != "json" || got.ServerURL != "http://localhost:9999" || !got.Debug {
		t.Errorf("round-trip mismatch: %+v", got)
	}
}

func TestNormalize_RejectsUnknownBackend(t *testing.T) {
	cfg := &Config{Backend: "postgres"}
	cfg.Normalize()
	if cfg.Backend != "sqlite" {
		t.Errorf("unknown backends should fall back to sqlite, got %s", cfg.Backend)
	}
}

func TestResolveStorePath(t *testing.T) {
	dir := t.TempDir()

	cfg := &Config{Backend: "json"}
	if got := cfg.ResolveStorePath(dir); got != filepath.Join(dir, "appointments.json") {
		t.Errorf("unexpected json store path: %s", got)
	}

	cfg.Backend = "sqlite"
	if got := cfg.ResolveStorePath(dir); got != filepath.Join(dir, "appointments.db") {
		t.Errorf("unexpected sqlite store path: %s", got)
	}

	cfg.StorePath = "/tmp/custom.db"
	if got := cfg.ResolveStorePath(dir); got != "/tmp/custom.db" {
		t.Errorf("explicit store path must win: %s", got)
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("backend: [not: valid"), 0600); err != nil {
		t.Fatalf("failed to write file: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected malformed yaml to fail")
	}
}
