package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not be an error: %v", err)
	}
	if cfg.Canvas.SnapThreshold != 5 {
		t.Errorf("SnapThreshold = %v, want 5", cfg.Canvas.SnapThreshold)
	}
	if cfg.Persist.Debounce != 1500*time.Millisecond {
		t.Errorf("Debounce = %v, want 1.5s", cfg.Persist.Debounce)
	}
	if cfg.Backup.Keep != 24 {
		t.Errorf("Backup.Keep = %v, want 24", cfg.Backup.Keep)
	}
}

func TestLoadOverridesAndFillsGaps(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	raw := `
canvas:
  snap_threshold: 8
persist:
  debounce: 500ms
`
	if err := os.WriteFile(path, []byte(raw), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Canvas.SnapThreshold != 8 {
		t.Errorf("SnapThreshold = %v, want 8", cfg.Canvas.SnapThreshold)
	}
	if cfg.Persist.Debounce != 500*time.Millisecond {
		t.Errorf("Debounce = %v, want 500ms", cfg.Persist.Debounce)
	}
	if cfg.Backup.Spec != "0 * * * *" {
		t.Errorf("Backup.Spec = %q, want hourly default", cfg.Backup.Spec)
	}
	if cfg.Storage.DBPath == "" {
		t.Error("Storage.DBPath default should be filled in")
	}
}

func TestLoadMalformedFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("canvas: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("malformed YAML should fail")
	}
}
