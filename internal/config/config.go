// Package config loads application configuration from a YAML file,
// falling back to defaults when the file is absent.
package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Storage StorageConfig `yaml:"storage"`
	Canvas  CanvasConfig  `yaml:"canvas"`
	Persist PersistConfig `yaml:"persist"`
	Backup  BackupConfig  `yaml:"backup"`
}

// StorageConfig locates the database and the linked-file root.
type StorageConfig struct {
	DBPath    string `yaml:"db_path"`
	DataDir   string `yaml:"data_dir"`
	LegacyDir string `yaml:"legacy_dir"` // old per-scene JSON files, migrated once
}

// CanvasConfig tunes interaction behavior shared by both canvases.
type CanvasConfig struct {
	SnapThreshold float64 `yaml:"snap_threshold"` // screen pixels
}

// PersistConfig controls write coalescing.
type PersistConfig struct {
	Debounce time.Duration `yaml:"debounce"`
}

// BackupConfig controls scheduled scene snapshots.
type BackupConfig struct {
	Spec string `yaml:"spec"` // cron expression, empty disables
	Keep int    `yaml:"keep"`
}

// Default returns the configuration used when no file exists,
// rooted under the user's home directory.
func Default() *Config {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	root := filepath.Join(home, ".studyhub")

	cfg := &Config{
		Storage: StorageConfig{
			DBPath:    filepath.Join(root, "studyhub.db"),
			DataDir:   filepath.Join(root, "files"),
			LegacyDir: filepath.Join(root, "scenes"),
		},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads a YAML configuration file. A missing file yields the
// defaults; a malformed file is an error.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return Default(), nil
	}
	if err != nil {
		return nil, err
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Canvas.SnapThreshold <= 0 {
		c.Canvas.SnapThreshold = 5
	}
	if c.Persist.Debounce <= 0 {
		c.Persist.Debounce = 1500 * time.Millisecond
	}
	if c.Backup.Spec == "" {
		c.Backup.Spec = "0 * * * *"
	}
	if c.Backup.Keep <= 0 {
		c.Backup.Keep = 24
	}
}
