// Package config holds the client-side configuration file.
package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/SumukhPhulari10/apptbot/internal/constants"
)

// Config is the client configuration.
type Config struct {
	// Backend selects the storage backend: "json" or "sqlite".
	Backend string `yaml:"backend"`

	// StorePath is the record store location. Empty means the default
	// location in the config directory.
	StorePath string `yaml:"store_path"`

	// ServerURL is the notification server address. Empty disables the
	// server collaborator entirely; reminders stay local.
	ServerURL string `yaml:"server_url"`

	// Debug enables verbose logging.
	Debug bool `yaml:"debug"`
}

func DefaultConfig() *Config {
	return &Config{
		Backend:   "sqlite",
		ServerURL: constants.DefaultServerURL,
	}
}

// Normalize fills in missing values so partially-filled configs behave.
func (c *Config) Normalize() {
	switch c.Backend {
	case "json", "sqlite":
	default:
		c.Backend = "sqlite"
	}
}

// Dir returns the config directory, creating nothing.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(base, constants.AppName), nil
}

// ResolveStorePath returns the effective store location for the selected
// backend.
func (c *Config) ResolveStorePath(configDir string) string {
	if c.StorePath != "" {
		return c.StorePath
	}
	if c.Backend == "json" {
		return filepath.Join(configDir, "appointments.json")
	}
	return filepath.Join(configDir, "appointments.db")
}

// Load reads the YAML config at path. A missing file is first-run: a
// default config is written and returned.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()
	return &cfg, nil
}

// Save writes the config atomically via a temp file + rename, 0600.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".apptbot-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
