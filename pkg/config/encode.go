package config

import (
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	kerrors "github.com/kojioka/kojioka-go/pkg/errors"
)

// Map returns the configuration as nested tables keyed like the config file.
// Durations are rendered as strings ("500ms") so the file round-trips.
func (c *Config) Map() map[string]any {
	return map[string]any{
		"base-url": c.BaseURL,
		"timeout":  c.Timeout.String(),
		"retry": map[string]any{
			"attempts": c.Retry.Attempts,
			"delay":    c.Retry.Delay.String(),
		},
		"update": map[string]any{
			"enabled":      c.Update.Enabled,
			"schedule":     c.Update.Schedule,
			"registry":     c.Update.Registry,
			"registry-url": c.Update.RegistryURL,
			"package":      c.Update.Package,
		},
		"cache": map[string]any{
			"dir":       c.Cache.Dir,
			"redis-url": c.Cache.RedisURL,
			"ttl":       c.Cache.TTL.String(),
		},
	}
}

// Encode writes the configuration as TOML.
func (c *Config) Encode(w io.Writer) error {
	return toml.NewEncoder(w).Encode(c.Map())
}

// WriteFile writes the configuration to path, creating parent directories.
// An existing file is only replaced when force is set.
func (c *Config) WriteFile(path string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return kerrors.New(kerrors.ErrCodeInvalidConfig, "%s already exists", path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.CreateTemp(filepath.Dir(path), ".config-*.toml")
	if err != nil {
		return err
	}
	tmp := f.Name()
	if err := c.Encode(f); err != nil {
		f.Close()
		os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return err
	}
	return os.Rename(tmp, path)
}
