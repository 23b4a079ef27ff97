// Package config loads settings for the kojioka command.
//
// Values are resolved with the precedence
//
//	defaults < config file < KOJIOKA_* environment < overrides
//
// The config file is TOML and lives at $XDG_CONFIG_HOME/kojioka/config.toml
// unless a path is given. Nested keys map to environment variables by
// upper-casing and replacing "." and "-" with "_":
//
//	retry.attempts  ->  KOJIOKA_RETRY_ATTEMPTS
//	base-url        ->  KOJIOKA_BASE_URL
package config

import (
	"bytes"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	kerrors "github.com/kojioka/kojioka-go/pkg/errors"
	"github.com/kojioka/kojioka-go/pkg/kojioka"
	"github.com/kojioka/kojioka-go/pkg/update"
)

const (
	KeyBaseURL = "base-url"
	KeyTimeout = "timeout"

	KeyRetryAttempts = "retry.attempts"
	KeyRetryDelay    = "retry.delay"

	KeyUpdateEnabled     = "update.enabled"
	KeyUpdateSchedule    = "update.schedule"
	KeyUpdateRegistry    = "update.registry"
	KeyUpdateRegistryURL = "update.registry-url"
	KeyUpdatePackage     = "update.package"

	KeyCacheDir      = "cache.dir"
	KeyCacheRedisURL = "cache.redis-url"
	KeyCacheTTL      = "cache.ttl"
)

// Registry names accepted by update.registry.
const (
	RegistryGoProxy = "goproxy"
	RegistryNpm     = "npm"
)

const (
	appName   = "kojioka"
	envPrefix = "KOJIOKA"
)

// Config is the resolved configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
	Retry   Retry
	Update  Update
	Cache   Cache

	// File is the config file that was read, empty if none.
	File string
}

// Retry controls how network errors are retried.
type Retry struct {
	Attempts int
	Delay    time.Duration
}

// Update controls the background update notifier.
type Update struct {
	Enabled     bool
	Schedule    string
	Registry    string
	RegistryURL string
	Package     string
}

// Cache controls where registry answers are kept.
type Cache struct {
	Dir      string
	RedisURL string
	TTL      time.Duration
}

type loadSettings struct {
	path      string
	overrides map[string]any
}

// Option configures Load.
type Option func(*loadSettings)

// WithFile reads the given config file. Unlike the default path, an
// explicit file must exist.
func WithFile(path string) Option {
	return func(s *loadSettings) { s.path = path }
}

// WithOverrides injects values typically coming from CLI flags.
func WithOverrides(overrides map[string]any) Option {
	return func(s *loadSettings) { s.overrides = overrides }
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		BaseURL: kojioka.DefaultBaseURL,
		Retry:   Retry{Attempts: 1, Delay: 500 * time.Millisecond},
		Update: Update{
			Enabled:  true,
			Schedule: "@every 5m",
			Registry: RegistryGoProxy,
			Package:  "github.com/kojioka/kojioka-go",
		},
		Cache: Cache{TTL: time.Hour},
	}
}

// Load resolves the configuration.
func Load(opts ...Option) (*Config, error) {
	var settings loadSettings
	for _, opt := range opts {
		opt(&settings)
	}

	v := viper.New()
	v.SetConfigType("toml")
	setDefaults(v, Default())
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	file, err := readFile(v, settings.path)
	if err != nil {
		return nil, err
	}
	for k, val := range settings.overrides {
		v.Set(k, val)
	}

	cfg := &Config{
		BaseURL: strings.TrimSpace(v.GetString(KeyBaseURL)),
		Timeout: v.GetDuration(KeyTimeout),
		Retry: Retry{
			Attempts: v.GetInt(KeyRetryAttempts),
			Delay:    v.GetDuration(KeyRetryDelay),
		},
		Update: Update{
			Enabled:     v.GetBool(KeyUpdateEnabled),
			Schedule:    v.GetString(KeyUpdateSchedule),
			Registry:    strings.ToLower(strings.TrimSpace(v.GetString(KeyUpdateRegistry))),
			RegistryURL: v.GetString(KeyUpdateRegistryURL),
			Package:     v.GetString(KeyUpdatePackage),
		},
		Cache: Cache{
			Dir:      v.GetString(KeyCacheDir),
			RedisURL: v.GetString(KeyCacheRedisURL),
			TTL:      v.GetDuration(KeyCacheTTL),
		},
		File: file,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault(KeyBaseURL, d.BaseURL)
	v.SetDefault(KeyTimeout, d.Timeout)
	v.SetDefault(KeyRetryAttempts, d.Retry.Attempts)
	v.SetDefault(KeyRetryDelay, d.Retry.Delay)
	v.SetDefault(KeyUpdateEnabled, d.Update.Enabled)
	v.SetDefault(KeyUpdateSchedule, d.Update.Schedule)
	v.SetDefault(KeyUpdateRegistry, d.Update.Registry)
	v.SetDefault(KeyUpdateRegistryURL, d.Update.RegistryURL)
	v.SetDefault(KeyUpdatePackage, d.Update.Package)
	v.SetDefault(KeyCacheDir, d.Cache.Dir)
	v.SetDefault(KeyCacheRedisURL, d.Cache.RedisURL)
	v.SetDefault(KeyCacheTTL, d.Cache.TTL)
}

func readFile(v *viper.Viper, path string) (string, error) {
	explicit := strings.TrimSpace(path) != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return "", nil
		}
		path = p
	}

	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) && !explicit {
		return "", nil
	}
	if err != nil {
		return "", kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "stat %s", path)
	}
	if info.IsDir() {
		return "", kerrors.New(kerrors.ErrCodeInvalidConfig, "config path %s is a directory", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return path, nil
	}
	if err := v.MergeConfig(bytes.NewReader(data)); err != nil {
		return "", kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "parse %s", path)
	}
	return path, nil
}

// Validate checks the configuration for values the client would reject.
func (c *Config) Validate() error {
	if err := kerrors.ValidateURL(c.BaseURL); err != nil {
		return kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "%s", KeyBaseURL)
	}
	if c.Timeout < 0 {
		return kerrors.New(kerrors.ErrCodeInvalidConfig, "%s must not be negative", KeyTimeout)
	}
	if c.Retry.Attempts < 1 {
		return kerrors.New(kerrors.ErrCodeInvalidConfig, "%s must be at least 1", KeyRetryAttempts)
	}
	if c.Retry.Delay < 0 {
		return kerrors.New(kerrors.ErrCodeInvalidConfig, "%s must not be negative", KeyRetryDelay)
	}
	switch c.Update.Registry {
	case RegistryGoProxy, RegistryNpm:
	default:
		return kerrors.New(kerrors.ErrCodeInvalidConfig, "%s must be %q or %q, got %q",
			KeyUpdateRegistry, RegistryGoProxy, RegistryNpm, c.Update.Registry)
	}
	if c.Update.RegistryURL != "" {
		if err := kerrors.ValidateURL(c.Update.RegistryURL); err != nil {
			return kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "%s", KeyUpdateRegistryURL)
		}
	}
	if _, err := update.ParseSchedule(c.Update.Schedule); err != nil {
		return kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "%s", KeyUpdateSchedule)
	}
	if c.Cache.TTL < 0 {
		return kerrors.New(kerrors.ErrCodeInvalidConfig, "%s must not be negative", KeyCacheTTL)
	}
	return nil
}

// DefaultPath returns the config file location using the XDG standard
// (~/.config/kojioka/config.toml).
func DefaultPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// DefaultCacheDir returns the cache directory using the XDG standard
// (~/.cache/kojioka/).
func DefaultCacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
