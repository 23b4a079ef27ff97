// Package cli implements the kojioka command-line interface.
//
// # Commands
//
//   - status: Report the service status
//   - stream: Resolve a track name or URL to a playable stream
//   - search: Look up a track without resolving a stream
//   - mock: Serve a local stand-in for the Kojioka API
//   - cache, config, version: Housekeeping
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Logs go to
// stderr so that response bodies on stdout stay pipeable.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/kojioka/kojioka-go/pkg/buildinfo"
	"github.com/kojioka/kojioka-go/pkg/cache"
	"github.com/kojioka/kojioka-go/pkg/config"
	kerrors "github.com/kojioka/kojioka-go/pkg/errors"
	"github.com/kojioka/kojioka-go/pkg/integrations"
	"github.com/kojioka/kojioka-go/pkg/integrations/goproxy"
	"github.com/kojioka/kojioka-go/pkg/integrations/npm"
	"github.com/kojioka/kojioka-go/pkg/kojioka"
	"github.com/kojioka/kojioka-go/pkg/update"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "kojioka"

	// cachePrefix namespaces every key this CLI writes to a shared cache.
	cachePrefix = "kojioka:"

	// annotationUpdateCheck marks commands that start the background notifier.
	annotationUpdateCheck = "kojioka/update-check"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	out    io.Writer
	errOut io.Writer

	flags struct {
		verbose  bool
		noUpdate bool
		config   string
		baseURL  string
	}

	cfg      *config.Config
	notifier *update.Notifier
	cache    cache.Cache
}

// New creates a CLI that prints results to out and logs to errOut.
func New(out, errOut io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(errOut, level),
		out:    out,
		errOut: errOut,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Kojioka resolves music queries to playable streams",
		Long: `kojioka talks to the Kojioka music API: it resolves a track name or
URL to a stream, searches for tracks and reports the service status.`,
		Version:           buildinfo.Current(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: c.setup,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.SetOut(c.out)
	root.SetErr(c.errOut)

	pf := root.PersistentFlags()
	pf.BoolVarP(&c.flags.verbose, "verbose", "v", false, "enable verbose logging")
	pf.StringVar(&c.flags.config, "config", "", "config file (default $XDG_CONFIG_HOME/kojioka/config.toml)")
	pf.StringVar(&c.flags.baseURL, "base-url", "", "Kojioka API base URL")
	pf.BoolVar(&c.flags.noUpdate, "no-update-check", false, "disable the background update check")

	root.AddCommand(c.statusCommand())
	root.AddCommand(c.streamCommand())
	root.AddCommand(c.searchCommand())
	root.AddCommand(c.mockCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup resolves configuration and starts the update notifier for commands
// that ask for it.
func (c *CLI) setup(cmd *cobra.Command, _ []string) error {
	if c.flags.verbose {
		c.SetLogLevel(LogDebug)
	}

	overrides := map[string]any{}
	if c.flags.baseURL != "" {
		overrides[config.KeyBaseURL] = c.flags.baseURL
	}
	if c.flags.noUpdate {
		overrides[config.KeyUpdateEnabled] = false
	}

	cfg, err := config.Load(config.WithFile(c.flags.config), config.WithOverrides(overrides))
	if err != nil {
		return err
	}
	c.cfg = cfg
	if cfg.File != "" {
		c.Logger.Debug("loaded config", "file", cfg.File)
	}

	ctx := withLogger(cmd.Context(), c.Logger)
	cmd.SetContext(ctx)

	if cfg.Update.Enabled && cmd.Annotations[annotationUpdateCheck] == "true" {
		n, err := c.newNotifier(ctx)
		if err != nil {
			c.Logger.Debug("update check disabled", "err", err)
			return nil
		}
		if err := n.Start(ctx); err != nil {
			c.Logger.Debug("update check not started", "err", err)
			return nil
		}
		c.notifier = n
	}
	return nil
}

// Close stops the notifier and releases the cache. It is safe to call
// more than once.
func (c *CLI) Close() error {
	if c.notifier != nil {
		c.notifier.Stop()
		c.notifier = nil
	}
	if c.cache != nil {
		err := c.cache.Close()
		c.cache = nil
		return err
	}
	return nil
}

// settings returns the loaded configuration, falling back to defaults when a
// command runs without the root pre-run (as in tests).
func (c *CLI) settings() *config.Config {
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	return c.cfg
}

// =============================================================================
// Factories
// =============================================================================

// newClient builds the API client from the resolved configuration.
func (c *CLI) newClient() (*kojioka.Client, error) {
	cfg := c.settings()
	return kojioka.NewClient(
		kojioka.WithBaseURL(cfg.BaseURL),
		kojioka.WithTimeout(cfg.Timeout),
		kojioka.WithRetry(cfg.Retry.Attempts, cfg.Retry.Delay),
		kojioka.WithLogger(c.Logger),
	)
}

// openCache returns the shared cache backend: Redis when a URL is
// configured, otherwise a file cache. A file cache that cannot be created
// degrades to no caching.
func (c *CLI) openCache(ctx context.Context) (cache.Cache, error) {
	if c.cache != nil {
		return c.cache, nil
	}
	cfg := c.settings()

	if cfg.Cache.RedisURL != "" {
		rc, err := cache.NewRedisCache(ctx, cfg.Cache.RedisURL)
		if err != nil {
			return nil, err
		}
		c.cache = rc
		return rc, nil
	}

	dir, err := c.cacheDir()
	if err != nil {
		c.Logger.Debug("cache disabled", "err", err)
		c.cache = cache.NewNullCache()
		return c.cache, nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		c.Logger.Debug("cache disabled", "dir", dir, "err", err)
		c.cache = cache.NewNullCache()
		return c.cache, nil
	}
	c.cache = fc
	return fc, nil
}

func (c *CLI) cacheDir() (string, error) {
	if dir := c.settings().Cache.Dir; dir != "" {
		return dir, nil
	}
	return config.DefaultCacheDir()
}

// latestVersionRegistry is a registry client that can be redirected to a
// mirror.
type latestVersionRegistry interface {
	update.Registry
	SetBaseURL(string)
}

// newNotifier builds an update notifier for the configured registry. opts
// are applied last.
func (c *CLI) newNotifier(ctx context.Context, opts ...update.Option) (*update.Notifier, error) {
	cfg := c.settings()

	schedule, err := update.ParseSchedule(cfg.Update.Schedule)
	if err != nil {
		return nil, kerrors.Wrap(kerrors.ErrCodeInvalidConfig, err, "invalid %s", config.KeyUpdateSchedule)
	}

	backend, err := c.openCache(ctx)
	if err != nil {
		c.Logger.Debug("registry cache unavailable", "err", err)
		backend = cache.NewNullCache()
	}
	shared := cache.Scoped(backend, cachePrefix)

	var (
		reg     latestVersionRegistry
		command string
	)
	single := integrations.WithRetry(1, 0)
	switch cfg.Update.Registry {
	case config.RegistryNpm:
		reg = npm.NewClient(shared, cfg.Cache.TTL, single)
		command = fmt.Sprintf("npm install %s@latest", cfg.Update.Package)
	case config.RegistryGoProxy:
		reg = goproxy.NewClient(shared, cfg.Cache.TTL, single)
		command = fmt.Sprintf("go get %s@latest", cfg.Update.Package)
	default:
		return nil, kerrors.New(kerrors.ErrCodeInvalidConfig, "unknown registry %q", cfg.Update.Registry)
	}
	if cfg.Update.RegistryURL != "" {
		reg.SetBaseURL(cfg.Update.RegistryURL)
	}

	return update.NewNotifier(append([]update.Option{
		update.WithRegistry(reg),
		update.WithPackage(cfg.Update.Package),
		update.WithCommand(command),
		update.WithSchedule(schedule),
		update.WithLogger(c.Logger),
		update.WithCheckTimeout(10 * time.Second),
		update.WithNoticeFunc(func(n update.Notice) { printNotice(c.errOut, n) }),
	}, opts...)...), nil
}

// joinQuery turns positional arguments into a single query.
func joinQuery(args []string) string {
	return strings.Join(args, " ")
}
