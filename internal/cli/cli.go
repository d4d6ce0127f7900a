// Package cli implements the weeks command-line interface.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/weeks/pkg/buildinfo"
	"github.com/matzehuels/weeks/pkg/cache"
	"github.com/matzehuels/weeks/pkg/config"
	"github.com/matzehuels/weeks/pkg/offline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "weeks"

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
	Config *config.Config

	configPath string
	verbose    bool
	now        func() time.Time
}

// New creates a new CLI instance with a default logger and configuration.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: config.Default(),
		now:    time.Now,
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
		Short: "Weeks shows a life of 4000 weeks as a grid",
		Long: `Weeks visualizes every week of a typical human lifespan as one cell of a
4000-cell grid: the weeks already lived, the current week, and the weeks
still ahead.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			registerHooks(c.Logger)
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return c.loadConfig(cmd.Context())
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/weeks/config.toml)")

	// Register all subcommands
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.countCommand())
	root.AddCommand(c.shareCommand())
	root.AddCommand(c.openCommand())
	root.AddCommand(c.tuiCommand())
	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the configuration once per process.
func (c *CLI) loadConfig(ctx context.Context) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	c.Config = cfg
	loggerFromContext(ctx).Debug("config loaded", "path", c.configPath, "language", cfg.Share.Language)
	return nil
}

// =============================================================================
// Offline Cache Factory
// =============================================================================

// newStore opens the offline cache backend: Redis when an address is
// configured, otherwise a file cache, or a null cache when disabled.
func (c *CLI) newStore(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	o := c.Config.Offline
	if o.RedisAddr != "" {
		var store *cache.RedisCache
		err := cache.RetryWithBackoff(ctx, func() error {
			var err error
			store, err = cache.NewRedisCache(ctx, cache.RedisConfig{
				Addr:     o.RedisAddr,
				Password: o.RedisPassword,
				DB:       o.RedisDB,
			})
			return err
		})
		if err != nil {
			return nil, err
		}
		c.Logger.Debug("using redis cache", "addr", o.RedisAddr)
		return store, nil
	}

	dir, err := c.cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// newTransport wraps store in the offline transport for the configured
// cache version.
func (c *CLI) newTransport(store cache.Cache) (*offline.Transport, error) {
	o := c.Config.Offline
	return offline.New(store, o.CacheVersion(), offline.WithTTL(time.Duration(o.TTL)))
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the configured cache directory, or the XDG default
// (~/.cache/weeks/).
func (c *CLI) cacheDir() (string, error) {
	if c.Config != nil && c.Config.Offline.Dir != "" {
		return c.Config.Offline.Dir, nil
	}
	return cacheDir()
}

// cacheDir returns the cache directory using XDG standard (~/.cache/weeks/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
