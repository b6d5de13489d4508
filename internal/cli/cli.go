package cli

import (
	"context"
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
	"github.com/gogpu/gg"
	"github.com/spf13/cobra"

	"github.com/matzehuels/shapescatter/internal/config"
	"github.com/matzehuels/shapescatter/pkg/buildinfo"
	"github.com/matzehuels/shapescatter/pkg/cache"
	"github.com/matzehuels/shapescatter/pkg/errors"
	"github.com/matzehuels/shapescatter/pkg/observability"
	"github.com/matzehuels/shapescatter/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "shapescatter"

	// skipConfig marks commands that run without loading the config file.
	skipConfig = "skip-config"
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

	configPath string
	cfg        config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		cfg:    config.Default(),
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
		Short: "Shapescatter draws random scatters of simple figures",
		Long: `Shapescatter places randomly sized, randomly colored lines, circles,
rectangles, triangles, parabolas and trapezoids on a canvas, optionally
clustered around the center and drawn over a coordinate grid.`,
		Version:           buildinfo.Version,
		SilenceUsage:      true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return c.setup(cmd) },
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default $XDG_CONFIG_HOME/shapescatter/config.toml)")

	// Register all subcommands
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.formCommand())
	root.AddCommand(c.statsCommand())
	root.AddCommand(c.convertCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// setup loads the configuration and wires logging into the libraries and
// the observability hooks.
func (c *CLI) setup(cmd *cobra.Command) error {
	cmd.SetContext(withLogger(cmd.Context(), c.Logger))
	gg.SetLogger(slog.New(c.Logger))

	if c.Logger.GetLevel() <= log.DebugLevel {
		hooks := newLogHooks(c.Logger)
		observability.SetRenderHooks(hooks)
		observability.SetCacheHooks(hooks)
		observability.SetHTTPHooks(hooks)
	}

	if cmd.Annotations[skipConfig] == "true" {
		return nil
	}
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	c.cfg = cfg
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	cache, err := c.newCache(ctx, noCache)
	if err != nil {
		return nil, err
	}
	return pipeline.NewRunner(cache, c.newKeyer(), c.Logger), nil
}

// newKeyer scopes artifact keys with the configured cache prefix.
func (c *CLI) newKeyer() cache.Keyer {
	return cache.NewScopedKeyer(cache.NewDefaultKeyer(), c.cfg.Cache.Prefix)
}

// newCache opens the configured cache backend. A file cache whose
// directory cannot be determined degrades to no caching.
func (c *CLI) newCache(ctx context.Context, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	cc := c.cfg.Cache
	switch cc.Backend {
	case config.CacheNone:
		return cache.NewNullCache(), nil
	case config.CacheRedis:
		return cache.NewRedisCache(ctx, cache.RedisConfig{
			Addr:     cc.RedisAddr,
			Password: cc.RedisPassword,
			DB:       cc.RedisDB,
			Scope:    cc.Prefix,
		})
	case config.CacheFile, "":
		dir, err := c.cacheDir()
		if err != nil {
			c.Logger.Warn("cache disabled", "error", err)
			return cache.NewNullCache(), nil
		}
		return cache.NewFileCache(dir)
	default:
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown cache backend %q", cc.Backend)
	}
}

// cacheDir returns the file cache directory, preferring the configured one.
func (c *CLI) cacheDir() (string, error) {
	if c.cfg.Cache.Dir != "" {
		return c.cfg.Cache.Dir, nil
	}
	return config.CacheDir()
}

// =============================================================================
// Options Helpers
// =============================================================================

// defaultOptions returns the render options from the loaded config.
func (c *CLI) defaultOptions() pipeline.Options {
	opts, err := c.cfg.Options()
	if err != nil {
		// setup validated the config, so this only happens for
		// commands that skip it.
		return pipeline.DefaultOptions()
	}
	return opts
}
