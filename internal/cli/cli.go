package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/tracesplit/pkg/buildinfo"
	"github.com/matzehuels/tracesplit/pkg/cache"
	"github.com/matzehuels/tracesplit/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "tracesplit"

	// defaultAddr is the listen address of "serve" when neither flag nor
	// config file set one.
	defaultAddr = "127.0.0.1:8080"
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
	Config Config

	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		Config: DefaultConfig(),
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Tracesplit splits chart traces into one trace per group",
		Long:         `Tracesplit applies declarative trace transforms such as groupby to plotly-style figure data, partitioning every per-point array of a trace by group label and overlaying per-group styles.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := c.loadConfig(); err != nil {
				return err
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default: $XDG_CONFIG_HOME/tracesplit/config.toml)")

	// Register all subcommands
	root.AddCommand(c.splitCommand())
	root.AddCommand(c.defaultsCommand())
	root.AddCommand(c.schemaCommand())
	root.AddCommand(c.graphCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// loadConfig reads the config file into c.Config. A missing default file is
// not an error; a missing explicit --config file is.
func (c *CLI) loadConfig() error {
	path, explicit := c.configPath, c.configPath != ""
	if !explicit {
		p, err := configFile()
		if err != nil {
			return nil
		}
		path = p
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		if !explicit && os.IsNotExist(err) {
			return nil
		}
		return err
	}
	c.Config = cfg

	// --verbose wins over the file.
	if c.Logger.GetLevel() != LogDebug {
		if level, ok := cfg.logLevel(); ok {
			c.Logger.SetLevel(level)
		}
	}
	return nil
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use, backed by the configured
// cache. noCache forces the null backend.
func (c *CLI) newRunner(ctx context.Context, noCache bool) (*pipeline.Runner, error) {
	store, err := cache.Open(ctx, c.cacheConfig(noCache))
	if err != nil {
		return nil, err
	}
	c.Logger.Debug("cache opened", "backend", store.Backend())
	return pipeline.NewRunner(store, nil, c.Logger), nil
}

// cacheConfig maps the [cache] section onto cache.Config.
func (c *CLI) cacheConfig(noCache bool) cache.Config {
	cfg := cache.Config{
		Backend:       c.Config.Cache.Backend,
		RedisAddr:     c.Config.Cache.RedisAddr,
		MongoURI:      c.Config.Cache.MongoURI,
		MongoDatabase: c.Config.Cache.MongoDatabase,
	}
	if noCache {
		cfg.Backend = cache.BackendNone
	}
	if cfg.Backend == "" || cfg.Backend == cache.BackendFile {
		if dir, err := cacheDir(); err == nil {
			cfg.Dir = dir
		}
	}
	return cfg
}

// pipelineOptions returns options seeded from the config file.
func (c *CLI) pipelineOptions() pipeline.Options {
	return pipeline.Options{TTL: c.Config.Cache.TTL.Duration}
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/tracesplit/).
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

// configFile returns the config file path using XDG standard
// (~/.config/tracesplit/config.toml).
func configFile() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}
