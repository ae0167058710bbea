// Package cli implements the pixmesh command-line interface.
//
// This package provides commands for meshing raster silhouettes, exporting
// saved mesh graphs, inspecting meshes, re-meshing on file changes, serving
// the HTTP API and managing the result cache. The CLI is built using cobra
// and logs with charmbracelet/log.
//
// # Commands
//
// The main commands are:
//   - mesh: Build a PYFEM/Netgen mesh (or STL, JSON, DOT, SVG) from an image
//   - export: Serialize a saved mesh graph to other formats
//   - inspect: Print vertex, link and element statistics
//   - watch: Re-mesh an image whenever it changes
//   - serve: Run the HTTP API
//   - cache: Manage the result cache
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. Loggers are
// passed through context.Context to allow structured progress tracking.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/pixmesh/internal/config"
	"github.com/matzehuels/pixmesh/pkg/buildinfo"
	"github.com/matzehuels/pixmesh/pkg/cache"
	"github.com/matzehuels/pixmesh/pkg/observability"
	"github.com/matzehuels/pixmesh/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for directories and display.
const appName = "pixmesh"

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

	// configPath is the --config flag; empty means no file.
	configPath string
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "pixmesh turns raster silhouettes into finite-element meshes",
		Long:         `pixmesh converts the foreground pixels of an image into a lattice graph, prunes and smooths it, extrudes it into layers and writes PYFEM or Netgen neutral mesh files.`,
		Version:      buildinfo.Get().Version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().StringVar(&c.configPath, "config", os.Getenv("PIXMESH_CONFIG"), "config file (.toml, .yaml)")

	// Register all subcommands
	root.AddCommand(c.meshCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// Execute builds the command tree and runs it with ctx. --verbose switches
// the shared logger to debug level and logs pipeline and cache events
// before any command runs.
func Execute(ctx context.Context, w io.Writer, args []string) error {
	var verbose bool

	c := New(w, LogInfo)
	root := c.RootCommand()
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	originalPreRun := root.PersistentPreRun
	root.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		if verbose {
			c.SetLogLevel(LogDebug)
			observability.NewLogHooks(c.Logger).Install()
		}
		originalPreRun(cmd, args)
	}

	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// =============================================================================
// Config & Runner Factory
// =============================================================================

// loadConfig reads the --config file, or returns defaults without one.
func (c *CLI) loadConfig() (*config.Config, error) {
	return config.Load(c.configPath)
}

// newRunner creates a pipeline runner for CLI use. location overrides the
// configured cache; noCache disables caching entirely.
func (c *CLI) newRunner(cfg *config.Config, location string, noCache bool) (*pipeline.Runner, error) {
	cc, err := newCache(cfg, location, noCache)
	if err != nil {
		return nil, err
	}
	var keyer cache.Keyer
	if cfg != nil && cfg.CachePrefix != "" {
		keyer = cache.NewScopedKeyer(nil, cfg.CachePrefix)
	}
	return pipeline.NewRunner(cc, keyer, c.Logger), nil
}

func newCache(cfg *config.Config, location string, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	if location == "" && cfg != nil {
		location = cfg.Cache
	}
	if location != "" {
		return cache.Open(location)
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	return cache.NewFileCache(dir)
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/pixmesh/).
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
