package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the mesh result cache",
		Long: `Manage the mesh result cache.

Acts on the cache named by the config file, or on the default file cache
(~/.cache/pixmesh). Redis caches are not managed here.`,
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached meshes and artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cacheTarget()
			if err != nil {
				return err
			}

			entries, err := os.ReadDir(dir)
			if errors.Is(err, os.ErrNotExist) || (err == nil && len(entries) == 0) {
				printInfo("Cache is empty")
				return nil
			}
			if err != nil {
				return fmt.Errorf("read cache dir: %w", err)
			}

			count := 0
			for _, e := range entries {
				if err := os.RemoveAll(filepath.Join(dir, e.Name())); err == nil {
					count++
				}
			}

			printSuccess("Cleared %d cached entries", count)
			printDetail("Directory: %s", dir)
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := c.cacheTarget()
			if err != nil {
				return err
			}
			fmt.Println(dir)
			return nil
		},
	}
}

// cacheTarget resolves the directory of the configured local cache.
func (c *CLI) cacheTarget() (string, error) {
	cfg, err := c.loadConfig()
	if err != nil {
		return "", err
	}
	return cacheLocationDir(cfg.Cache)
}

// cacheLocationDir maps a cache location to the directory holding its data.
func cacheLocationDir(location string) (string, error) {
	switch {
	case location == "":
		dir, err := cacheDir()
		if err != nil {
			return "", fmt.Errorf("get cache dir: %w", err)
		}
		return dir, nil
	case location == "none":
		return "", errors.New("caching is disabled (cache = none)")
	case strings.HasPrefix(location, "badger:"):
		dir := strings.TrimPrefix(location, "badger:")
		if dir == "" {
			return "", errors.New("in-memory badger cache has no directory")
		}
		return dir, nil
	case strings.HasPrefix(location, "file:"):
		return strings.TrimPrefix(location, "file:"), nil
	case strings.Contains(location, "://"):
		return "", fmt.Errorf("%s is not a local cache", location)
	default:
		return location, nil
	}
}
