package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/mazer/pkg/cache"
)

func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the local geometry and artifact cache",
		Long: `Manage the local cache.

Layouts and rendered artifacts are cached under the user cache directory,
keyed by snapshot content and render options. When redis_url is set in
mazer.toml the CLI uses Redis instead and these commands do not apply.`,
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePruneCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// openFileCache returns the local cache, or nil when it was never created.
func openFileCache() (*cache.FileCache, error) {
	dir, err := cacheDir()
	if err != nil {
		return nil, fmt.Errorf("get cache dir: %w", err)
	}
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		return nil, nil
	}
	return cache.NewFileCache(dir)
}

func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove every cached layout and artifact",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := c.printer()
			fc, err := openFileCache()
			if err != nil {
				return err
			}
			if fc == nil || fc.Len() == 0 {
				p.info("Cache is empty")
				return nil
			}

			count := fc.Len()
			if err := fc.Clear(); err != nil {
				return err
			}
			p.success("Cleared %d cached entries", count)
			p.detail("Directory: %s", fc.Dir())
			return nil
		},
	}
}

func (c *CLI) cachePruneCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "prune",
		Short: "Remove expired and unreadable cache entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := c.printer()
			fc, err := openFileCache()
			if err != nil {
				return err
			}
			if fc == nil {
				p.info("Cache is empty")
				return nil
			}

			removed, err := fc.Prune(cmd.Context())
			if err != nil {
				return err
			}
			p.success("Pruned %d entries", removed)
			p.detail("%d entries remain in %s", fc.Len(), fc.Dir())
			return nil
		},
	}
}

func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(c.out(), dir)
			return nil
		},
	}
}
