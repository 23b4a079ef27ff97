package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kojioka/kojioka-go/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the registry response cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Clear all cached registry responses",
		RunE: func(cmd *cobra.Command, args []string) error {
			backend, err := c.openCache(cmd.Context())
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}

			switch b := backend.(type) {
			case *cache.FileCache:
				count, err := b.Clear()
				if err != nil {
					return err
				}
				printSuccess(c.out, "Cleared %d cached entries", count)
				printDetail(c.out, "Directory: %s", b.Dir())
			case *cache.RedisCache:
				count, err := b.ClearPrefix(cmd.Context(), cachePrefix)
				if err != nil {
					return err
				}
				printSuccess(c.out, "Cleared %d cached entries", count)
				printDetail(c.out, "Redis keys: %s*", cachePrefix)
			default:
				printInfo(c.out, "Cache is disabled")
			}
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the cache location",
		RunE: func(cmd *cobra.Command, args []string) error {
			if url := c.settings().Cache.RedisURL; url != "" {
				fmt.Fprintln(c.out, url)
				return nil
			}
			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Fprintln(c.out, dir)
			return nil
		},
	}
}
