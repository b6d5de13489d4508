package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/shapescatter/internal/config"
	"github.com/matzehuels/shapescatter/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the artifact cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached artifacts",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if c.cfg.Cache.Backend == config.CacheNone {
				printInfo("Caching is disabled")
				return nil
			}

			ch, err := c.newCache(ctx, false)
			if err != nil {
				return err
			}
			defer ch.Close()

			count, ok, err := cache.Clear(ctx, ch)
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			if !ok {
				printWarning("The %s cache cannot be cleared", c.cfg.Cache.Backend)
				return nil
			}
			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}

			printSuccess("Cleared %d cached artifacts", count)
			if fc, isFile := ch.(*cache.FileCache); isFile {
				printDetail("Directory: %s", fc.Dir())
			}
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
			if c.cfg.Cache.Backend == config.CacheRedis {
				fmt.Printf("redis://%s/%d\n", c.cfg.Cache.RedisAddr, c.cfg.Cache.RedisDB)
				return nil
			}
			dir, err := c.cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}
