package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/tracesplit/pkg/cache"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the split result cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cachePathCommand())
	cmd.AddCommand(c.cacheInfoCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cached split results",
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := cache.Open(cmd.Context(), c.cacheConfig(false))
			if err != nil {
				return fmt.Errorf("open cache: %w", err)
			}
			defer store.Close()

			if store.Backend() == cache.BackendNone {
				printInfo("Caching is disabled")
				return nil
			}

			count, err := store.Clear(cmd.Context())
			if err != nil {
				return err
			}
			if count == 0 {
				printInfo("Cache is empty")
				return nil
			}

			printSuccess("Cleared %d cached entries", count)
			printDetail("Backend: %s", store.Backend())
			return nil
		},
	}
}

// cachePathCommand creates the "cache path" subcommand.
func (c *CLI) cachePathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the file cache directory path",
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := cacheDir()
			if err != nil {
				return fmt.Errorf("get cache dir: %w", err)
			}
			fmt.Println(dir)
			return nil
		},
	}
}

// cacheInfoCommand creates the "cache info" subcommand.
func (c *CLI) cacheInfoCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the configured cache backend",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := c.cacheConfig(false)
			backend := cfg.Backend
			if backend == "" {
				backend = cache.BackendFile
			}

			printKeyValue("backend", backend)
			printKeyValue("ttl", c.Config.Cache.TTL.String())
			switch backend {
			case cache.BackendFile:
				printKeyValue("dir", cfg.Dir)
			case cache.BackendRedis:
				printKeyValue("addr", cfg.RedisAddr)
			case cache.BackendMongo:
				printKeyValue("uri", cfg.MongoURI)
				printKeyValue("database", cfg.MongoDatabase)
			}
			return nil
		},
	}
}
