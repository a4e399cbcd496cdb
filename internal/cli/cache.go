package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ghdash/pkg/cache"
	errs "github.com/matzehuels/ghdash/pkg/errors"
)

// cacheCommand creates the cache management command.
func (c *CLI) cacheCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Manage the upstream response cache",
	}

	cmd.AddCommand(c.cacheClearCommand())
	cmd.AddCommand(c.cacheKeysCommand())

	return cmd
}

// cacheClearCommand creates the "cache clear" subcommand.
func (c *CLI) cacheClearCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "clear <username>",
		Short: "Drop every cached response for a user",
		Long: `Drop every cached response for a user from the configured backend.

Only the redis backend is shared with a running server; the memory cache
lives inside the server process and is cleared by restarting it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			username := args[0]
			if err := errs.ValidateUsername(username); err != nil {
				return err
			}

			cfg, err := c.loadConfig(ctx)
			if err != nil {
				return err
			}
			if cfg.CacheBackend != "redis" {
				printInfo("Cache backend is %q; nothing is shared outside the server process", cfg.CacheBackend)
				return nil
			}

			store, err := newCache(ctx, cfg, false)
			if err != nil {
				return err
			}
			defer store.Close()

			n, err := cache.Purge(ctx, store, username)
			if err != nil {
				return fmt.Errorf("clear cache: %w", err)
			}
			printSuccess("Cleared %d cache keys for %s", n, username)
			printDetail("Backend: %s", cfg.RedisURL)
			return nil
		},
	}
}

// cacheKeysCommand creates the "cache keys" subcommand.
func (c *CLI) cacheKeysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keys <username>",
		Short: "Print the cache keys used for a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, kind := range cache.Kinds {
				fmt.Fprintln(cmd.OutOrStdout(), cache.Key(kind, args[0]))
			}
			return nil
		},
	}
}
