// Package cli implements the ghdash command-line interface.
package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ghdash/internal/config"
	"github.com/matzehuels/ghdash/pkg/buildinfo"
	"github.com/matzehuels/ghdash/pkg/cache"
	"github.com/matzehuels/ghdash/pkg/dashboard"
	"github.com/matzehuels/ghdash/pkg/integrations"
	"github.com/matzehuels/ghdash/pkg/integrations/github"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "ghdash"

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

	configFile string
	verbose    bool
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level, "text")}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "ghdash aggregates GitHub profile data into a dashboard",
		Long:         `ghdash serves a single JSON dashboard per GitHub user: profile, repository and language statistics, contribution activity and organizations, fetched from the GitHub REST and GraphQL APIs and cached for five minutes.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if c.verbose {
				c.SetLogLevel(LogDebug)
			}
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVarP(&c.configFile, "config", "c", "", "path to a TOML config file")

	// Register all subcommands
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.fetchCommand())
	root.AddCommand(c.watchCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.versionCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Wiring
// =============================================================================

// loadConfig reads settings from the --config file, .env and the environment.
func (c *CLI) loadConfig(ctx context.Context) (config.Config, error) {
	l := config.NewLoader(config.DefaultPrefix)
	l.File = c.configFile
	cfg, err := l.Load()
	if err != nil {
		return cfg, err
	}
	loggerFromContext(ctx).Debug("config loaded", "files", l.Loaded(), "cache", cfg.CacheBackend)
	return cfg, nil
}

// newCache opens the configured cache backend. noCache forces the null cache.
func newCache(ctx context.Context, cfg config.Config, noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	switch cfg.CacheBackend {
	case "none":
		return cache.NewNullCache(), nil
	case "redis":
		return cache.NewRedisCache(ctx, cfg.RedisURL, cfg.RedisPrefix)
	default:
		return cache.NewMemoryCache(), nil
	}
}

// newService builds the dashboard service over a GitHub client that uses c.
func newService(cfg config.Config, c cache.Cache) (*dashboard.Service, error) {
	client, err := github.NewClient(github.Options{
		BaseURL:       cfg.GitHubAPIURL,
		GraphQLURL:    cfg.GitHubGraphQLURL,
		FallbackToken: cfg.GitHubToken,
		Cache:         c,
		TTL:           cfg.CacheTTL,
		HTTPClient:    integrations.NewHTTPClient(cfg.HTTPTimeout, cfg.RateLimit),
	})
	if err != nil {
		return nil, fmt.Errorf("github client: %w", err)
	}
	return dashboard.New(client, dashboard.Options{
		TopN:         cfg.TopRepos,
		RequireToken: cfg.RequireToken,
	}), nil
}
