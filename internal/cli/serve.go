package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ghdash/internal/server"
	"github.com/matzehuels/ghdash/pkg/session"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the dashboard API over HTTP",
		Long: `Serve GET /api/github/{username} and GET /healthz.

Settings come from --config, .env and the environment (GHDASH_* or the plain
name). GITHUB_TOKEN is the fallback credential; SESSION_SECRET enables
per-user credentials carried in signed session tokens.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			cfg, err := c.loadConfig(ctx)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}

			level := parseLevel(cfg.LogLevel)
			if c.verbose {
				level = LogDebug
			}
			logger := newLogger(os.Stderr, level, cfg.LogFormat)
			registerLogHooks(logger)

			store, err := newCache(ctx, cfg, false)
			if err != nil {
				return err
			}
			defer store.Close()

			svc, err := newService(cfg, store)
			if err != nil {
				return err
			}

			var sessions *session.Verifier
			if cfg.SessionSecret != "" {
				sessions = session.NewVerifier(cfg.SessionSecret)
			} else {
				logger.Warn("SESSION_SECRET not set; user sessions are ignored")
			}
			if cfg.GitHubToken == "" {
				if cfg.RequireToken {
					logger.Warn("GITHUB_TOKEN not set; anonymous requests will be rejected")
				} else {
					logger.Warn("GITHUB_TOKEN not set; anonymous requests use the unauthenticated rate limit")
				}
			}

			logger.Info("starting", "addr", cfg.Addr, "cache", cfg.CacheBackend, "ttl", cfg.CacheTTL)
			srv := server.New(svc, server.Options{Logger: logger, Sessions: sessions})
			return srv.ListenAndServe(ctx, cfg.Addr, cfg.ShutdownGrace)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "listen address (overrides config)")
	return cmd
}
