package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ghdash/pkg/dashboard"
	"github.com/matzehuels/ghdash/pkg/integrations"
	"github.com/matzehuels/ghdash/pkg/refresh"
)

// sourceFlags selects where fetch and watch get their data: a running
// server (--server) or an in-process build.
type sourceFlags struct {
	server  string
	session string
	timeout time.Duration
}

func (f *sourceFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.server, "server", "", "ghdash server URL (default: build in-process)")
	cmd.Flags().StringVar(&f.session, "session", os.Getenv("GHDASH_SESSION"), "session token sent to --server")
	cmd.Flags().DurationVar(&f.timeout, "timeout", 30*time.Second, "request timeout for --server")
}

// fetcher returns a refresh.Fetcher for username. In-process builds bypass
// the upstream cache when bypass is set; server fetches always do. The
// returned cleanup releases the in-process cache.
func (c *CLI) fetcher(ctx context.Context, f sourceFlags, username string, bypass bool) (refresh.Fetcher, func(), error) {
	if f.server != "" {
		return &refresh.HTTPFetcher{
			BaseURL:  f.server,
			Username: username,
			Session:  f.session,
			Client:   integrations.NewHTTPClient(f.timeout, 0),
		}, func() {}, nil
	}

	cfg, err := c.loadConfig(ctx)
	if err != nil {
		return nil, nil, err
	}
	store, err := newCache(ctx, cfg, false)
	if err != nil {
		return nil, nil, err
	}
	svc, err := newService(cfg, store)
	if err != nil {
		store.Close()
		return nil, nil, err
	}

	fn := refresh.FetcherFunc(func(ctx context.Context) (*dashboard.Response, error) {
		return svc.Build(ctx, dashboard.Request{Username: username, Refresh: bypass})
	})
	return fn, func() { store.Close() }, nil
}

// fetchCommand creates the fetch command.
func (c *CLI) fetchCommand() *cobra.Command {
	var (
		src      sourceFlags
		asJSON   bool
		noCache  bool
		topLimit int
	)

	cmd := &cobra.Command{
		Use:   "fetch <username>",
		Short: "Fetch one dashboard and print it",
		Example: `  ghdash fetch octocat
  ghdash fetch octocat --json | jq .stats
  ghdash fetch octocat --server http://localhost:8080`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			username := args[0]
			logger := loggerFromContext(ctx)

			f, cleanup, err := c.fetcher(ctx, src, username, noCache)
			if err != nil {
				return err
			}
			defer cleanup()

			prog := newProgress(logger)
			spin := newSpinnerWithContext(ctx, cmd.ErrOrStderr(), fmt.Sprintf("Fetching %s...", username))
			spin.Start()
			resp, err := f.Fetch(ctx)
			spin.Stop()
			if err != nil {
				if errors.Is(err, context.Canceled) {
					return err
				}
				logger.Debug("fetch failed", "username", username, "err", err)
				_, msg := dashboard.Classify(err)
				return errors.New(msg)
			}
			prog.done(fmt.Sprintf("Fetched %s", username))

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(resp)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderSummary(resp, topLimit))
			return nil
		},
	}

	src.register(cmd)
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the raw JSON payload")
	cmd.Flags().BoolVar(&noCache, "refresh", false, "bypass the upstream cache")
	cmd.Flags().IntVar(&topLimit, "top", 5, "top repositories to list")
	return cmd
}
