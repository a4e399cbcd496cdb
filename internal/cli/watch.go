package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/ghdash/pkg/refresh"
)

// watchCommand creates the watch command.
func (c *CLI) watchCommand() *cobra.Command {
	var (
		src      sourceFlags
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch <username>",
		Short: "Show a live dashboard that refreshes itself",
		Long: `Show a live dashboard in the terminal.

The dashboard is fetched on start and then every --interval, bypassing the
upstream cache. Press r to refresh immediately and q to quit.`,
		Example: `  ghdash watch octocat
  ghdash watch octocat --server http://localhost:8080 --interval 1m`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			f, cleanup, err := c.fetcher(ctx, src, args[0], true)
			if err != nil {
				return err
			}
			defer cleanup()

			controller := refresh.New(f, interval)
			go func() { _ = controller.Run(ctx) }()

			// Logging would corrupt the alt screen.
			c.Logger.SetOutput(io.Discard)

			p := tea.NewProgram(NewWatchModel(ctx, args[0], controller), tea.WithAltScreen())
			go func() {
				<-ctx.Done()
				p.Quit()
			}()
			if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
				return fmt.Errorf("watch: %w", err)
			}
			return cmd.Context().Err()
		},
	}

	src.register(cmd)
	cmd.Flags().DurationVar(&interval, "interval", refresh.DefaultInterval, "refresh interval")
	return cmd
}
