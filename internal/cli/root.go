package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/ghdash/pkg/buildinfo"
)

// versionCommand creates the version command.
func (c *CLI) versionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", appName, buildinfo.String())
			return nil
		},
	}
}
