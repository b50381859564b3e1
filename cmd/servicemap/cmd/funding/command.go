// Package funding provides the funding command, which explores the
// funding source catalog.
package funding

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/servicemap/cmd/application"
	"github.com/agentstation/servicemap/internal/cmd/globals"
	"github.com/agentstation/servicemap/internal/cmd/output"
	"github.com/agentstation/servicemap/internal/cmd/table"
)

// NewCommand creates the funding command.
func NewCommand(app application.Application) *cobra.Command {
	var flags *globals.FundingFlags

	cmd := &cobra.Command{
		Use:     "funding",
		Aliases: []string{"funding-sources"},
		GroupID: "explore",
		Short:   "Search funding sources",
		Example: `  servicemap funding
  servicemap funding --search restorative -o wide
  servicemap funding --entry-category "Home Support"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sm, err := app.Servicemap(cmd.Context())
			if err != nil {
				return err
			}

			sources := sm.FundingSources(flags.Query())
			if !app.Quiet() {
				fmt.Fprintf(cmd.ErrOrStderr(), "Found %d funding sources\n", len(sources))
			}

			format := output.DetectFormat(app.OutputFormat())
			return output.Print(cmd.OutOrStdout(), format, sources, table.FundingToTableData(sources, format == output.FormatWide))
		},
	}
	flags = globals.AddFundingFlags(cmd)

	return cmd
}
