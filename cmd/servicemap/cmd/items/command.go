// Package items provides the items command, which explores the claimable
// items of every service.
package items

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/servicemap/cmd/application"
	"github.com/agentstation/servicemap/internal/cmd/globals"
	"github.com/agentstation/servicemap/internal/cmd/output"
	"github.com/agentstation/servicemap/internal/cmd/table"
	"github.com/agentstation/servicemap/pkg/search"
)

// NewCommand creates the items command.
func NewCommand(app application.Application) *cobra.Command {
	var flags *globals.ItemFlags

	cmd := &cobra.Command{
		Use:     "items",
		Aliases: []string{"item"},
		GroupID: "explore",
		Short:   "Search claimable items",
		Example: `  servicemap items --search cleaning
  servicemap items --function Cleaning -o wide
  servicemap items --group "Everyday Living" --grouped -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sm, err := app.Servicemap(cmd.Context())
			if err != nil {
				return err
			}

			rows := sm.Items(flags.Query())
			if !app.Quiet() {
				fmt.Fprintf(cmd.ErrOrStderr(), "Found %d items\n", len(rows))
			}

			format := output.DetectFormat(app.OutputFormat())
			tableData := table.ItemsToTableData(rows, format == output.FormatWide)
			if !flags.Grouped {
				return output.Print(cmd.OutOrStdout(), format, rows, tableData)
			}
			return output.Print(cmd.OutOrStdout(), format, search.GroupItems(rows), tableData)
		},
	}
	flags = globals.AddItemFlags(cmd)

	return cmd
}
