// Package facets provides the facets command, which lists the values
// available to every service filter.
package facets

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/servicemap/cmd/application"
	"github.com/agentstation/servicemap/internal/cmd/output"
	"github.com/agentstation/servicemap/internal/cmd/table"
)

// NewCommand creates the facets command.
func NewCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:     "facets",
		Aliases: []string{"filters"},
		GroupID: "explore",
		Short:   "List the options of every service filter",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sm, err := app.Servicemap(cmd.Context())
			if err != nil {
				return err
			}
			f := sm.Facets()
			return output.Print(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()), f, table.FacetsToTableData(f))
		},
	}
}
