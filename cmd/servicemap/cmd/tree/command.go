// Package tree provides the tree command, which prints the service
// hierarchy pruned for a search.
package tree

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/servicemap/cmd/application"
	"github.com/agentstation/servicemap/internal/cmd/globals"
	"github.com/agentstation/servicemap/internal/cmd/output"
	"github.com/agentstation/servicemap/internal/cmd/table"
)

// NewCommand creates the tree command.
func NewCommand(app application.Application) *cobra.Command {
	var (
		flags *globals.ServiceFlags
		stats bool
	)

	cmd := &cobra.Command{
		Use:     "tree",
		GroupID: "core",
		Short:   "Show the service hierarchy",
		Long: `Tree prints the group, type and service hierarchy. Search terms and
filters prune branches that have no matching service.`,
		Example: `  servicemap tree                        # Full hierarchy
  servicemap tree --search nursing       # Branches leading to nursing services
  servicemap tree --group "Everyday Living" -o json
  servicemap tree --stats                # Node and link counts`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, app, flags, stats)
		},
	}

	flags = globals.AddServiceFlags(cmd)
	cmd.Flags().BoolVar(&stats, "stats", false, "Show tree statistics instead of the hierarchy")

	return cmd
}

func run(cmd *cobra.Command, app application.Application, flags *globals.ServiceFlags, stats bool) error {
	sm, err := app.Servicemap(cmd.Context())
	if err != nil {
		return err
	}
	format := output.DetectFormat(app.OutputFormat())

	if stats {
		s := sm.Stats()
		return output.Print(cmd.OutOrStdout(), format, s, table.StatsToTableData(s))
	}

	q := flags.Query()
	if err := sm.Facets().Validate(q); err != nil {
		return err
	}
	result, err := sm.Search(q)
	if err != nil {
		return err
	}

	if !app.Quiet() {
		fmt.Fprintf(cmd.ErrOrStderr(), "Found %d services\n", result.Count())
	}

	return output.Print(cmd.OutOrStdout(), format, result.Root, table.TreeToTableData(result.Root))
}
