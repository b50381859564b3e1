// Package activities provides commands for exploring the care management
// and restorative activity catalogs.
package activities

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/servicemap"
	"github.com/agentstation/servicemap/cmd/application"
	"github.com/agentstation/servicemap/internal/cmd/globals"
	"github.com/agentstation/servicemap/internal/cmd/output"
	"github.com/agentstation/servicemap/internal/cmd/table"
	"github.com/agentstation/servicemap/pkg/catalogs"
	"github.com/agentstation/servicemap/pkg/search"
)

// NewCommand creates the activities command with one subcommand per catalog.
func NewCommand(app application.Application) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "activities",
		Aliases: []string{"activity"},
		GroupID: "explore",
		Short:   "Search care management and restorative activities",
		Example: `  servicemap activities care --grouped
  servicemap activities restorative --scope Included
  servicemap activities care --search "care plan" -o json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
	flags := globals.AddActivityFlags(cmd)

	cmd.AddCommand(newKindCommand(app, flags, servicemap.ActivityCare, "Search care management activities"))
	cmd.AddCommand(newKindCommand(app, flags, servicemap.ActivityRestorative, "Search restorative activities"))

	return cmd
}

func newKindCommand(app application.Application, flags *globals.ActivityFlags, kind servicemap.ActivityKind, short string) *cobra.Command {
	return &cobra.Command{
		Use:   string(kind),
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sm, err := app.Servicemap(cmd.Context())
			if err != nil {
				return err
			}
			acts, err := sm.Activities(kind, flags.Query())
			if err != nil {
				return err
			}
			if !app.Quiet() {
				fmt.Fprintf(cmd.ErrOrStderr(), "Found %d activities\n", len(acts))
			}

			format := output.DetectFormat(app.OutputFormat())
			if !flags.Grouped {
				return output.Print(cmd.OutOrStdout(), format, acts, table.ActivitiesToTableData(acts))
			}

			groups := search.GroupByCategory(acts)
			return output.Print(cmd.OutOrStdout(), format, groups, table.ActivitiesToTableData(flatten(groups)))
		},
	}
}

// flatten lists grouped activities in group order.
func flatten(groups []search.ActivityGroup) []catalogs.Activity {
	var acts []catalogs.Activity
	for _, g := range groups {
		acts = append(acts, g.Activities...)
	}
	return acts
}
