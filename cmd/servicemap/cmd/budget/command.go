// Package budget provides the budget-codes command, which explores the
// entitlement and usage budget codes.
package budget

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/servicemap/cmd/application"
	"github.com/agentstation/servicemap/internal/cmd/globals"
	"github.com/agentstation/servicemap/internal/cmd/output"
	"github.com/agentstation/servicemap/internal/cmd/table"
	"github.com/agentstation/servicemap/pkg/search"
)

// NewCommand creates the budget-codes command with one subcommand per list.
// Run without a subcommand it lists the entitlement codes.
func NewCommand(app application.Application) *cobra.Command {
	var flags *globals.BudgetFlags

	cmd := &cobra.Command{
		Use:     "budget-codes",
		Aliases: []string{"budget"},
		GroupID: "explore",
		Short:   "Search entitlement and usage budget codes",
		Example: `  servicemap budget-codes
  servicemap budget-codes usage --period WEEK
  servicemap budget-codes entitlement --search respite -o wide`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return list(cmd, app, flags, search.BudgetEntitlement)
		},
	}
	flags = globals.AddBudgetFlags(cmd)

	for _, view := range []search.BudgetView{search.BudgetEntitlement, search.BudgetUsage} {
		cmd.AddCommand(&cobra.Command{
			Use:   string(view),
			Short: fmt.Sprintf("Search %s budget codes", view),
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return list(cmd, app, flags, view)
			},
		})
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "periods",
		Short: "List the frequency periods of each budget code list",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sm, err := app.Servicemap(cmd.Context())
			if err != nil {
				return err
			}
			periods := map[search.BudgetView][]string{
				search.BudgetEntitlement: sm.BudgetPeriods(search.BudgetEntitlement),
				search.BudgetUsage:       sm.BudgetPeriods(search.BudgetUsage),
			}
			data := table.Data{Headers: []string{"List", "Periods"}}
			for _, view := range []search.BudgetView{search.BudgetEntitlement, search.BudgetUsage} {
				data.Rows = append(data.Rows, []string{string(view), table.Join(periods[view])})
			}
			return output.Print(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()), periods, data)
		},
	})

	return cmd
}

func list(cmd *cobra.Command, app application.Application, flags *globals.BudgetFlags, view search.BudgetView) error {
	sm, err := app.Servicemap(cmd.Context())
	if err != nil {
		return err
	}

	codes := sm.BudgetCodes(view, flags.Query())
	if !app.Quiet() {
		fmt.Fprintf(cmd.ErrOrStderr(), "Found %d %s codes\n", len(codes), view)
	}

	format := output.DetectFormat(app.OutputFormat())
	return output.Print(cmd.OutOrStdout(), format, codes, table.BudgetCodesToTableData(codes, format == output.FormatWide))
}
