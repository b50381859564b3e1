// Package services provides commands for searching services and
// inspecting a single service.
package services

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agentstation/servicemap/cmd/application"
	"github.com/agentstation/servicemap/internal/cmd/globals"
	"github.com/agentstation/servicemap/internal/cmd/output"
	"github.com/agentstation/servicemap/internal/cmd/table"
	"github.com/agentstation/servicemap/pkg/errors"
	"github.com/agentstation/servicemap/pkg/pricing"
)

// NewCommand creates the services command with its show and price subcommands.
func NewCommand(app application.Application) *cobra.Command {
	var flags *globals.ServiceFlags

	cmd := &cobra.Command{
		Use:     "services",
		Aliases: []string{"service", "svc"},
		GroupID: "core",
		Short:   "Search services",
		Example: `  servicemap services                           # All services
  servicemap services --search "personal care"  # Search by term
  servicemap services --type Meals -o wide      # Filter by type
  servicemap services show svc:G1/T1/S1         # Service detail
  servicemap services price S1                  # Reference price`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd, app, flags)
		},
	}
	flags = globals.AddServiceFlags(cmd)

	cmd.AddCommand(newShowCommand(app))
	cmd.AddCommand(newPriceCommand(app))

	return cmd
}

func runList(cmd *cobra.Command, app application.Application, flags *globals.ServiceFlags) error {
	sm, err := app.Servicemap(cmd.Context())
	if err != nil {
		return err
	}

	q := flags.Query()
	if err := sm.Facets().Validate(q); err != nil {
		return err
	}
	result, err := sm.Search(q)
	if err != nil {
		return err
	}

	leaves := result.Leaves
	if flags.Limit > 0 && len(leaves) > flags.Limit {
		leaves = leaves[:flags.Limit]
	}

	if !app.Quiet() {
		fmt.Fprintf(cmd.ErrOrStderr(), "Found %d services\n", result.Count())
	}

	format := output.DetectFormat(app.OutputFormat())
	return output.Print(cmd.OutOrStdout(), format, leaves, table.ServicesToTableData(leaves, format == output.FormatWide))
}

func newShowCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a service with its links and reference price",
		Long: `Show prints one service by node ID (svc:<group>/<type>/<service>) or
service ID, with its breadcrumbs, linked funding sources and activities, and
its reference price. Use -o markdown for a printable report.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sm, err := app.Servicemap(cmd.Context())
			if err != nil {
				return err
			}
			node, err := sm.Service(args[0])
			if err != nil {
				return err
			}
			lineage, err := sm.Lineage(node.ID)
			if err != nil {
				return err
			}

			var price *pricing.Match
			switch m, err := sm.Price(node.ID); {
			case err == nil:
				price = &m
			case !errors.IsNotFound(err):
				return err
			}

			report := output.NewServiceReport(node, lineage, price)
			return output.PrintTabular(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()), report)
		},
	}
}

func newPriceCommand(app application.Application) *cobra.Command {
	return &cobra.Command{
		Use:   "price <id>",
		Short: "Resolve the reference price of a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sm, err := app.Servicemap(cmd.Context())
			if err != nil {
				return err
			}
			m, err := sm.Price(args[0])
			if err != nil {
				return err
			}
			return output.Print(cmd.OutOrStdout(), output.DetectFormat(app.OutputFormat()), m, table.PriceToTableData(m))
		},
	}
}
