package app

import (
	"github.com/spf13/cobra"

	"github.com/agentstation/servicemap/cmd/servicemap/cmd/activities"
	"github.com/agentstation/servicemap/cmd/servicemap/cmd/budget"
	"github.com/agentstation/servicemap/cmd/servicemap/cmd/facets"
	"github.com/agentstation/servicemap/cmd/servicemap/cmd/funding"
	"github.com/agentstation/servicemap/cmd/servicemap/cmd/items"
	"github.com/agentstation/servicemap/cmd/servicemap/cmd/serve"
	"github.com/agentstation/servicemap/cmd/servicemap/cmd/services"
	"github.com/agentstation/servicemap/cmd/servicemap/cmd/tree"
)

// registerCommands registers all subcommands with the root command.
func (a *App) registerCommands(rootCmd *cobra.Command) {
	// Core commands
	rootCmd.AddCommand(tree.NewCommand(a))
	rootCmd.AddCommand(services.NewCommand(a))
	rootCmd.AddCommand(serve.NewCommand(a))

	// Explorer commands
	rootCmd.AddCommand(facets.NewCommand(a))
	rootCmd.AddCommand(funding.NewCommand(a))
	rootCmd.AddCommand(activities.NewCommand(a))
	rootCmd.AddCommand(items.NewCommand(a))
	rootCmd.AddCommand(budget.NewCommand(a))

	// Utility commands
	rootCmd.AddCommand(a.NewVersionCommand())
}

// NewVersionCommand creates the version command.
func (a *App) NewVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Printf("servicemap %s\n", a.version)
			if a.config.Verbose {
				cmd.Printf("  commit:   %s\n", a.commit)
				cmd.Printf("  built:    %s\n", a.date)
				cmd.Printf("  built by: %s\n", a.builtBy)
			}
		},
	}
}
