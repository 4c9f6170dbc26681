// Package cli wires the catalog services into the catalog command.
package cli

import (
	"github.com/spf13/cobra"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Offline bool
	Fields  []string
}

// NewRootCommand creates the root command for the catalog CLI.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Course catalog client",
		Long: `Browse and edit the course catalog through the remote API.

When the API cannot be reached every command falls back to the local
snapshot store, so the CLI keeps working offline.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "log to stderr")
	cmd.PersistentFlags().BoolVar(&opts.Offline, "offline", false, "skip the remote API and use the local store")
	cmd.PersistentFlags().StringSliceVar(&opts.Fields, "fields", nil, "only print these JSON keys")

	cmd.AddCommand(newCoursesCommand(opts))
	cmd.AddCommand(newCategoriesCommand(opts))
	cmd.AddCommand(newUsersCommand(opts))
	cmd.AddCommand(newEnrollCommand(opts))
	cmd.AddCommand(newEnrollmentsCommand(opts))
	cmd.AddCommand(newDashboardCommand(opts))
	cmd.AddCommand(newMigrateCommand(opts))
	cmd.AddCommand(newPingCommand(opts))
	cmd.AddCommand(newExportCommand(opts))
	cmd.AddCommand(newBackupCommand(opts))

	return cmd
}
