package cli

import (
	"github.com/amreid/nextup/internal/config"
	"github.com/spf13/cobra"
)

// NewRootCmd creates the top-level "nextup" command and registers all
// subcommands against the provided configuration.
func NewRootCmd(cfg config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:   "nextup",
		Short: "Task recommendation API server",
	}

	root.AddCommand(
		newServeCmd(cfg),
		newMigrateCmd(cfg),
		newTokenCmd(cfg),
	)

	return root
}
