package cli

import (
	"github.com/amreid/nextup/internal/config"
	"github.com/amreid/nextup/internal/db"
	"github.com/spf13/cobra"
)

func newMigrateCmd(cfg config.Config) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			database, err := db.OpenDB(cfg.DBPath)
			if err != nil {
				return err
			}
			defer database.Close()
			cmd.Printf("database ready at %s\n", cfg.DBPath)
			return nil
		},
	}
}
