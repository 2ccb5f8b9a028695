package cmd

import (
	"vehicle-catalog-api/database"
	"vehicle-catalog-api/utils"

	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the catalog tables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, db, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}
			utils.Logger().Info("database migrated")
			return nil
		},
	}
}
