package cmd

import (
	"errors"
	"fmt"

	"vehicle-catalog-api/database"

	"github.com/spf13/cobra"
)

func newSeedCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import brands, models, generations and equipment from a YAML file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, db, err := bootstrap(cmd)
			if err != nil {
				return err
			}
			if cfg.Seed.File == "" {
				return errors.New("seed file is required (--seed-file)")
			}
			if err := database.Migrate(db); err != nil {
				return err
			}

			stats, err := runSeed(db, cfg.Seed.File)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d brands, %d models, %d generations, %d equipment assignments\n",
				stats.Brands, stats.Models, stats.Generations, stats.Equipment)
			return nil
		},
	}
	cmd.Flags().String("seed-file", "", "YAML seed file")
	return cmd
}
