package commands

import (
	"github.com/spf13/cobra"

	"internship_backend/internals/configs"
	database "internship_backend/internals/databases"
	"internship_backend/internals/seeds"
)

func newSeedCmd() *cobra.Command {
	var dataDir string
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load demo rounds and internships",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := configs.InitSeederDB()
			if err != nil {
				return err
			}
			defer database.Close(db)
			if err := database.Migrate(db); err != nil {
				return err
			}
			return seeds.RunAllSeeds(cmd.Context(), db, dataDir)
		},
	}
	cmd.Flags().StringVar(&dataDir, "data", "internals/seeds/internships", "directory holding the seed JSON files")
	return cmd
}
