package commands

import (
	"github.com/spf13/cobra"

	"internship_backend/internals/configs"
	database "internship_backend/internals/databases"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := database.ConnectDB(configs.PostgresDSN())
			if err != nil {
				return err
			}
			defer database.Close(db)
			return database.Migrate(db)
		},
	}
}
