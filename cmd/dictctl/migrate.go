package main

import (
	"github.com/amchigale/konkani-dictionary/internal/migration"
	"github.com/spf13/cobra"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the schema and seed the default experts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, closeDB, err := loadConfigAndDB()
			if err != nil {
				return err
			}
			defer closeDB()

			if err := migration.Run(cmd.Context(), db); err != nil {
				return err
			}
			cmd.Println("migration complete")
			return nil
		},
	}
}
