package main

import (
	"github.com/deppfellow/store-inventory/internal/database"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the embedded schema migrations and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, loggerService, log, err := bootstrap()
		if err != nil {
			return err
		}
		defer loggerService.Shutdown()

		return database.Migrate(cmd.Context(), &log, cfg)
	},
}
