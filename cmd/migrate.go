package cmd

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	config "task-tracker.com/task-tracker/internal/configs"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the tasks table",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load()

		dialector, err := config.Dialector(cfg.DatabaseDriver, cfg.DatabaseDSN)
		if err != nil {
			return err
		}

		db, err := gorm.Open(dialector, config.GormConfig(log.Default()))
		if err != nil {
			return fmt.Errorf("db open failed: %w", err)
		}

		if err := config.Migrate(db); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}

		log.Printf("migrated %s database", cfg.DatabaseDriver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
