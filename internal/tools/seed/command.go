package seed

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/propmart/catalog-backend/internal/config"
	"github.com/propmart/catalog-backend/internal/database"
	"github.com/propmart/catalog-backend/internal/di"
)

// NewRootCommand builds the seed CLI. It reads the same environment variables
// as the server, so pointing it at a database is just DATABASE_URL.
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{Use: "seed", Short: "Catalog seed tooling"}
	cmd.AddCommand(newApplyCommand(), newMigrateCommand())
	return cmd
}

func newApplyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "apply",
		Short: "Load the demo catalog and records",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			db, err := database.Open(cfg)
			if err != nil {
				return err
			}
			if err := database.Migrate(db); err != nil {
				return err
			}
			report, err := database.Seed(db)
			if err != nil {
				return err
			}
			fmt.Printf("seeded %d products and %d records\n", report.CreatedProducts, report.CreatedProperties)
			return nil
		},
	}
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run schema migrations and reseed",
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := di.InitializeMigrationRunner()
			if err != nil {
				return err
			}
			return runner.Run()
		},
	}
}
