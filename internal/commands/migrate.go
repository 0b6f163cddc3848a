package commands

import (
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/ksuibraheem/arba-sub002/internal/config"
	"github.com/ksuibraheem/arba-sub002/internal/logger"
)

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations and seed the chart of accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logger.WithComponent("migrate")

			if err := godotenv.Load(); err != nil {
				log.Info().Msg("no .env file found, relying on system env")
			}

			db, err := config.InitDB(config.Load())
			if err != nil {
				return err
			}
			if err := migrateAndSeed(db); err != nil {
				return err
			}

			log.Info().Msg("migrations applied, chart of accounts seeded")
			return nil
		},
	}
}
