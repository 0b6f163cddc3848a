package commands

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/ksuibraheem/arba-sub002/internal/config"
	"github.com/ksuibraheem/arba-sub002/internal/logger"
	"github.com/ksuibraheem/arba-sub002/internal/metrics"
	"github.com/ksuibraheem/arba-sub002/internal/models"
	"github.com/ksuibraheem/arba-sub002/internal/repository"
	"github.com/ksuibraheem/arba-sub002/internal/routes"
	"github.com/ksuibraheem/arba-sub002/internal/services/invoices"
	"github.com/ksuibraheem/arba-sub002/internal/services/journal"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the accounting HTTP service",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	log := logger.WithComponent("serve")

	// Load .env
	if err := godotenv.Load(); err != nil {
		log.Info().Msg("no .env file found, relying on system env")
	}

	cfg := config.Load()
	if err := logger.Setup(logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: cfg.LogOutput,
	}); err != nil {
		return err
	}

	db, err := config.InitDB(cfg)
	if err != nil {
		return err
	}
	if err := migrateAndSeed(db); err != nil {
		return err
	}

	r := gin.Default()
	r.Use(metrics.Middleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	routes.RegisterRoutes(r, db)

	startOverdueSweeper(db)

	log.Info().Str("port", cfg.Port).Msg("listening")
	return r.Run(":" + cfg.Port)
}

func migrateAndSeed(db *gorm.DB) error {
	if err := db.AutoMigrate(models.All()...); err != nil {
		return err
	}
	return repository.NewAccountRepository(db).Seed(models.DefaultChart())
}

// startOverdueSweeper marks past-due pending invoices overdue once an hour.
func startOverdueSweeper(db *gorm.DB) {
	invoiceRepo := repository.NewInvoiceRepository(db)
	accountRepo := repository.NewAccountRepository(db)
	journalRepo := repository.NewJournalRepository(db)
	svc := invoices.NewService(invoiceRepo, journal.NewService(journalRepo, accountRepo))

	log := logger.WithComponent("overdue-sweeper")
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for range ticker.C {
			count, err := svc.SweepOverdue(time.Now())
			if err != nil {
				log.Error().Err(err).Msg("overdue sweep failed")
				continue
			}
			if count > 0 {
				log.Info().Int64("invoices", count).Msg("marked invoices overdue")
			}
		}
	}()
}
