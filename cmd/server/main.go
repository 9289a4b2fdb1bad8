package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"libraryhub/internal/adapters/http/middleware"
	"libraryhub/internal/adapters/http/routes"
	"libraryhub/internal/adapters/persistence/models"
	"libraryhub/internal/config"
	"libraryhub/internal/core/services"
	"libraryhub/internal/pkg/telemetry"

	"github.com/gofiber/fiber/v2"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	_ "libraryhub/docs" // Swagger docs
)

// @title LibraryHub API
// @version 1.0
// @description Library management API: catalog, members and the borrow ledger.

// @BasePath /api/v1
// @schemes http https

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	serve := newServeCmd()

	root := &cobra.Command{
		Use:          "libraryhub",
		Short:        "LibraryHub API server",
		SilenceUsage: true,
		RunE:         serve.RunE,
	}
	root.AddCommand(serve, newMigrateCmd(), newSeedCmd())
	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd.Context())
		},
	}
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer config.CloseDatabase()
			return migrate(db)
		},
	}
}

func newSeedCmd() *cobra.Command {
	var withCatalog bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Seed the admin librarian and optionally a sample catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := bootstrap()
			if err != nil {
				return err
			}
			defer config.CloseDatabase()

			if err := migrate(db); err != nil {
				return err
			}
			if err := config.NewSeeder(db, cfg.Seed).Run(); err != nil {
				return err
			}
			if withCatalog {
				return config.SeedSampleCatalog(db)
			}
			return nil
		},
	}
	cmd.Flags().BoolVar(&withCatalog, "catalog", false, "also seed sample authors, categories, books and members")
	return cmd
}

// bootstrap loads configuration and connects to the database
func bootstrap() (*config.Config, *gorm.DB, error) {
	cfg, err := config.Load()
	if err != nil {
		log.Printf("❌ Failed to load configuration: %v", err)
		return nil, nil, err
	}

	db, err := config.ConnectDatabase(cfg)
	if err != nil {
		log.Printf("❌ Failed to connect to database: %v", err)
		return nil, nil, err
	}
	return cfg, db, nil
}

func migrate(db *gorm.DB) error {
	if err := models.AutoMigrate(db); err != nil {
		log.Printf("❌ Failed to auto migrate: %v", err)
		return err
	}
	log.Println("✅ Database migration completed")
	return nil
}

func serve(ctx context.Context) error {
	cfg, db, err := bootstrap()
	if err != nil {
		return err
	}
	defer config.CloseDatabase()

	// Tracing is a no-op unless an OTLP endpoint is configured
	tp, err := telemetry.Setup(ctx, cfg.Telemetry.ServiceName, cfg.Telemetry.OTLPEndpoint)
	if err != nil {
		log.Printf("⚠️ Warning: tracing disabled: %v", err)
	} else {
		defer tp.Shutdown()
	}

	if err := migrate(db); err != nil {
		return err
	}

	if cfg.IsDev() {
		if err := config.NewSeeder(db, cfg.Seed).Run(); err != nil {
			log.Printf("⚠️ Warning: Failed to seed admin librarian: %v", err)
		}
	}

	svc := services.NewRegistry(db, cfg)

	// Overdue sweep (disabled when OVERDUE_CRON is empty)
	if err := svc.Cron.Start(); err != nil {
		log.Printf("❌ Failed to start cron service: %v", err)
		return err
	}
	defer svc.Cron.Stop()

	json := jsoniter.ConfigCompatibleWithStandardLibrary
	app := fiber.New(fiber.Config{
		AppName:      "LibraryHub API v1.0",
		ErrorHandler: middleware.CustomErrorHandler,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	})

	middleware.Setup(app, cfg)
	routes.Setup(app, svc, cfg)

	go gracefulShutdown(app)

	log.Printf("🚀 Server starting on port %s [MODE: %s]", cfg.Port, cfg.AppMode)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Printf("❌ Failed to start server: %v", err)
		return err
	}
	return nil
}

// gracefulShutdown handles graceful shutdown
func gracefulShutdown(app *fiber.App) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")
	if err := app.Shutdown(); err != nil {
		log.Printf("❌ Error during shutdown: %v", err)
	}
	log.Println("✅ Server stopped gracefully")
}
