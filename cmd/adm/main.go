// Package main provides the entry point for the advice backend admin CLI tool.
package main

import (
	"context"
	"fmt"
	"os"

	"kingsadvice/cmd/adm/commands"
	"kingsadvice/internal/config"
	"kingsadvice/internal/database"
	"kingsadvice/internal/observability"
	"kingsadvice/internal/services"

	"github.com/spf13/cobra"
)

func main() {
	ctx := context.Background()

	cfg, err := config.NewConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Quiet logging and no OTLP export for the CLI
	cfg.Server.LogLevel = "error"
	cfg.OpenTelemetry.EnableTracing = false
	cfg.OpenTelemetry.EnableMetrics = false
	cfg.OpenTelemetry.EnableLogging = false

	tp, mp, logger, err := observability.SetupObservability(&cfg.OpenTelemetry, "advice-adm")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize observability: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if stp, ok := tp.(interface{ Shutdown(context.Context) error }); ok && tp != nil {
			if err := stp.Shutdown(context.TODO()); err != nil {
				logger.Warn(ctx, "Error shutting down tracer provider", map[string]interface{}{"error": err.Error()})
			}
		}
		if mp != nil {
			if err := mp.Shutdown(context.TODO()); err != nil {
				logger.Warn(ctx, "Error shutting down meter provider", map[string]interface{}{"error": err.Error()})
			}
		}
	}()

	dbManager := database.NewManager(logger)
	db, err := dbManager.InitDBWithoutMigrations(cfg.Database)
	if err != nil {
		logger.Error(ctx, "Failed to connect to database", err, map[string]interface{}{"db_url": commands.MaskDatabaseURL(cfg.Database.URL)})
		os.Exit(1)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn(ctx, "Failed to close database connection", map[string]interface{}{"error": err.Error()})
		}
	}()

	adminService := services.NewAdminServiceWithLogger(db, logger)
	requestService := services.NewRequestServiceWithLogger(db, logger)

	rootCmd := &cobra.Command{
		Use:   "adm",
		Short: "Advice Backend Administration Tool",
		Long: `Advice Backend Administration Tool

CLI tool for administering the consulting request marketplace.
Provides commands for admin accounts, database migrations, and the
canned question catalog.`,

		Run: func(cmd *cobra.Command, _ []string) {
			if err := cmd.Help(); err != nil {
				fmt.Printf("Error showing help: %v\n", err)
			}
		},
	}

	rootCmd.AddCommand(commands.AdminCommands(adminService, logger))
	rootCmd.AddCommand(commands.DatabaseCommands(dbManager, logger, db))
	rootCmd.AddCommand(commands.QuestionCommands(requestService, logger))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
