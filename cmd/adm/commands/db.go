// Package commands provides CLI commands for the admin tool
package commands

import (
	"context"
	"database/sql"
	"os"

	"kingsadvice/internal/database"
	"kingsadvice/internal/observability"
	contextutils "kingsadvice/internal/utils"

	"github.com/spf13/cobra"
)

// DatabaseCommands returns the database management commands
func DatabaseCommands(dbManager *database.Manager, logger *observability.Logger, db *sql.DB) *cobra.Command {
	dbCmd := &cobra.Command{
		Use:   "db",
		Short: "Database management commands",
		Long: `Database management commands for the advice backend.

Available commands:
  migrate   - Apply the schema and any pending migrations
  stats     - Show database statistics`,
	}

	dbCmd.AddCommand(migrateCmd(dbManager, logger, db))
	dbCmd.AddCommand(statsCmd(logger, db))

	return dbCmd
}

// migrateCmd returns the migrate command
func migrateCmd(dbManager *database.Manager, logger *observability.Logger, db *sql.DB) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply the schema and any pending migrations",
		Long:  `Apply the base schema and run any pending migrations against the configured database.`,
		RunE:  runMigrate(dbManager, logger, db),
	}
}

// statsCmd returns the stats command
func statsCmd(logger *observability.Logger, db *sql.DB) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show database statistics",
		Long:  `Show database statistics including request counts per status and catalog size.`,
		RunE:  runStats(logger, db),
	}
}

// runMigrate returns a function that applies migrations
func runMigrate(dbManager *database.Manager, logger *observability.Logger, db *sql.DB) func(cmd *cobra.Command, args []string) error {
	return func(_ *cobra.Command, _ []string) error {
		ctx := context.Background()

		logger.Info(ctx, "Diagnostic info", map[string]interface{}{"config_file": os.Getenv("ADVICE_CONFIG_FILE"), "database": getDatabaseInfo(db)})

		if err := dbManager.RunMigrations(db); err != nil {
			logger.Error(ctx, "Failed to run migrations", err, map[string]interface{}{})
			return contextutils.WrapErrorf(err, "failed to run migrations")
		}

		logger.Info(ctx, "Migrations applied", map[string]interface{}{})
		return nil
	}
}

// runStats returns a function that shows database statistics
func runStats(logger *observability.Logger, db *sql.DB) func(cmd *cobra.Command, args []string) error {
	return func(_ *cobra.Command, _ []string) error {
		ctx := context.Background()

		logger.Info(ctx, "Diagnostic info", map[string]interface{}{"config_file": os.Getenv("ADVICE_CONFIG_FILE"), "database": getDatabaseInfo(db)})

		if db == nil {
			return contextutils.WrapErrorf(contextutils.ErrInternalError, "database connection not available")
		}

		rows, err := db.QueryContext(ctx, "SELECT status, COUNT(*) FROM requests GROUP BY status ORDER BY status")
		if err != nil {
			logger.Error(ctx, "Failed to get request statistics", err, map[string]interface{}{})
			return contextutils.WrapErrorf(contextutils.ErrInternalError, "failed to get request statistics: %v", err)
		}
		defer func() { _ = rows.Close() }()

		byStatus := map[string]int{}
		total := 0
		for rows.Next() {
			var status string
			var count int
			if err := rows.Scan(&status, &count); err != nil {
				return contextutils.WrapErrorf(contextutils.ErrInternalError, "failed to scan request statistics: %v", err)
			}
			byStatus[status] = count
			total += count
		}
		if err := rows.Err(); err != nil {
			return contextutils.WrapErrorf(contextutils.ErrInternalError, "failed to read request statistics: %v", err)
		}

		var catalogSize int
		if err := db.QueryRowContext(ctx, "SELECT COUNT(*) FROM basic_questions").Scan(&catalogSize); err != nil {
			logger.Error(ctx, "Failed to get catalog statistics", err, map[string]interface{}{})
			return contextutils.WrapErrorf(contextutils.ErrInternalError, "failed to get catalog statistics: %v", err)
		}

		logger.Info(ctx, "Database statistics", map[string]interface{}{
			"total_requests":  total,
			"by_status":       byStatus,
			"basic_questions": catalogSize,
			"database":        "PostgreSQL",
			"status":          "Connected",
		})

		return nil
	}
}
