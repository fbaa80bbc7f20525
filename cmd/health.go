package cmd

import (
	"context"
	"fmt"
	"os"

	"model-diff/core/config"
	"model-diff/core/database"
	"model-diff/core/logger"
	"model-diff/core/storage"
	"model-diff/feature/health"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// healthCmd represents the health command
var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Run operational checks against storage and the database",
	Long:  `Checks that the bucket and object prefixes are reachable and that the application tables carry the expected columns.`,
	Run: func(cmd *cobra.Command, args []string) {
		if len(args) > 0 {
			cmd.Help()
			return
		}
		runHealthChecks(cmd.Context(), true, true)
	},
}

// healthStorageCmd represents the health storage command
var healthStorageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Check bucket and object prefix reachability",
	Run: func(cmd *cobra.Command, args []string) {
		runHealthChecks(cmd.Context(), true, false)
	},
}

// healthDatabaseCmd represents the health database command
var healthDatabaseCmd = &cobra.Command{
	Use:   "database",
	Short: "Check the application tables against their models",
	Run: func(cmd *cobra.Command, args []string) {
		runHealthChecks(cmd.Context(), false, true)
	},
}

func init() {
	RootCmd.AddCommand(healthCmd)
	healthCmd.AddCommand(healthStorageCmd, healthDatabaseCmd)
}

func runHealthChecks(ctx context.Context, checkStorage, checkDatabase bool) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		fmt.Printf("Failed to create logger: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.NewClient(cfg.Storage)
	if err != nil {
		logg.Fatal("Failed to create storage client", zap.Error(err))
	}

	// Database connection failures are reported by the check itself, not
	// fatal here: a storage-only invocation should still work.
	var db *gorm.DB
	if conn, err := database.Connect(cfg.Database); err != nil {
		logg.Warn("Database connection failed", zap.Error(err))
	} else {
		db = conn
	}

	svc := health.NewService(store, cfg.Storage.Bucket, logg, db)
	degraded := false

	if checkStorage {
		logg.Info("Checking storage...")
		failed, err := svc.CheckStorage(ctx)
		switch {
		case err != nil:
			logg.Error("Storage check failed", zap.Error(err))
			degraded = true
		case len(failed) > 0:
			logg.Warn("Storage prefixes failing", zap.Strings("failed", failed))
			degraded = true
		default:
			logg.Info("Storage is healthy.")
		}
	}

	if checkDatabase {
		logg.Info("Checking database schema...")
		report, err := svc.CheckDatabase()
		if err != nil {
			logg.Error("Database check failed", zap.Error(err))
			degraded = true
		} else if report.Matched {
			logg.Info("Database schema matches the expected definition.")
		} else {
			degraded = true
			for tableName, tbl := range report.Tables {
				if tbl.Status != "ok" {
					logg.Warn("Missing Columns", zap.String("table", tableName), zap.Strings("columns", tbl.MissingColumns))
				}
			}
			for _, e := range report.Errors {
				logg.Error("Inspection Error", zap.String("error", e))
			}
		}
	}

	if degraded {
		os.Exit(1)
	}
}
