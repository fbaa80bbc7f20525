package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"model-diff/core/config"
	"model-diff/core/database"
	"model-diff/core/loader"
	"model-diff/core/logger"
	"model-diff/core/middleware/auth"
	"model-diff/core/middleware/rayid"
	"model-diff/core/storage"

	"model-diff/feature/comparison"
	comparisonmodels "model-diff/feature/comparison/models"
	"model-diff/feature/health"
	"model-diff/feature/model"
	modelmodels "model-diff/feature/model/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/minio/minio-go/v7"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	_ "model-diff/docs/swagger"
)

// @title Model Diff API
// @version 1.0
// @description API for storing structural model documents and comparing them.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the model diff server",
	Long:  `Starts the HTTP server and initializes all enabled features.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database (Required)
		// Model metadata and run history live here; the server is useless
		// without it.
		db, err := database.Connect(cfg.Database)
		if err != nil {
			logg.Fatal("Failed to connect to database", zap.Error(err))
		}
		if err := db.AutoMigrate(&modelmodels.ModelEntry{}, &comparisonmodels.ComparisonRun{}); err != nil {
			logg.Fatal("Failed to migrate schema", zap.Error(err))
		}

		// 4. Initialize Storage
		store, err := storage.NewClient(cfg.Storage)
		if err != nil {
			logg.Fatal("Failed to create storage client", zap.Error(err))
		}
		ensureBucket(store, cfg.Storage.Bucket, cfg.Storage.Region, logg)

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We log our own startup message
		})

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()

		// Register Features. Comparison builds on the model feature's
		// snapshot access, so it receives that service rather than
		// constructing its own.
		modelFeature := model.NewFeature(store, cfg.Storage.Bucket, logg, db, model.DefaultSnapshotTTL)
		mgr.Register(modelFeature)
		mgr.Register(comparison.NewFeature(modelFeature.Service(), store, cfg.Storage.Bucket, logg, db, cfg.Compare))
		mgr.Register(health.NewFeature(store, cfg.Storage.Bucket, logg, db))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Request logging (Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 3. Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 4. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}
		logg.Info("Features loaded", zap.Strings("features", mgr.Loaded()))

		// 8. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 9. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		_ = app.Shutdown()
	},
}

// ensureBucket creates the bucket when it does not exist yet. Failures are
// not fatal: storage may come up after the server, and the health feature
// keeps reporting the gap until then.
func ensureBucket(store storage.Client, bucket, region string, logg *zap.Logger) {
	ctx := context.Background()
	exists, err := store.BucketExists(ctx, bucket)
	if err != nil {
		logg.Warn("Could not check bucket", zap.String("bucket", bucket), zap.Error(err))
		return
	}
	if exists {
		return
	}
	if err := store.MakeBucket(ctx, bucket, minio.MakeBucketOptions{Region: region}); err != nil {
		logg.Warn("Could not create bucket", zap.String("bucket", bucket), zap.Error(err))
		return
	}
	logg.Info("Created bucket", zap.String("bucket", bucket))
}

func init() {
	RootCmd.AddCommand(startCmd)
}
