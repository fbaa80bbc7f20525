package cmd

import (
	"fmt"
	"os"

	"model-diff/core/config"
	"model-diff/core/database"
	"model-diff/core/logger"
	"model-diff/core/storage"
	"model-diff/feature/model"
	"model-diff/feature/model/models"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var uploadName string

// modelsCmd is the parent command for model document operations.
var modelsCmd = &cobra.Command{
	Use:   "models",
	Short: "Manage stored model documents",
	Long:  `Upload, list, and inspect the model documents comparisons run against.`,
}

var modelsUploadCmd = &cobra.Command{
	Use:   "upload FILE",
	Short: "Upload a model document",
	Long:  `Parses and validates a model document JSON file and stores it for comparison.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newModelService()
		if err != nil {
			return err
		}

		payload, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}

		entry, err := svc.Upload(cmd.Context(), uploadName, payload)
		if err != nil {
			return err
		}

		fmt.Println("\n--- Model Uploaded ---")
		fmt.Printf("ID:         %s\n", entry.ID)
		fmt.Printf("Name:       %s\n", entry.DisplayName)
		fmt.Printf("Object Key: %s\n", entry.ObjectKey)
		fmt.Printf("Nodes:      %d\n", entry.NodeCount)
		fmt.Printf("Elements:   %d\n", entry.ElementCount)
		fmt.Println("----------------------")
		return nil
	},
}

var modelsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored models, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newModelService()
		if err != nil {
			return err
		}

		entries, err := svc.List(cmd.Context())
		if err != nil {
			return err
		}
		if len(entries) == 0 {
			fmt.Println("(no models stored)")
			return nil
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"ID", "Name", "Nodes", "Elements", "Uploaded"})
		for _, e := range entries {
			t.AppendRow(table.Row{e.ID, e.DisplayName, e.NodeCount, e.ElementCount, e.UploadedAt.Format("2006-01-02 15:04")})
		}
		t.Render()
		return nil
	},
}

var modelsShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show one stored model with its per-type element counts",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newModelService()
		if err != nil {
			return err
		}

		entry, err := svc.Get(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		snap, err := svc.Snapshot(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		fmt.Println("\n--- Model Detail ---")
		fmt.Printf("ID:         %s\n", entry.ID)
		fmt.Printf("Name:       %s\n", entry.DisplayName)
		fmt.Printf("Units:      %s\n", snap.Units)
		fmt.Printf("Object Key: %s\n", entry.ObjectKey)
		fmt.Printf("Nodes:      %d\n", snap.NodeCount)
		fmt.Printf("Elements:   %d\n", snap.ElementCount)
		fmt.Printf("Uploaded:   %s\n", entry.UploadedAt.Format("2006-01-02 15:04"))
		fmt.Println("--------------------")

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Type", "Count"})
		for _, profile := range model.DefaultProfiles() {
			if recs := snap.TypeRecords(profile.Type); len(recs) > 0 {
				t.AppendRow(table.Row{profile.Type, len(recs)})
			}
		}
		t.Render()
		return nil
	},
}

func init() {
	modelsUploadCmd.Flags().StringVar(&uploadName, "name", "", "Display name (defaults to the document's own name)")
	modelsCmd.AddCommand(modelsUploadCmd, modelsListCmd, modelsShowCmd)
	RootCmd.AddCommand(modelsCmd)
}

// newModelService wires a model service for one-off CLI use: required
// database, required storage, no snapshot caching.
func newModelService() (*model.Service, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&models.ModelEntry{}); err != nil {
		return nil, fmt.Errorf("failed to migrate schema: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to storage: %w", err)
	}

	return model.NewService(client, cfg.Storage.Bucket, l, db, 0), nil
}
