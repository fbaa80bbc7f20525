package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"model-diff/core/compare"
	"model-diff/core/config"
	"model-diff/core/database"
	"model-diff/core/logger"
	"model-diff/core/storage"
	"model-diff/feature/comparison"
	comparisonmodels "model-diff/feature/comparison/models"
	"model-diff/feature/model"
	modelmodels "model-diff/feature/model/models"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var (
	// Flags for the compare command
	compareKeyMode     string
	comparePrecision   int
	compareTolerance   bool
	compareStrict      bool
	comparePositionTol float64
	compareLengthTol   float64
	compareTargets     string
	compareJSON        bool
	compareSave        bool
	compareDetails     bool
)

// compareCmd runs a comparison between two stored models.
var compareCmd = &cobra.Command{
	Use:   "compare MODEL_A MODEL_B",
	Short: "Compare two stored models element by element",
	Long: `Compare two stored models element by element.

Model A is the baseline (as-designed), model B the candidate (as-built).
Flags override the configured comparison defaults for this run only.

Examples:
  # Compare with configured defaults
  model-diff compare 7c5e... 91ab...

  # Integer-millimetre keys with tolerance matching
  model-diff compare 7c5e... 91ab... --precision 0 --tolerance

  # Machine-readable report, persisted like a POST /comparisons run
  model-diff compare 7c5e... 91ab... --json --save`,
	Args: cobra.ExactArgs(2),
	RunE: runCompare,
}

func init() {
	compareCmd.Flags().StringVar(&compareKeyMode, "key-mode", "", "Identity strategy: spatial or external")
	compareCmd.Flags().IntVar(&comparePrecision, "precision", 0, "Decimal digits in spatial keys")
	compareCmd.Flags().BoolVar(&compareTolerance, "tolerance", false, "Enable tolerance matching")
	compareCmd.Flags().BoolVar(&compareStrict, "strict", false, "Force exact matching even when tolerance is enabled")
	compareCmd.Flags().Float64Var(&comparePositionTol, "position-tolerance", 0, "Per-axis coordinate tolerance in mm")
	compareCmd.Flags().Float64Var(&compareLengthTol, "length-tolerance", 0, "Member length tolerance in mm")
	compareCmd.Flags().StringVar(&compareTargets, "targets", "", "Only compare elements of these importance levels (comma-separated)")
	compareCmd.Flags().BoolVar(&compareJSON, "json", false, "Print the full report as JSON")
	compareCmd.Flags().BoolVar(&compareSave, "save", false, "Persist the run like POST /comparisons does")
	compareCmd.Flags().BoolVar(&compareDetails, "details", false, "List the differing elements per type")

	RootCmd.AddCommand(compareCmd)
}

func runCompare(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.Connect(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.AutoMigrate(&modelmodels.ModelEntry{}, &comparisonmodels.ComparisonRun{}); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}

	client, err := storage.NewClient(cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to connect to storage: %w", err)
	}

	// No snapshot caching for a one-off CLI run.
	modelSvc := model.NewService(client, cfg.Storage.Bucket, l, db, 0)
	svc := comparison.NewService(modelSvc, client, cfg.Storage.Bucket, l, db, cfg.Compare)

	req := comparison.RunRequest{
		ModelA:       args[0],
		ModelB:       args[1],
		KeyMode:      compareKeyMode,
		TargetLevels: compareTargets,
	}
	// Only flags the user actually set override the configured defaults.
	if cmd.Flags().Changed("precision") {
		req.Precision = &comparePrecision
	}
	if cmd.Flags().Changed("tolerance") {
		req.Tolerance = &compareTolerance
	}
	if cmd.Flags().Changed("strict") {
		req.Strict = &compareStrict
	}
	if cmd.Flags().Changed("position-tolerance") {
		req.PositionToleranceMM = &comparePositionTol
	}
	if cmd.Flags().Changed("length-tolerance") {
		req.LengthToleranceMM = &compareLengthTol
	}

	var report *comparisonmodels.Report
	if compareSave {
		report, err = svc.Run(ctx, req)
	} else {
		report, err = svc.Execute(ctx, req)
	}
	if err != nil {
		return err
	}

	if compareJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	renderCompareReport(os.Stdout, report, compareDetails)
	if compareSave {
		fmt.Printf("Saved as run %s\n", report.RunID)
	}
	return nil
}

// renderCompareReport prints the report as console tables.
func renderCompareReport(w io.Writer, report *comparisonmodels.Report, details bool) {
	fmt.Fprintf(w, "\nA: %s (%s)\n", report.ModelA.Name, report.ModelA.ID)
	fmt.Fprintf(w, "B: %s (%s)\n", report.ModelB.Name, report.ModelB.ID)
	matching := "exact"
	if report.Tolerance && !report.Strict {
		matching = "tolerance"
	}
	fmt.Fprintf(w, "Key mode: %s, precision: %d, matching: %s\n\n", report.KeyMode, report.Precision, matching)

	s := report.Summary

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Type", "Exact", "Within Tol", "Mismatch", "Only A", "Only B", "Dropped"})
	for _, o := range s.Types {
		t.AppendRow(table.Row{o.Type, o.Exact, o.WithinTolerance, o.Mismatch, o.OnlyA, o.OnlyB, o.DroppedA + o.DroppedB})
	}
	t.AppendFooter(table.Row{"Total", s.Exact, s.WithinTolerance, s.Mismatch, s.OnlyA, s.OnlyB, s.Dropped})
	t.Render()

	if len(s.Levels) > 0 {
		fmt.Fprintln(w)
		lt := table.NewWriter()
		lt.SetOutputMirror(w)
		lt.SetStyle(table.StyleLight)
		lt.AppendHeader(table.Row{"Importance", "Matched", "Mismatch", "Only A", "Only B", "Differences"})
		for _, level := range compare.AllLevels {
			counts, ok := s.Levels[level]
			if !ok {
				continue
			}
			lt.AppendRow(table.Row{level.String(), counts.Matched, counts.Mismatch, counts.OnlyA, counts.OnlyB, counts.Differences})
		}
		lt.Render()
	}

	fmt.Fprintf(w, "\nDifferences: %d\n", s.Differences)

	if details {
		renderDifferences(w, report)
	}
}

// renderDifferences lists the differing elements, one table per type that has
// any.
func renderDifferences(w io.Writer, report *comparisonmodels.Report) {
	for _, section := range report.Types {
		if section.Counts.Differences() == 0 {
			continue
		}

		fmt.Fprintf(w, "\n%s\n", section.Type)
		t := table.NewWriter()
		t.SetOutputMirror(w)
		t.SetStyle(table.StyleLight)
		t.AppendHeader(table.Row{"Bucket", "ID", "Name", "Importance", "Key"})
		for _, pair := range section.Mismatch {
			t.AppendRow(table.Row{"mismatch", pair.A.ID + " / " + pair.B.ID, pair.A.Name, pair.A.Importance.String(), pair.A.Key})
		}
		for _, ref := range section.OnlyA {
			t.AppendRow(table.Row{"only A", ref.ID, ref.Name, ref.Importance.String(), ref.Key})
		}
		for _, ref := range section.OnlyB {
			t.AppendRow(table.Row{"only B", ref.ID, ref.Name, ref.Importance.String(), ref.Key})
		}
		t.Render()
	}
}
