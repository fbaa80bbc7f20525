package comparison

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"model-diff/core/compare"
	"model-diff/core/storage"
	"model-diff/feature/comparison/models"
	"model-diff/feature/model"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

// ReportPrefix is where full comparison reports live inside the bucket.
const ReportPrefix = "reports/"

// ErrBadRequest marks comparison requests that could not be accepted.
// Handlers map it to a client error instead of a server error.
var ErrBadRequest = errors.New("invalid comparison request")

// RunRequest selects the two models and optionally overrides the configured
// comparison settings. Nil/empty fields keep the configured defaults.
type RunRequest struct {
	ModelA string `json:"model_a"`
	ModelB string `json:"model_b"`

	KeyMode             string   `json:"key_mode,omitempty"`
	Precision           *int     `json:"precision,omitempty"`
	Tolerance           *bool    `json:"tolerance,omitempty"`
	Strict              *bool    `json:"strict,omitempty"`
	PositionToleranceMM *float64 `json:"position_tolerance_mm,omitempty"`
	LengthToleranceMM   *float64 `json:"length_tolerance_mm,omitempty"`
	TargetLevels        string   `json:"target_levels,omitempty"`
}

// settings are one run's fully resolved comparison parameters.
type settings struct {
	cfg      compare.Config
	mode     compare.KeyMode
	tol      compare.ToleranceConfig
	resolver compare.MapResolver
	targets  []compare.ImportanceLevel
}

// Service orchestrates comparisons: it loads the two snapshots, walks the
// element type registry calling the engine once per type, and persists the
// run (counts row in the database, full report in object storage).
type Service struct {
	modelSvc *model.Service
	client   storage.Client
	bucket   string
	logger   *zap.Logger
	db       *gorm.DB
	cfg      compare.Config
}

// NewService creates a new comparison service.
func NewService(modelSvc *model.Service, client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, cfg compare.Config) *Service {
	return &Service{
		modelSvc: modelSvc,
		client:   client,
		bucket:   bucket,
		logger:   logger,
		db:       db,
		cfg:      cfg,
	}
}

// resolve merges the request overrides into the configured defaults and
// parses everything the engine needs. Unparseable values fail the request.
func (s *Service) resolve(req RunRequest) (settings, error) {
	if strings.TrimSpace(req.ModelA) == "" || strings.TrimSpace(req.ModelB) == "" {
		return settings{}, fmt.Errorf("%w: both model_a and model_b are required", ErrBadRequest)
	}

	cfg := s.cfg
	if req.KeyMode != "" {
		cfg.KeyMode = req.KeyMode
	}
	if req.Precision != nil {
		cfg.Precision = *req.Precision
	}
	if req.Tolerance != nil {
		cfg.ToleranceEnabled = *req.Tolerance
	}
	if req.Strict != nil {
		cfg.Strict = *req.Strict
	}
	if req.PositionToleranceMM != nil {
		cfg.PositionToleranceMM = *req.PositionToleranceMM
	}
	if req.LengthToleranceMM != nil {
		cfg.LengthToleranceMM = *req.LengthToleranceMM
	}
	if req.TargetLevels != "" {
		cfg.TargetLevels = req.TargetLevels
	}

	mode, err := cfg.Mode()
	if err != nil {
		return settings{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	resolver, err := cfg.Resolver()
	if err != nil {
		return settings{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}
	targets, err := cfg.Targets()
	if err != nil {
		return settings{}, fmt.Errorf("%w: %v", ErrBadRequest, err)
	}

	return settings{
		cfg:      cfg,
		mode:     mode,
		tol:      cfg.Tolerance(),
		resolver: resolver,
		targets:  targets,
	}, nil
}

// Execute runs a comparison without persisting anything. The CLI uses this
// directly; Run adds persistence on top.
func (s *Service) Execute(ctx context.Context, req RunRequest) (*models.Report, error) {
	set, err := s.resolve(req)
	if err != nil {
		return nil, err
	}

	var snapA, snapB *model.Snapshot
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if snapA, err = s.modelSvc.Snapshot(gctx, req.ModelA); err != nil {
			return fmt.Errorf("model A: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if snapB, err = s.modelSvc.Snapshot(gctx, req.ModelB); err != nil {
			return fmt.Errorf("model B: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &models.Report{
		RunID:       uuid.NewString(),
		ModelA:      models.ModelRef{ID: req.ModelA, Name: snapA.Name},
		ModelB:      models.ModelRef{ID: req.ModelB, Name: snapB.Name},
		KeyMode:     set.mode.String(),
		Precision:   set.cfg.Precision,
		Tolerance:   set.tol.Enabled,
		Strict:      set.tol.StrictMode,
		GeneratedAt: time.Now().UTC(),
		Types:       []models.TypeReport{},
	}
	summary := compare.NewSummary()

	opts := compare.ImportanceOptions{TargetLevels: set.targets, Resolver: set.resolver}
	for _, profile := range model.DefaultProfiles() {
		// One engine call per element type; a cancelled run stops cleanly at
		// the next type boundary.
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		recsA := snapA.TypeRecords(profile.Type)
		recsB := snapB.TypeRecords(profile.Type)
		if len(recsA) == 0 && len(recsB) == 0 {
			continue
		}

		ex := profile.NewExtractor(compare.ExtractorConfig{
			Mode:      set.mode,
			Precision: set.cfg.Precision,
			Logger:    s.logger,
		}, set.cfg.FallbackLengthMM)

		var section models.TypeReport
		if set.tol.Enabled && !set.tol.StrictMode {
			r := compare.MatchToleranceWithImportance(recsA, recsB, snapA.Nodes, snapB.Nodes, ex, profile.Type, set.tol, nil, opts)
			outcome := compare.OutcomeFromTolerance(profile.Type, r.ToleranceResult)
			section = models.TypeReport{
				Type:            profile.Type,
				Exact:           models.NewPairRefs(r.Exact),
				WithinTolerance: models.NewPairRefs(r.WithinTolerance),
				Mismatch:        models.NewPairRefs(r.Mismatch),
				OnlyA:           models.NewElementRefs(r.OnlyA),
				OnlyB:           models.NewElementRefs(r.OnlyB),
				Counts:          outcome,
				Levels:          r.Stats,
			}
			summary.Add(outcome)
			summary.MergeLevels(r.Stats)
		} else {
			r := compare.MatchWithImportance(recsA, recsB, snapA.Nodes, snapB.Nodes, ex, profile.Type, opts)
			outcome := compare.OutcomeFromResult(profile.Type, r.Result)
			section = models.TypeReport{
				Type:   profile.Type,
				Exact:  models.NewPairRefs(r.Matched),
				OnlyA:  models.NewElementRefs(r.OnlyA),
				OnlyB:  models.NewElementRefs(r.OnlyB),
				Counts: outcome,
				Levels: r.Stats,
			}
			summary.Add(outcome)
			summary.MergeLevels(r.Stats)
		}
		report.Types = append(report.Types, section)
	}

	report.Summary = *summary
	s.logger.Info("comparison executed",
		zap.String("run", report.RunID),
		zap.String("model_a", req.ModelA),
		zap.String("model_b", req.ModelB),
		zap.String("key_mode", report.KeyMode),
		zap.Int("differences", report.Summary.Differences))
	return report, nil
}

// Run executes a comparison and persists it: the counts row in the database
// and the full report in object storage.
func (s *Service) Run(ctx context.Context, req RunRequest) (*models.Report, error) {
	report, err := s.Execute(ctx, req)
	if err != nil {
		return nil, err
	}
	if err := s.persist(ctx, report); err != nil {
		return nil, err
	}
	return report, nil
}

func (s *Service) persist(ctx context.Context, report *models.Report) error {
	payload, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	reportKey := ReportKey(report.RunID)
	_, err = s.client.PutObject(ctx, s.bucket, reportKey,
		bytes.NewReader(payload), int64(len(payload)),
		minio.PutObjectOptions{ContentType: "application/json"})
	if err != nil {
		return fmt.Errorf("failed to store report: %w", err)
	}

	run := &models.ComparisonRun{
		ID:              report.RunID,
		ModelA:          report.ModelA.ID,
		ModelB:          report.ModelB.ID,
		KeyMode:         report.KeyMode,
		Precision:       report.Precision,
		Tolerance:       report.Tolerance,
		Exact:           report.Summary.Exact,
		WithinTolerance: report.Summary.WithinTolerance,
		Mismatch:        report.Summary.Mismatch,
		OnlyA:           report.Summary.OnlyA,
		OnlyB:           report.Summary.OnlyB,
		Dropped:         report.Summary.Dropped,
		Differences:     report.Summary.Differences,
		ReportKey:       reportKey,
		CreatedAt:       report.GeneratedAt,
	}
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return fmt.Errorf("failed to persist comparison run: %w", err)
	}
	return nil
}

// ReportKey returns the storage key for a run id.
func ReportKey(runID string) string {
	return ReportPrefix + runID + ".json"
}

// List returns all persisted runs, newest first.
func (s *Service) List(ctx context.Context) ([]models.ComparisonRun, error) {
	var runs []models.ComparisonRun
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to list comparison runs: %w", err)
	}
	return runs, nil
}

// Report loads the full stored report of one run. Not-found surfaces as
// gorm.ErrRecordNotFound.
func (s *Service) Report(ctx context.Context, runID string) (*models.Report, error) {
	var run models.ComparisonRun
	if err := s.db.WithContext(ctx).First(&run, "id = ?", runID).Error; err != nil {
		return nil, fmt.Errorf("failed to load comparison run %s: %w", runID, err)
	}

	obj, err := s.client.GetObject(ctx, s.bucket, run.ReportKey, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to fetch report %s: %w", run.ReportKey, err)
	}
	defer obj.Close()

	var report models.Report
	if err := json.NewDecoder(obj).Decode(&report); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", run.ReportKey, err)
	}
	return &report, nil
}

// PurgeRuns deletes every persisted run and its stored report. It returns
// the number of deleted run rows.
func (s *Service) PurgeRuns(ctx context.Context) (int64, error) {
	objects := s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    ReportPrefix,
		Recursive: true,
	})
	for rmErr := range s.client.RemoveObjects(ctx, s.bucket, objects, minio.RemoveObjectsOptions{}) {
		if rmErr.Err != nil {
			return 0, fmt.Errorf("failed to remove report %s: %w", rmErr.ObjectName, rmErr.Err)
		}
	}

	res := s.db.WithContext(ctx).Where("1 = 1").Delete(&models.ComparisonRun{})
	if res.Error != nil {
		return 0, fmt.Errorf("failed to delete comparison runs: %w", res.Error)
	}
	s.logger.Info("comparison runs purged", zap.Int64("deleted", res.RowsAffected))
	return res.RowsAffected, nil
}
