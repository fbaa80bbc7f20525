package comparison

import (
	"errors"

	"model-diff/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler handles HTTP requests for comparisons.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the comparison routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/comparisons")
	group.Post("/", h.HandleRun)
	group.Get("/", h.HandleList)
	group.Get("/:id", h.HandleGetReport)
	group.Delete("/", h.HandlePurge)
}

// HandleRun executes and persists a comparison.
// @Summary Run Comparison
// @Description Compare two stored models and persist the run.
// @Tags comparisons
// @Accept json
// @Produce json
// @Param request body RunRequest true "Comparison request"
// @Success 201 {object} models.Report "Comparison Report"
// @Failure 400 {object} map[string]string "Invalid Request"
// @Failure 404 {object} map[string]string "Model Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /comparisons [post]
func (h *Handler) HandleRun(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var req RunRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "malformed request body",
		})
	}

	report, err := h.service.Run(c.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrBadRequest):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		case errors.Is(err, gorm.ErrRecordNotFound):
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		default:
			l.Error("Comparison run failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(report)
}

// HandleList lists persisted comparison runs.
// @Summary List Comparisons
// @Description List persisted comparison runs, newest first.
// @Tags comparisons
// @Produce json
// @Success 200 {array} models.ComparisonRun "Comparison Runs"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /comparisons [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	runs, err := h.service.List(c.Context())
	if err != nil {
		l.Error("Comparison list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(runs)
}

// HandleGetReport returns the full stored report of one run.
// @Summary Get Comparison Report
// @Description Get the full stored report for a comparison run.
// @Tags comparisons
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} models.Report "Comparison Report"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /comparisons/{id} [get]
func (h *Handler) HandleGetReport(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.Report(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "comparison run not found",
			})
		}
		l.Error("Report fetch failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}

// HandlePurge deletes all persisted runs and their stored reports.
// @Summary Purge Comparisons
// @Description Delete all persisted comparison runs and stored reports.
// @Tags comparisons
// @Produce json
// @Success 200 {object} map[string]int64 "Deleted Count"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /comparisons [delete]
func (h *Handler) HandlePurge(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	deleted, err := h.service.PurgeRuns(c.Context())
	if err != nil {
		l.Error("Comparison purge failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"deleted": deleted})
}
