package health

import (
	"model-diff/core/logger"
	"model-diff/feature/health/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for health checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	// Force import for Swagger
	var _ = checks.SchemaReport{}
	return &Handler{service: service}
}

// RegisterRoutes registers the health routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/health")
	group.Get("/", h.HandleHealthCheck)
	group.Get("/storage", h.HandleStorageCheck)
	group.Get("/database", h.HandleDatabaseCheck)
}

// HandleHealthCheck runs every health check and reports the combined result.
// The HTTP status is part of the contract: 200 only when all checks pass, so
// load balancers can gate on this route directly.
// @Summary Run All Health Checks
// @Description Checks object storage and the database schema in one call.
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Combined Report"
// @Failure 503 {object} map[string]interface{} "Combined Report (degraded)"
// @Router /health [get]
func (h *Handler) HandleHealthCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	ctx := c.Context()
	report := make(map[string]interface{})
	healthy := true

	// Storage
	if failed, err := h.service.CheckStorage(ctx); err != nil {
		report["storage"] = map[string]interface{}{"status": "error", "error": err.Error()}
		healthy = false
	} else if len(failed) > 0 {
		report["storage"] = map[string]interface{}{"status": "error", "failed": failed}
		healthy = false
	} else {
		report["storage"] = map[string]interface{}{"status": "ok"}
	}

	// Database
	if schema, err := h.service.CheckDatabase(); err != nil {
		report["database"] = map[string]interface{}{"status": "error", "error": err.Error()}
		healthy = false
	} else {
		report["database"] = schema
		if !schema.Matched {
			healthy = false
		}
	}

	if !healthy {
		l.Warn("Health check reported degraded state")
		report["status"] = "degraded"
		return c.Status(fiber.StatusServiceUnavailable).JSON(report)
	}

	report["status"] = "ok"
	return c.JSON(report)
}

// HandleStorageCheck verifies the bucket and the object prefixes in use.
// @Summary Check Storage Health
// @Description Checks that the bucket exists and that the model and report prefixes answer list requests.
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]interface{} "Storage Report"
// @Failure 503 {object} map[string]interface{} "Storage Report (failing)"
// @Router /health/storage [get]
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	failed, err := h.service.CheckStorage(c.Context())
	if err != nil {
		l.Error("Storage health check failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "error",
			"error":  err.Error(),
		})
	}

	if len(failed) > 0 {
		l.Warn("Storage prefixes failing", zap.Strings("failed", failed))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "error",
			"failed": failed,
		})
	}

	return c.JSON(fiber.Map{"status": "ok"})
}

// HandleDatabaseCheck verifies the application tables against their models.
// @Summary Check Database Health
// @Description Checks that the model and comparison run tables exist with the expected columns.
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} checks.SchemaReport "Schema Report"
// @Failure 503 {object} checks.SchemaReport "Schema Report (failing)"
// @Router /health/database [get]
func (h *Handler) HandleDatabaseCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	schema, err := h.service.CheckDatabase()
	if err != nil {
		l.Error("Database health check failed", zap.Error(err))
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"status": "error",
			"error":  err.Error(),
		})
	}

	if !schema.Matched {
		l.Warn("Database schema incomplete")
		return c.Status(fiber.StatusServiceUnavailable).JSON(schema)
	}

	return c.JSON(schema)
}
