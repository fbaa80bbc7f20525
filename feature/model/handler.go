package model

import (
	"errors"

	"model-diff/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Handler handles HTTP requests for model documents.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the model routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/models")
	group.Post("/", h.HandleUpload)
	group.Get("/", h.HandleList)
	group.Get("/:id", h.HandleGet)
	group.Delete("/:id", h.HandleDelete)
}

// HandleUpload stores a new model document.
// @Summary Upload Model
// @Description Store a model document (JSON body) and register its metadata.
// @Tags models
// @Accept json
// @Produce json
// @Param name query string false "Display name (defaults to the document name)"
// @Param document body models.Document true "Model document"
// @Success 201 {object} models.ModelEntry "Stored Model"
// @Failure 400 {object} map[string]string "Invalid Document"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /models [post]
func (h *Handler) HandleUpload(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	entry, err := h.service.Upload(c.Context(), c.Query("name"), c.Body())
	if err != nil {
		if errors.Is(err, ErrInvalidDocument) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		l.Error("Model upload failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(entry)
}

// HandleList lists all stored models.
// @Summary List Models
// @Description List stored model entries, newest first.
// @Tags models
// @Produce json
// @Success 200 {array} models.ModelEntry "Stored Models"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /models [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	entries, err := h.service.List(c.Context())
	if err != nil {
		l.Error("Model list failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(entries)
}

// HandleGet returns one stored model entry.
// @Summary Get Model
// @Description Get one stored model entry by id.
// @Tags models
// @Produce json
// @Param id path string true "Model ID"
// @Success 200 {object} models.ModelEntry "Stored Model"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /models/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	entry, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "model not found",
			})
		}
		l.Error("Model fetch failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(entry)
}

// HandleDelete removes a stored model.
// @Summary Delete Model
// @Description Delete a stored model document and its metadata.
// @Tags models
// @Produce json
// @Param id path string true "Model ID"
// @Success 204 "Deleted"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /models/{id} [delete]
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "model not found",
			})
		}
		l.Error("Model delete failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.SendStatus(fiber.StatusNoContent)
}
