package drift

import (
	"errors"

	"queue-manager/core/logger"
	"queue-manager/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for drift checks and spec documents.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the drift routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/drift")
	group.Get("/", h.HandleCheck)
	group.Get("/specs", h.HandleListSpecs)
	group.Get("/specs/:name", h.HandleGetSpec)
	group.Put("/specs/:name", h.HandleSaveSpec)
	group.Delete("/specs/:name", h.HandleDeleteSpec)
}

// HandleCheck runs the fleet drift check.
func (h *Handler) HandleCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Running fleet drift check")

	report, err := h.service.Check(c.Context())
	if err != nil {
		l.Error("Drift check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(report)
}

// HandleListSpecs lists the stored spec names.
func (h *Handler) HandleListSpecs(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	names, err := h.service.Specs().List(c.Context())
	if err != nil {
		l.Error("Spec listing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{"specs": names})
}

// HandleGetSpec returns one stored spec document.
func (h *Handler) HandleGetSpec(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	spec, err := h.service.Specs().Get(c.Context(), c.Params("name"))
	if err != nil {
		l.Error("Spec fetch failed", zap.Error(err))
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(spec)
}

// HandleSaveSpec creates or replaces a stored spec document. The document
// name comes from the path; a body without a name inherits it.
func (h *Handler) HandleSaveSpec(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var spec reconcile.DesiredSpec
	if err := c.BodyParser(&spec); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid spec document: " + err.Error(),
		})
	}
	if spec.Name == "" {
		spec.Name = c.Params("name")
	}
	if spec.Name != c.Params("name") {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "spec name does not match path",
		})
	}

	if err := h.service.Specs().Save(c.Context(), &spec); err != nil {
		var cfgErr *reconcile.ConfigurationError
		if errors.As(err, &cfgErr) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": cfgErr.Error(),
			})
		}
		l.Error("Spec save failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	l.Info("Spec stored", zap.String("spec", spec.Name))
	return c.JSON(spec)
}

// HandleDeleteSpec removes a stored spec document.
func (h *Handler) HandleDeleteSpec(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	name := c.Params("name")
	if err := h.service.Specs().Delete(c.Context(), name); err != nil {
		l.Error("Spec delete failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	l.Info("Spec deleted", zap.String("spec", name))
	return c.JSON(fiber.Map{"deleted": name})
}
