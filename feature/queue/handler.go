package queue

import (
	"errors"

	"queue-manager/core/logger"
	"queue-manager/core/reconcile"
	"queue-manager/core/sqs"
	"queue-manager/core/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for queue reconciliation.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the queue routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/queues")
	group.Post("/", h.HandleApply)
	group.Get("/:name", h.HandleObserve)
	group.Get("/:name/history", h.HandleHistory)
	group.Delete("/:name", h.HandleDelete)
}

// HandleApply reconciles a queue towards the desired spec in the request body.
// The dry_run query parameter suppresses all mutations.
func (h *Handler) HandleApply(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	var spec reconcile.DesiredSpec
	if err := c.BodyParser(&spec); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid spec document: " + err.Error(),
		})
	}

	dryRun := c.QueryBool("dry_run")

	result, err := h.service.Apply(c.Context(), &spec, dryRun)
	if err != nil {
		return h.renderError(c, l, "Apply failed", err)
	}

	return c.JSON(result)
}

// HandleObserve returns the current remote attributes of a queue.
func (h *Handler) HandleObserve(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	spec := specFromParams(c)

	observed, err := h.service.Observe(c.Context(), spec)
	if errors.Is(err, sqs.ErrQueueNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "queue not found",
		})
	}
	if err != nil {
		return h.renderError(c, l, "Observe failed", err)
	}

	return c.JSON(fiber.Map{
		"name":       spec.ResolvedName(),
		"type":       spec.EffectiveType(),
		"attributes": observed,
	})
}

// HandleHistory returns recent reconciliation runs for a queue.
func (h *Handler) HandleHistory(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	spec := specFromParams(c)
	limit := utils.ToInt(c.Query("limit"))

	runs, err := h.service.History(c.Context(), spec.ResolvedName(), limit)
	if err != nil {
		return h.renderError(c, l, "History lookup failed", err)
	}

	return c.JSON(fiber.Map{
		"queue": spec.ResolvedName(),
		"runs":  runs,
	})
}

// HandleDelete deletes a queue. The dry_run query parameter reports without
// deleting.
func (h *Handler) HandleDelete(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	spec := specFromParams(c)
	dryRun := c.QueryBool("dry_run")

	result, err := h.service.Delete(c.Context(), spec, dryRun)
	if err != nil {
		return h.renderError(c, l, "Delete failed", err)
	}

	return c.JSON(result)
}

// specFromParams builds a minimal spec from the path name and type query
// parameter, for the read and delete endpoints that take no body.
func specFromParams(c *fiber.Ctx) *reconcile.DesiredSpec {
	return &reconcile.DesiredSpec{
		Name: c.Params("name"),
		Type: reconcile.QueueType(c.Query("type", string(reconcile.QueueTypeStandard))),
	}
}

// renderError maps service errors onto HTTP statuses.
func (h *Handler) renderError(c *fiber.Ctx, l *zap.Logger, msg string, err error) error {
	var cfgErr *reconcile.ConfigurationError
	if errors.As(err, &cfgErr) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": cfgErr.Error(),
		})
	}

	l.Error(msg, zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error": err.Error(),
	})
}
