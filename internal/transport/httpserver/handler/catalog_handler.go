// Package handler provides HTTP handlers for the API.
package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"vending-content-service/internal/app/service"
	"vending-content-service/internal/domain"
	"vending-content-service/internal/transport/httpserver/dto"
	"vending-content-service/internal/validator"
)

// CatalogHandler handles content lookup HTTP requests.
type CatalogHandler struct {
	service   *service.CatalogService
	validator *validator.Validator
	logger    *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(svc *service.CatalogService, v *validator.Validator, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{
		service:   svc,
		validator: v,
		logger:    logger,
	}
}

// list is the shared flow for the collection endpoints.
func list[T any](h *CatalogHandler, c *fiber.Ctx, fetch func(context.Context, domain.ListFilters) ([]*T, error)) error {
	var req dto.ListRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid query parameters",
			Code:  "INVALID_PARAMS",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	items, err := fetch(c.Context(), req.ToListFilters())
	if err != nil {
		return providerFailure(h.logger, c, err)
	}

	return c.JSON(dto.NewListResponse(items))
}

// bySlug is the shared flow for the slug lookup endpoints. A nil entity with
// a nil error is a plain 404.
func bySlug[T any](h *CatalogHandler, c *fiber.Ctx, fetch func(context.Context, string) (*T, error)) error {
	raw := c.Params("slug")

	entity, err := fetch(c.Context(), raw)
	if err != nil {
		return providerFailure(h.logger, c, err)
	}

	if entity == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "content not found",
			Code:  "NOT_FOUND",
		})
	}

	return c.JSON(entity)
}

// byID is the shared flow for the id lookup endpoints.
func byID[T any](h *CatalogHandler, c *fiber.Ctx, fetch func(context.Context, string) (*T, error)) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "id is required",
			Code:  "MISSING_ID",
		})
	}

	entity, err := fetch(c.Context(), id)
	if err != nil {
		return providerFailure(h.logger, c, err)
	}

	if entity == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: "content not found",
			Code:  "NOT_FOUND",
		})
	}

	return c.JSON(entity)
}

// providerFailure maps upstream CMS failures to 503 and everything else to 500.
func providerFailure(logger *zap.Logger, c *fiber.Ctx, err error) error {
	var provErr *domain.ProviderError
	if errors.As(err, &provErr) {
		logger.Error("content provider unavailable",
			zap.String("operation", provErr.Operation),
			zap.Error(err),
		)

		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
			Error: "content provider unavailable",
			Code:  "PROVIDER_UNAVAILABLE",
		})
	}

	logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))

	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Error: "internal server error",
		Code:  "INTERNAL_ERROR",
	})
}

// ListProductTypes handles GET /api/v1/product-types
func (h *CatalogHandler) ListProductTypes(c *fiber.Ctx) error {
	return list(h, c, h.service.GetProductTypes)
}

// GetProductTypeBySlug handles GET /api/v1/product-types/:slug
func (h *CatalogHandler) GetProductTypeBySlug(c *fiber.Ctx) error {
	return bySlug(h, c, h.service.GetProductTypeBySlug)
}

// GetProductTypeByID handles GET /api/v1/product-types/id/:id
func (h *CatalogHandler) GetProductTypeByID(c *fiber.Ctx) error {
	return byID(h, c, h.service.GetProductTypeByID)
}

// ListBusinessGoals handles GET /api/v1/business-goals
func (h *CatalogHandler) ListBusinessGoals(c *fiber.Ctx) error {
	return list(h, c, h.service.GetBusinessGoals)
}

// GetBusinessGoalBySlug handles GET /api/v1/business-goals/:slug
func (h *CatalogHandler) GetBusinessGoalBySlug(c *fiber.Ctx) error {
	return bySlug(h, c, h.service.GetBusinessGoalBySlug)
}

// GetBusinessGoalByID handles GET /api/v1/business-goals/id/:id
func (h *CatalogHandler) GetBusinessGoalByID(c *fiber.Ctx) error {
	return byID(h, c, h.service.GetBusinessGoalByID)
}

// ListMachines handles GET /api/v1/machines
func (h *CatalogHandler) ListMachines(c *fiber.Ctx) error {
	return list(h, c, h.service.GetMachines)
}

// GetMachineBySlug handles GET /api/v1/machines/:slug
func (h *CatalogHandler) GetMachineBySlug(c *fiber.Ctx) error {
	return bySlug(h, c, h.service.GetMachineBySlug)
}

// GetMachineByID handles GET /api/v1/machines/id/:id
func (h *CatalogHandler) GetMachineByID(c *fiber.Ctx) error {
	return byID(h, c, h.service.GetMachineByID)
}

// ListTechnologies handles GET /api/v1/technologies
func (h *CatalogHandler) ListTechnologies(c *fiber.Ctx) error {
	return list(h, c, h.service.GetTechnologies)
}

// GetTechnologyBySlug handles GET /api/v1/technologies/:slug
func (h *CatalogHandler) GetTechnologyBySlug(c *fiber.Ctx) error {
	return bySlug(h, c, h.service.GetTechnologyBySlug)
}

// GetTechnologyByID handles GET /api/v1/technologies/id/:id
func (h *CatalogHandler) GetTechnologyByID(c *fiber.Ctx) error {
	return byID(h, c, h.service.GetTechnologyByID)
}

// ListCaseStudies handles GET /api/v1/case-studies
func (h *CatalogHandler) ListCaseStudies(c *fiber.Ctx) error {
	return list(h, c, h.service.GetCaseStudies)
}

// GetCaseStudyBySlug handles GET /api/v1/case-studies/:slug
func (h *CatalogHandler) GetCaseStudyBySlug(c *fiber.Ctx) error {
	return bySlug(h, c, h.service.GetCaseStudyBySlug)
}

// GetCaseStudyByID handles GET /api/v1/case-studies/id/:id
func (h *CatalogHandler) GetCaseStudyByID(c *fiber.Ctx) error {
	return byID(h, c, h.service.GetCaseStudyByID)
}

// WriteDisabled handles every mutating route. Content lives in the CMS; the
// write surface is permanently retired and answers 410 Gone.
func WriteDisabled(kind domain.Kind) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusGone).JSON(dto.WriteDisabledResponse{
			Error: "content writes are managed in the CMS",
			Code:  "WRITES_DISABLED",
			Kind:  string(kind),
		})
	}
}
