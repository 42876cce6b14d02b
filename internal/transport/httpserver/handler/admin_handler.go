package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"vending-content-service/internal/app/service"
	"vending-content-service/internal/slug"
	"vending-content-service/internal/transport/httpserver/dto"
	"vending-content-service/internal/validator"
)

// AdminHandler handles operational HTTP requests.
type AdminHandler struct {
	service   *service.CatalogService
	registry  *slug.Registry
	validator *validator.Validator
	logger    *zap.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(svc *service.CatalogService, registry *slug.Registry, v *validator.Validator, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		service:   svc,
		registry:  registry,
		validator: v,
		logger:    logger,
	}
}

// Refresh handles POST /api/v1/admin/refresh
//
// Drops the cached provider client and clears list caches so the next
// request sees fresh CMS content.
func (h *AdminHandler) Refresh(c *fiber.Ctx) error {
	if err := h.service.Refresh(c.Context()); err != nil {
		h.logger.Error("refresh failed", zap.Error(err))

		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: "refresh failed",
			Code:  "INTERNAL_ERROR",
		})
	}

	return c.JSON(dto.NewRefreshResponse(time.Now()))
}

// RegisterSlugChange handles POST /api/v1/admin/slug-changes
func (h *AdminHandler) RegisterSlugChange(c *fiber.Ctx) error {
	var req dto.SlugChangeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: "invalid request body",
			Code:  "INVALID_BODY",
		})
	}

	if err := h.validator.Validate(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Code:    "VALIDATION_ERROR",
			Details: err,
		})
	}

	h.registry.RegisterSlugChange(req.URLSlug, req.ProviderSlug)
	h.logger.Info("slug change registered",
		zap.String("url_slug", req.URLSlug),
		zap.String("provider_slug", req.ProviderSlug),
	)

	return c.Status(fiber.StatusCreated).JSON(dto.SlugChangeResponse{
		URLSlug:      req.URLSlug,
		ProviderSlug: req.ProviderSlug,
	})
}

// ListSlugChanges handles GET /api/v1/admin/slug-changes
func (h *AdminHandler) ListSlugChanges(c *fiber.Ctx) error {
	mappings := h.registry.Mappings()

	return c.JSON(dto.SlugChangesResponse{
		Mappings: mappings,
		Count:    len(mappings),
	})
}
