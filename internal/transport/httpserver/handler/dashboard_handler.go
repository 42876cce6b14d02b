package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"vending-content-service/internal/app/service"
	"vending-content-service/internal/domain"
)

// DashboardHandler handles dashboard-related HTTP requests.
type DashboardHandler struct {
	catalogService *service.CatalogService
	logger         *zap.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(svc *service.CatalogService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{
		catalogService: svc,
		logger:         logger,
	}
}

// Render handles GET /dashboard
// Renders the dashboard HTML page using Fiber's template engine. Counts are
// best-effort; a provider outage renders zeros rather than an error page.
func (h *DashboardHandler) Render(c *fiber.Ctx) error {
	ctx := c.Context()
	filters := domain.ListFilters{}

	machines, _ := h.catalogService.GetMachines(ctx, filters)
	productTypes, _ := h.catalogService.GetProductTypes(ctx, filters)
	goals, _ := h.catalogService.GetBusinessGoals(ctx, filters)
	technologies, _ := h.catalogService.GetTechnologies(ctx, filters)
	caseStudies, _ := h.catalogService.GetCaseStudies(ctx, filters)

	return c.Render("pages/dashboard", fiber.Map{
		"Title":             "Vending Content Dashboard",
		"MachineCount":      len(machines),
		"ProductTypeCount":  len(productTypes),
		"BusinessGoalCount": len(goals),
		"TechnologyCount":   len(technologies),
		"CaseStudyCount":    len(caseStudies),
	}, "layouts/base")
}
