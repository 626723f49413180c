package handlers

import (
	"vetcare-api/internal/adapters/http/middleware"
	"vetcare-api/internal/core/services"
	"vetcare-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// DashboardHandler handles dashboard endpoints
type DashboardHandler struct {
	dashboardService *services.DashboardService
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
	}
}

// GetDashboard returns the dashboard for the caller's role
// @Summary Role dashboard
// @Description Client, reception, vet or admin summary depending on the token's role
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.ClientDashboard
// @Failure 401 {object} response.ErrorBody
// @Router /dashboard [get]
func (h *DashboardHandler) GetDashboard(c *fiber.Ctx) error {
	id, ok := middleware.CurrentIdentity(c)
	if !ok {
		return response.Unauthorized(c, "Unauthenticated")
	}

	data, err := h.dashboardService.ForIdentity(c.UserContext(), id)
	if err != nil {
		return writeError(c, err, "Dashboard not found")
	}
	return response.OK(c, data)
}

// GetAdminDashboard returns admin dashboard data
// @Summary Admin Dashboard
// @Description Clinic-wide user, pet and appointment counters (Admin only)
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} services.AdminDashboard
// @Failure 401 {object} response.ErrorBody
// @Failure 403 {object} response.ErrorBody
// @Router /dashboard/admin [get]
func (h *DashboardHandler) GetAdminDashboard(c *fiber.Ctx) error {
	data, err := h.dashboardService.GetAdminDashboard(c.UserContext())
	if err != nil {
		return err
	}
	return response.OK(c, data)
}
