package handlers

import (
	"vetcare-api/internal/core/services"
	"vetcare-api/internal/pkg/pagination"
	"vetcare-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// VetHandler serves the veterinarian views
type VetHandler struct {
	apptService *services.AppointmentService
}

// NewVetHandler creates a new vet handler
func NewVetHandler(apptService *services.AppointmentService) *VetHandler {
	return &VetHandler{apptService: apptService}
}

// Upcoming lists pending and confirmed appointments from now on
// @Summary Upcoming appointments
// @Description Paginated pending and confirmed appointments, soonest first (Vet/Admin)
// @Tags Vet
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} pagination.Page[models.Appointment]
// @Failure 403 {object} response.ErrorBody
// @Router /vet/appointments [get]
func (h *VetHandler) Upcoming(c *fiber.Ctx) error {
	p := pagination.FromQuery(c)

	appts, total, err := h.apptService.Upcoming(c.UserContext(), p.Offset, p.Limit)
	if err != nil {
		return err
	}
	return response.OK(c, pagination.NewPage(appts, p, total))
}
