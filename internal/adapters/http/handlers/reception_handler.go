package handlers

import (
	"vetcare-api/internal/core/services"
	"vetcare-api/internal/pkg/pagination"
	"vetcare-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// ReceptionHandler serves the front desk views of the clinic
type ReceptionHandler struct {
	apptService *services.AppointmentService
	waitService *services.WaitingListService
}

// NewReceptionHandler creates a new reception handler
func NewReceptionHandler(apptService *services.AppointmentService, waitService *services.WaitingListService) *ReceptionHandler {
	return &ReceptionHandler{apptService: apptService, waitService: waitService}
}

// Agenda lists every appointment in the clinic
// @Summary Clinic agenda
// @Description Paginated appointments of every client, newest date first (Reception/Admin)
// @Tags Reception
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Param estado query string false "PENDIENTE, CONFIRMADA, CANCELADA or COMPLETADA"
// @Success 200 {object} pagination.Page[models.Appointment]
// @Failure 400 {object} response.ErrorBody
// @Failure 403 {object} response.ErrorBody
// @Router /reception/appointments [get]
func (h *ReceptionHandler) Agenda(c *fiber.Ctx) error {
	p := pagination.FromQuery(c)

	appts, total, err := h.apptService.Agenda(c.UserContext(), c.Query("estado"), p.Offset, p.Limit)
	if err != nil {
		return writeError(c, err, appointmentNotFound)
	}
	return response.OK(c, pagination.NewPage(appts, p, total))
}

// Confirm confirms a pending appointment
// @Summary Confirm an appointment
// @Description Moves a PENDIENTE appointment to CONFIRMADA (Reception/Admin)
// @Tags Reception
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Success 200 {object} models.Appointment
// @Failure 404 {object} response.ErrorBody
// @Failure 409 {object} response.ErrorBody
// @Router /reception/appointments/{id}/confirm [patch]
func (h *ReceptionHandler) Confirm(c *fiber.Ctx) error {
	id, err := parseID(c, "id")
	if err != nil {
		return response.NotFound(c, appointmentNotFound)
	}

	appt, err := h.apptService.Confirm(c.UserContext(), id)
	if err != nil {
		return writeError(c, err, appointmentNotFound)
	}
	return response.OK(c, appt)
}

// WaitingList lists the clinic-wide waiting list
// @Summary Clinic waiting list
// @Description Paginated waiting list of every client, earliest desired date first (Reception/Admin)
// @Tags Reception
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(20)
// @Success 200 {object} pagination.Page[models.WaitingListEntry]
// @Failure 403 {object} response.ErrorBody
// @Router /reception/waiting-list [get]
func (h *ReceptionHandler) WaitingList(c *fiber.Ctx) error {
	p := pagination.FromQuery(c)

	entries, total, err := h.waitService.ListAll(c.UserContext(), p.Offset, p.Limit)
	if err != nil {
		return err
	}
	return response.OK(c, pagination.NewPage(entries, p, total))
}
