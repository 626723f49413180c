package handlers

import (
	"context"

	"vetcare-api/internal/adapters/persistence/models"
	"vetcare-api/internal/core/services"
	"vetcare-api/internal/pkg/response"
	"vetcare-api/internal/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

const appointmentNotFound = "Appointment not found"

// AppointmentHandler handles the caller's appointments
type AppointmentHandler struct {
	apptService *services.AppointmentService
	validate    *validator.Validator
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(apptService *services.AppointmentService, validate *validator.Validator) *AppointmentHandler {
	return &AppointmentHandler{apptService: apptService, validate: validate}
}

// CreateAppointmentRequest represents appointment booking body.
// fecha accepts RFC 3339 or an HTML datetime-local value.
type CreateAppointmentRequest struct {
	PetID  flexID `json:"mascotaId" validate:"required" swaggertype:"integer"`
	Date   string `json:"fecha" validate:"required"`
	Reason string `json:"motivo" validate:"max=500"`
}

// UpdateAppointmentRequest carries only the fields to change
type UpdateAppointmentRequest struct {
	Date   *string `json:"fecha"`
	Reason *string `json:"motivo" validate:"omitempty,max=500"`
}

// List lists the caller's appointments
// @Summary List my appointments
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Appointment
// @Router /appointments [get]
func (h *AppointmentHandler) List(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthenticated")
	}

	appts, err := h.apptService.List(c.UserContext(), userID)
	if err != nil {
		return writeError(c, err, appointmentNotFound)
	}
	return response.OK(c, appts)
}

// ListForPet lists the caller's appointments for one pet
// @Summary List appointments of a pet
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pet ID"
// @Success 200 {array} models.Appointment
// @Router /appointments/pet/{id} [get]
func (h *AppointmentHandler) ListForPet(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthenticated")
	}
	petID, err := parseID(c, "id")
	if err != nil {
		return response.BadRequest(c, "Invalid pet id")
	}

	appts, err := h.apptService.ListForPet(c.UserContext(), userID, petID)
	if err != nil {
		return writeError(c, err, appointmentNotFound)
	}
	return response.OK(c, appts)
}

// Create books an appointment
// @Summary Book an appointment
// @Tags Appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreateAppointmentRequest true "Appointment data"
// @Success 201 {object} models.Appointment
// @Failure 400 {object} response.ErrorBody
// @Router /appointments [post]
func (h *AppointmentHandler) Create(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthenticated")
	}

	var req CreateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validate.Validate(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	date, err := parseDate(req.Date)
	if err != nil {
		return response.BadRequest(c, "fecha is invalid")
	}

	appt, err := h.apptService.Create(c.UserContext(), userID, &services.CreateAppointmentInput{
		PetID:  uint(req.PetID),
		Date:   date,
		Reason: req.Reason,
	})
	if err != nil {
		return writeError(c, err, appointmentNotFound)
	}
	return response.Created(c, appt)
}

// Update reschedules or rewords an appointment
// @Summary Update an appointment
// @Tags Appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Param body body UpdateAppointmentRequest true "Fields to change"
// @Success 200 {object} models.Appointment
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /appointments/{id} [patch]
func (h *AppointmentHandler) Update(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthenticated")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return response.NotFound(c, appointmentNotFound)
	}

	var req UpdateAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validate.Validate(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	input := &services.UpdateAppointmentInput{Reason: req.Reason}
	if req.Date != nil {
		date, err := parseDate(*req.Date)
		if err != nil {
			return response.BadRequest(c, "fecha is invalid")
		}
		input.Date = &date
	}

	appt, err := h.apptService.Update(c.UserContext(), userID, id, input)
	if err != nil {
		return writeError(c, err, appointmentNotFound)
	}
	return response.OK(c, appt)
}

// Cancel cancels an appointment
// @Summary Cancel an appointment
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Success 200 {object} models.Appointment
// @Failure 404 {object} response.ErrorBody
// @Router /appointments/{id}/cancel [patch]
func (h *AppointmentHandler) Cancel(c *fiber.Ctx) error {
	return h.transition(c, h.apptService.Cancel)
}

// Complete marks an appointment as completed
// @Summary Complete an appointment
// @Tags Appointments
// @Produce json
// @Security BearerAuth
// @Param id path int true "Appointment ID"
// @Success 200 {object} models.Appointment
// @Failure 404 {object} response.ErrorBody
// @Router /appointments/{id}/complete [patch]
func (h *AppointmentHandler) Complete(c *fiber.Ctx) error {
	return h.transition(c, h.apptService.Complete)
}

func (h *AppointmentHandler) transition(c *fiber.Ctx, apply func(ctx context.Context, ownerID, id uint) (*models.Appointment, error)) error {
	userID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthenticated")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return response.NotFound(c, appointmentNotFound)
	}

	appt, err := apply(c.UserContext(), userID, id)
	if err != nil {
		return writeError(c, err, appointmentNotFound)
	}
	return response.OK(c, appt)
}
