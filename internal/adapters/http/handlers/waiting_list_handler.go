package handlers

import (
	"vetcare-api/internal/core/services"
	"vetcare-api/internal/pkg/response"
	"vetcare-api/internal/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

const entryNotFound = "Waiting list entry not found"

// WaitingListHandler handles the caller's waiting list entries
type WaitingListHandler struct {
	waitService *services.WaitingListService
	validate    *validator.Validator
}

// NewWaitingListHandler creates a new waiting list handler
func NewWaitingListHandler(waitService *services.WaitingListService, validate *validator.Validator) *WaitingListHandler {
	return &WaitingListHandler{waitService: waitService, validate: validate}
}

// JoinWaitingListRequest represents a waiting list request.
// fechaDeseada defaults to now when empty or null.
type JoinWaitingListRequest struct {
	PetID       flexID  `json:"mascotaId" validate:"required" swaggertype:"integer"`
	Reason      *string `json:"motivo" validate:"omitempty,max=500"`
	DesiredDate *string `json:"fechaDeseada"`
}

// List lists the caller's entries
// @Summary List my waiting list entries
// @Tags WaitingList
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.WaitingListEntry
// @Router /waiting-list [get]
func (h *WaitingListHandler) List(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthenticated")
	}

	entries, err := h.waitService.List(c.UserContext(), userID)
	if err != nil {
		return writeError(c, err, entryNotFound)
	}
	return response.OK(c, entries)
}

// Create adds one of the caller's pets to the waiting list
// @Summary Join the waiting list
// @Tags WaitingList
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body JoinWaitingListRequest true "Entry data"
// @Success 201 {object} models.WaitingListEntry
// @Failure 400 {object} response.ErrorBody
// @Router /waiting-list [post]
func (h *WaitingListHandler) Create(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthenticated")
	}

	var req JoinWaitingListRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validate.Validate(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	input := &services.JoinWaitingListInput{
		PetID:  uint(req.PetID),
		Reason: req.Reason,
	}
	if req.DesiredDate != nil && *req.DesiredDate != "" {
		date, err := parseDate(*req.DesiredDate)
		if err != nil {
			return response.BadRequest(c, "fechaDeseada is invalid")
		}
		input.DesiredDate = &date
	}

	entry, err := h.waitService.Join(c.UserContext(), userID, input)
	if err != nil {
		return writeError(c, err, entryNotFound)
	}
	return response.Created(c, entry)
}

// Delete removes one of the caller's entries
// @Summary Leave the waiting list
// @Tags WaitingList
// @Produce json
// @Security BearerAuth
// @Param id path int true "Entry ID"
// @Success 200 {object} response.MessageBody
// @Failure 404 {object} response.ErrorBody
// @Router /waiting-list/{id} [delete]
func (h *WaitingListHandler) Delete(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthenticated")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return response.NotFound(c, entryNotFound)
	}

	if err := h.waitService.Leave(c.UserContext(), userID, id); err != nil {
		return writeError(c, err, entryNotFound)
	}
	return response.Message(c, "Removed from waiting list")
}
