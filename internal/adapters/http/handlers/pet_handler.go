package handlers

import (
	"vetcare-api/internal/core/services"
	"vetcare-api/internal/pkg/response"
	"vetcare-api/internal/pkg/validator"

	"github.com/gofiber/fiber/v2"
)

const petNotFound = "Pet not found"

// PetHandler handles the caller's pets
type PetHandler struct {
	petService *services.PetService
	validate   *validator.Validator
}

// NewPetHandler creates a new pet handler
func NewPetHandler(petService *services.PetService, validate *validator.Validator) *PetHandler {
	return &PetHandler{petService: petService, validate: validate}
}

// CreatePetRequest represents pet creation body
type CreatePetRequest struct {
	Name    string  `json:"nombre" validate:"required,max=100"`
	Species string  `json:"especie" validate:"required,max=50"`
	Breed   *string `json:"raza" validate:"omitempty,max=100"`
	Age     *int    `json:"edad" validate:"omitempty,gte=0"`
}

// UpdatePetRequest carries only the fields to change
type UpdatePetRequest struct {
	Name    *string `json:"nombre" validate:"omitempty,max=100"`
	Species *string `json:"especie" validate:"omitempty,max=50"`
	Breed   *string `json:"raza" validate:"omitempty,max=100"`
	Age     *int    `json:"edad" validate:"omitempty,gte=0"`
}

// List lists the caller's pets
// @Summary List my pets
// @Tags Pets
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Pet
// @Failure 401 {object} response.ErrorBody
// @Router /pets [get]
func (h *PetHandler) List(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthenticated")
	}

	pets, err := h.petService.List(c.UserContext(), userID)
	if err != nil {
		return writeError(c, err, petNotFound)
	}
	return response.OK(c, pets)
}

// Get returns one of the caller's pets
// @Summary Get a pet
// @Tags Pets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pet ID"
// @Success 200 {object} models.Pet
// @Failure 404 {object} response.ErrorBody
// @Router /pets/{id} [get]
func (h *PetHandler) Get(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthenticated")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return response.NotFound(c, petNotFound)
	}

	pet, err := h.petService.Get(c.UserContext(), userID, id)
	if err != nil {
		return writeError(c, err, petNotFound)
	}
	return response.OK(c, pet)
}

// Create registers a pet for the caller
// @Summary Create a pet
// @Tags Pets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body CreatePetRequest true "Pet data"
// @Success 201 {object} models.Pet
// @Failure 400 {object} response.ErrorBody
// @Router /pets [post]
func (h *PetHandler) Create(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthenticated")
	}

	var req CreatePetRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validate.Validate(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	pet, err := h.petService.Create(c.UserContext(), userID, &services.PetInput{
		Name:    req.Name,
		Species: req.Species,
		Breed:   req.Breed,
		Age:     req.Age,
	})
	if err != nil {
		return writeError(c, err, petNotFound)
	}
	return response.Created(c, pet)
}

// Update changes one of the caller's pets
// @Summary Update a pet
// @Tags Pets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pet ID"
// @Param body body UpdatePetRequest true "Fields to change"
// @Success 200 {object} models.Pet
// @Failure 400 {object} response.ErrorBody
// @Failure 404 {object} response.ErrorBody
// @Router /pets/{id} [put]
func (h *PetHandler) Update(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthenticated")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return response.NotFound(c, petNotFound)
	}

	var req UpdatePetRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	if err := h.validate.Validate(&req); err != nil {
		return response.BadRequest(c, err.Error())
	}

	pet, err := h.petService.Update(c.UserContext(), userID, id, &services.PetUpdateInput{
		Name:    req.Name,
		Species: req.Species,
		Breed:   req.Breed,
		Age:     req.Age,
	})
	if err != nil {
		return writeError(c, err, petNotFound)
	}
	return response.OK(c, pet)
}

// Delete removes one of the caller's pets
// @Summary Delete a pet
// @Tags Pets
// @Produce json
// @Security BearerAuth
// @Param id path int true "Pet ID"
// @Success 200 {object} response.MessageBody
// @Failure 404 {object} response.ErrorBody
// @Router /pets/{id} [delete]
func (h *PetHandler) Delete(c *fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return response.Unauthorized(c, "Unauthenticated")
	}
	id, err := parseID(c, "id")
	if err != nil {
		return response.NotFound(c, petNotFound)
	}

	if err := h.petService.Delete(c.UserContext(), userID, id); err != nil {
		return writeError(c, err, petNotFound)
	}
	return response.Message(c, "Pet deleted")
}
