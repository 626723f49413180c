package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vetcare-api/internal/adapters/persistence/models"
	"vetcare-api/internal/adapters/persistence/repositories"
	"vetcare-api/internal/core/domain"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// PetService manages a client's pets. Every call is scoped to ownerID.
type PetService struct {
	petRepo repositories.PetRepository
	log     zerolog.Logger
}

// NewPetService creates a new pet service
func NewPetService(petRepo repositories.PetRepository, log zerolog.Logger) *PetService {
	return &PetService{petRepo: petRepo, log: log}
}

// PetInput represents pet creation input
type PetInput struct {
	Name    string
	Species string
	Breed   *string
	Age     *int
}

// PetUpdateInput carries only the fields to change
type PetUpdateInput struct {
	Name    *string
	Species *string
	Breed   *string
	Age     *int
}

// List lists the owner's pets, newest first
func (s *PetService) List(ctx context.Context, ownerID uint) ([]models.Pet, error) {
	pets, err := s.petRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list pets: %w", err)
	}
	return pets, nil
}

// Get returns one of the owner's pets
func (s *PetService) Get(ctx context.Context, ownerID, id uint) (*models.Pet, error) {
	pet, err := s.petRepo.GetOwned(ctx, id, ownerID)
	if err != nil {
		return nil, notFoundOr(err, "get pet")
	}
	return pet, nil
}

// Create registers a pet for the owner
func (s *PetService) Create(ctx context.Context, ownerID uint, input *PetInput) (*models.Pet, error) {
	name := strings.TrimSpace(input.Name)
	species := strings.TrimSpace(input.Species)
	if name == "" || species == "" {
		return nil, domain.NewValidationError("nombre and especie are required")
	}
	if input.Age != nil && *input.Age < 0 {
		return nil, domain.NewValidationError("edad must be at least 0")
	}

	pet := &models.Pet{
		Name:     name,
		Species:  species,
		Breed:    trimmedOrNil(input.Breed),
		Age:      input.Age,
		ClientID: ownerID,
	}
	if err := s.petRepo.Create(ctx, pet); err != nil {
		return nil, fmt.Errorf("create pet: %w", err)
	}

	s.log.Info().Uint("user_id", ownerID).Uint("pet_id", pet.ID).Msg("pet created")
	return pet, nil
}

// Update changes the provided fields of one of the owner's pets
func (s *PetService) Update(ctx context.Context, ownerID, id uint, input *PetUpdateInput) (*models.Pet, error) {
	fields := map[string]interface{}{}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, domain.NewValidationError("nombre cannot be empty")
		}
		fields["name"] = name
	}
	if input.Species != nil {
		species := strings.TrimSpace(*input.Species)
		if species == "" {
			return nil, domain.NewValidationError("especie cannot be empty")
		}
		fields["species"] = species
	}
	if input.Breed != nil {
		fields["breed"] = trimmedOrNil(input.Breed)
	}
	if input.Age != nil {
		if *input.Age < 0 {
			return nil, domain.NewValidationError("edad must be at least 0")
		}
		fields["age"] = *input.Age
	}

	pet, err := s.petRepo.UpdateOwned(ctx, id, ownerID, fields)
	if err != nil {
		return nil, notFoundOr(err, "update pet")
	}
	return pet, nil
}

// Delete removes one of the owner's pets
func (s *PetService) Delete(ctx context.Context, ownerID, id uint) error {
	if err := s.petRepo.DeleteOwned(ctx, id, ownerID); err != nil {
		return notFoundOr(err, "delete pet")
	}

	s.log.Info().Uint("user_id", ownerID).Uint("pet_id", id).Msg("pet deleted")
	return nil
}

// notFoundOr maps a record miss to domain.ErrNotFound and wraps anything else
func notFoundOr(err error, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%s: %w", op, err)
}

func trimmedOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	if v == "" {
		return nil
	}
	return &v
}
