package services

import (
	"context"
	"fmt"
	"time"

	"vetcare-api/internal/adapters/persistence/models"
	"vetcare-api/internal/adapters/persistence/repositories"
	"vetcare-api/internal/core/domain"

	"github.com/rs/zerolog"
)

// WaitingListService manages waiting list entries for clients without a slot
type WaitingListService struct {
	waitRepo repositories.WaitingListRepository
	petRepo  repositories.PetRepository
	log      zerolog.Logger
	now      func() time.Time
}

// NewWaitingListService creates a new waiting list service
func NewWaitingListService(
	waitRepo repositories.WaitingListRepository,
	petRepo repositories.PetRepository,
	log zerolog.Logger,
) *WaitingListService {
	return &WaitingListService{
		waitRepo: waitRepo,
		petRepo:  petRepo,
		log:      log,
		now:      time.Now,
	}
}

// JoinWaitingListInput represents a new waiting list entry.
// DesiredDate defaults to now.
type JoinWaitingListInput struct {
	PetID       uint
	Reason      *string
	DesiredDate *time.Time
}

// List lists the owner's entries
func (s *WaitingListService) List(ctx context.Context, ownerID uint) ([]models.WaitingListEntry, error) {
	entries, err := s.waitRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list waiting list: %w", err)
	}
	return entries, nil
}

// Join adds one of the owner's pets to the waiting list
func (s *WaitingListService) Join(ctx context.Context, ownerID uint, input *JoinWaitingListInput) (*models.WaitingListEntry, error) {
	if input.PetID == 0 {
		return nil, domain.NewValidationError("mascotaId is required")
	}

	owned, err := s.petRepo.ExistsOwned(ctx, input.PetID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("check pet: %w", err)
	}
	if !owned {
		return nil, domain.ErrPetNotOwned
	}

	date := s.now()
	if input.DesiredDate != nil && !input.DesiredDate.IsZero() {
		date = *input.DesiredDate
	}

	entry := &models.WaitingListEntry{
		ClientID: ownerID,
		PetID:    input.PetID,
		Reason:   trimmedOrNil(input.Reason),
		Date:     date.UTC(),
	}
	if err := s.waitRepo.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("create waiting list entry: %w", err)
	}

	s.log.Info().Uint("user_id", ownerID).Uint("entry_id", entry.ID).Msg("joined waiting list")
	return entry, nil
}

// Leave removes one of the owner's entries
func (s *WaitingListService) Leave(ctx context.Context, ownerID, id uint) error {
	if err := s.waitRepo.DeleteOwned(ctx, id, ownerID); err != nil {
		return notFoundOr(err, "delete waiting list entry")
	}
	return nil
}

// ListAll lists the clinic-wide waiting list for reception staff
func (s *WaitingListService) ListAll(ctx context.Context, offset, limit int) ([]models.WaitingListEntry, int64, error) {
	entries, total, err := s.waitRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list waiting list: %w", err)
	}
	return entries, total, nil
}
