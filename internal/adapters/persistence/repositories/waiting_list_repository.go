package repositories

import (
	"context"

	"vetcare-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// waitingListRepository implements WaitingListRepository interface
type waitingListRepository struct {
	db *gorm.DB
}

// NewWaitingListRepository creates a new waiting list repository
func NewWaitingListRepository(db *gorm.DB) WaitingListRepository {
	return &waitingListRepository{db: db}
}

// Create creates an entry and loads its pet
func (r *waitingListRepository) Create(ctx context.Context, entry *models.WaitingListEntry) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit("Pet").Create(entry).Error; err != nil {
		return err
	}
	return db.Scopes(withPet).First(entry, entry.ID).Error
}

// ListByOwner lists the owner's entries, latest desired date first
func (r *waitingListRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.WaitingListEntry, error) {
	entries := []models.WaitingListEntry{}
	err := r.db.WithContext(ctx).
		Scopes(ofOwner(ownerID), withPet).
		Order("date DESC, id DESC").
		Find(&entries).Error
	return entries, err
}

// DeleteOwned removes an entry in one conditional statement
func (r *waitingListRepository) DeleteOwned(ctx context.Context, id, ownerID uint) error {
	res := r.db.WithContext(ctx).Scopes(ownedBy(id, ownerID)).Delete(&models.WaitingListEntry{})
	return affected(res)
}

// List lists the clinic-wide waiting list, earliest desired date first
func (r *waitingListRepository) List(ctx context.Context, offset, limit int) ([]models.WaitingListEntry, int64, error) {
	entries := []models.WaitingListEntry{}
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.WaitingListEntry{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.db.WithContext(ctx).
		Scopes(withPet).
		Order("date ASC, id ASC").
		Offset(offset).
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, 0, err
	}
	return entries, total, nil
}

// CountByOwner counts the owner's entries
func (r *waitingListRepository) CountByOwner(ctx context.Context, ownerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.WaitingListEntry{}).Scopes(ofOwner(ownerID)).Count(&count).Error
	return count, err
}

// Count counts all entries
func (r *waitingListRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.WaitingListEntry{}).Count(&count).Error
	return count, err
}
