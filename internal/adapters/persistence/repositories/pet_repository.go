package repositories

import (
	"context"

	"vetcare-api/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// petRepository implements PetRepository interface
type petRepository struct {
	db *gorm.DB
}

// NewPetRepository creates a new pet repository
func NewPetRepository(db *gorm.DB) PetRepository {
	return &petRepository{db: db}
}

// Create creates a new pet
func (r *petRepository) Create(ctx context.Context, pet *models.Pet) error {
	return r.db.WithContext(ctx).Create(pet).Error
}

// ListByOwner lists the owner's pets, newest first
func (r *petRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Pet, error) {
	pets := []models.Pet{}
	err := r.db.WithContext(ctx).
		Scopes(ofOwner(ownerID)).
		Order("created_at DESC, id DESC").
		Find(&pets).Error
	return pets, err
}

// GetOwned gets a pet by id if it belongs to ownerID
func (r *petRepository) GetOwned(ctx context.Context, id, ownerID uint) (*models.Pet, error) {
	var pet models.Pet
	err := r.db.WithContext(ctx).Scopes(ownedBy(id, ownerID)).First(&pet).Error
	if err != nil {
		return nil, err
	}
	return &pet, nil
}

// ExistsOwned checks that a live pet with id belongs to ownerID
func (r *petRepository) ExistsOwned(ctx context.Context, id, ownerID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Pet{}).Scopes(ownedBy(id, ownerID)).Count(&count).Error
	return count > 0, err
}

// UpdateOwned updates the given columns in one conditional statement and
// returns the fresh row
func (r *petRepository) UpdateOwned(ctx context.Context, id, ownerID uint, fields map[string]interface{}) (*models.Pet, error) {
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&models.Pet{}).Scopes(ownedBy(id, ownerID)).Updates(fields)
		if err := affected(res); err != nil {
			return nil, err
		}
	}
	return r.GetOwned(ctx, id, ownerID)
}

// DeleteOwned soft deletes a pet in one conditional statement
func (r *petRepository) DeleteOwned(ctx context.Context, id, ownerID uint) error {
	res := r.db.WithContext(ctx).Scopes(ownedBy(id, ownerID)).Delete(&models.Pet{})
	return affected(res)
}

// CountByOwner counts the owner's live pets
func (r *petRepository) CountByOwner(ctx context.Context, ownerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Pet{}).Scopes(ofOwner(ownerID)).Count(&count).Error
	return count, err
}

// Count counts all live pets
func (r *petRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Pet{}).Count(&count).Error
	return count, err
}
