package repositories

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ownedBy restricts a query to one row belonging to ownerID
func ownedBy(id, ownerID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ? AND client_id = ?", id, ownerID)
	}
}

// ofOwner restricts a query to rows belonging to ownerID
func ofOwner(ownerID uint) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("client_id = ?", ownerID)
	}
}

// withPet preloads the pet, including soft-deleted ones so history keeps
// its context
func withPet(db *gorm.DB) *gorm.DB {
	return db.Preload("Pet", func(tx *gorm.DB) *gorm.DB {
		return tx.Unscoped()
	})
}

// affected turns a zero-row write into gorm.ErrRecordNotFound
func affected(res *gorm.DB) error {
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// isDuplicateKey reports unique constraint violations. Drivers without an
// error translator only expose them through the message text.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint failed") || strings.Contains(msg, "duplicate entry")
}
