package repositories

import (
	"context"
	"time"

	"vetcare-api/internal/adapters/persistence/models"
)

// UserRepository defines user repository interface
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	FindByEmailOrName(ctx context.Context, email, name string) (*models.User, error)
	UpdatePassword(ctx context.Context, id uint, hash string) error
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	CountByRole(ctx context.Context) (map[string]int64, error)
	List(ctx context.Context, role string, offset, limit int) ([]*models.User, int64, error)
}

// PetRepository defines pet repository interface.
// Every *Owned method matches on both id and owner and reports
// gorm.ErrRecordNotFound when nothing matches.
type PetRepository interface {
	Create(ctx context.Context, pet *models.Pet) error
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Pet, error)
	GetOwned(ctx context.Context, id, ownerID uint) (*models.Pet, error)
	ExistsOwned(ctx context.Context, id, ownerID uint) (bool, error)
	UpdateOwned(ctx context.Context, id, ownerID uint, fields map[string]interface{}) (*models.Pet, error)
	DeleteOwned(ctx context.Context, id, ownerID uint) error
	CountByOwner(ctx context.Context, ownerID uint) (int64, error)
	Count(ctx context.Context) (int64, error)
}

// AppointmentFilter narrows clinic-wide appointment listings
type AppointmentFilter struct {
	Statuses []string
	From     *time.Time
	// Ascending orders by date oldest first; newest first otherwise
	Ascending bool
}

// AppointmentRepository defines appointment repository interface
type AppointmentRepository interface {
	Create(ctx context.Context, appt *models.Appointment) error
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Appointment, error)
	ListByOwnerAndPet(ctx context.Context, ownerID, petID uint) ([]models.Appointment, error)
	GetOwned(ctx context.Context, id, ownerID uint) (*models.Appointment, error)
	UpdateOwned(ctx context.Context, id, ownerID uint, fields map[string]interface{}) (*models.Appointment, error)
	GetByID(ctx context.Context, id uint) (*models.Appointment, error)
	TransitionStatus(ctx context.Context, id uint, from, to string) (bool, error)
	List(ctx context.Context, filter AppointmentFilter, offset, limit int) ([]models.Appointment, int64, error)
	CountByStatus(ctx context.Context, ownerID *uint) (map[string]int64, error)
	CountUpcoming(ctx context.Context, ownerID *uint, from time.Time) (int64, error)
	CountBetween(ctx context.Context, from, to time.Time) (int64, error)
}

// WaitingListRepository defines waiting list repository interface
type WaitingListRepository interface {
	Create(ctx context.Context, entry *models.WaitingListEntry) error
	ListByOwner(ctx context.Context, ownerID uint) ([]models.WaitingListEntry, error)
	DeleteOwned(ctx context.Context, id, ownerID uint) error
	List(ctx context.Context, offset, limit int) ([]models.WaitingListEntry, int64, error)
	CountByOwner(ctx context.Context, ownerID uint) (int64, error)
	Count(ctx context.Context) (int64, error)
}
