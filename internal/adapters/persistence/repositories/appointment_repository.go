package repositories

import (
	"context"
	"time"

	"vetcare-api/internal/adapters/persistence/models"
	"vetcare-api/internal/core/domain"

	"gorm.io/gorm"
)

// appointmentRepository implements AppointmentRepository interface
type appointmentRepository struct {
	db *gorm.DB
}

// NewAppointmentRepository creates a new appointment repository
func NewAppointmentRepository(db *gorm.DB) AppointmentRepository {
	return &appointmentRepository{db: db}
}

// Create creates an appointment and loads its pet
func (r *appointmentRepository) Create(ctx context.Context, appt *models.Appointment) error {
	db := r.db.WithContext(ctx)
	if err := db.Omit("Pet").Create(appt).Error; err != nil {
		return err
	}
	return db.Scopes(withPet).First(appt, appt.ID).Error
}

// ListByOwner lists the owner's appointments, most recent date first
func (r *appointmentRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Appointment, error) {
	appts := []models.Appointment{}
	err := r.db.WithContext(ctx).
		Scopes(ofOwner(ownerID), withPet).
		Order("date DESC, id DESC").
		Find(&appts).Error
	return appts, err
}

// ListByOwnerAndPet lists the owner's appointments for one pet
func (r *appointmentRepository) ListByOwnerAndPet(ctx context.Context, ownerID, petID uint) ([]models.Appointment, error) {
	appts := []models.Appointment{}
	err := r.db.WithContext(ctx).
		Scopes(ofOwner(ownerID), withPet).
		Where("pet_id = ?", petID).
		Order("date DESC, id DESC").
		Find(&appts).Error
	return appts, err
}

// GetOwned gets an appointment by id if it belongs to ownerID
func (r *appointmentRepository) GetOwned(ctx context.Context, id, ownerID uint) (*models.Appointment, error) {
	var appt models.Appointment
	err := r.db.WithContext(ctx).Scopes(ownedBy(id, ownerID), withPet).First(&appt).Error
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

// UpdateOwned updates the given columns in one conditional statement and
// returns the fresh row
func (r *appointmentRepository) UpdateOwned(ctx context.Context, id, ownerID uint, fields map[string]interface{}) (*models.Appointment, error) {
	if len(fields) > 0 {
		res := r.db.WithContext(ctx).Model(&models.Appointment{}).Scopes(ownedBy(id, ownerID)).Updates(fields)
		if err := affected(res); err != nil {
			return nil, err
		}
	}
	return r.GetOwned(ctx, id, ownerID)
}

// GetByID gets any appointment by id
func (r *appointmentRepository) GetByID(ctx context.Context, id uint) (*models.Appointment, error) {
	var appt models.Appointment
	err := r.db.WithContext(ctx).Scopes(withPet).Where("id = ?", id).First(&appt).Error
	if err != nil {
		return nil, err
	}
	return &appt, nil
}

// TransitionStatus moves an appointment from one status to another only if
// it is currently in from. Reports whether a row changed.
func (r *appointmentRepository) TransitionStatus(ctx context.Context, id uint, from, to string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("id = ? AND status = ?", id, from).
		Update("status", to)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// List lists clinic-wide appointments with pagination
func (r *appointmentRepository) List(ctx context.Context, filter AppointmentFilter, offset, limit int) ([]models.Appointment, int64, error) {
	appts := []models.Appointment{}
	var total int64

	base := func() *gorm.DB {
		q := r.db.WithContext(ctx).Model(&models.Appointment{})
		if len(filter.Statuses) > 0 {
			q = q.Where("status IN ?", filter.Statuses)
		}
		if filter.From != nil {
			q = q.Where("date >= ?", *filter.From)
		}
		return q
	}

	// Count total
	if err := base().Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "date DESC, id DESC"
	if filter.Ascending {
		order = "date ASC, id ASC"
	}

	err := base().Scopes(withPet).Order(order).Offset(offset).Limit(limit).Find(&appts).Error
	if err != nil {
		return nil, 0, err
	}
	return appts, total, nil
}

// CountByStatus counts appointments per status, optionally for one owner
func (r *appointmentRepository) CountByStatus(ctx context.Context, ownerID *uint) (map[string]int64, error) {
	var rows []struct {
		Status string
		Total  int64
	}

	q := r.db.WithContext(ctx).Model(&models.Appointment{})
	if ownerID != nil {
		q = q.Scopes(ofOwner(*ownerID))
	}
	if err := q.Select("status, COUNT(*) AS total").Group("status").Scan(&rows).Error; err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Total
	}
	return counts, nil
}

// CountUpcoming counts pending or confirmed appointments dated from onward
func (r *appointmentRepository) CountUpcoming(ctx context.Context, ownerID *uint, from time.Time) (int64, error) {
	var count int64

	q := r.active(ctx).Where("date >= ?", from)
	if ownerID != nil {
		q = q.Scopes(ofOwner(*ownerID))
	}
	err := q.Count(&count).Error
	return count, err
}

// CountBetween counts pending or confirmed appointments dated in [from, to)
func (r *appointmentRepository) CountBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	err := r.active(ctx).Where("date >= ? AND date < ?", from, to).Count(&count).Error
	return count, err
}

func (r *appointmentRepository) active(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Model(&models.Appointment{}).
		Where("status IN ?", []string{domain.StatusPending.String(), domain.StatusConfirmed.String()})
}
