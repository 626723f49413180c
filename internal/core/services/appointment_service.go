package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"vetcare-api/internal/adapters/persistence/models"
	"vetcare-api/internal/adapters/persistence/repositories"
	"vetcare-api/internal/core/domain"
	"vetcare-api/internal/pkg/metrics"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// AppointmentService handles client appointments and the staff views of
// the clinic agenda
type AppointmentService struct {
	apptRepo repositories.AppointmentRepository
	petRepo  repositories.PetRepository
	log      zerolog.Logger
	now      func() time.Time
}

// NewAppointmentService creates a new appointment service
func NewAppointmentService(
	apptRepo repositories.AppointmentRepository,
	petRepo repositories.PetRepository,
	log zerolog.Logger,
) *AppointmentService {
	return &AppointmentService{
		apptRepo: apptRepo,
		petRepo:  petRepo,
		log:      log,
		now:      time.Now,
	}
}

// CreateAppointmentInput represents appointment creation input
type CreateAppointmentInput struct {
	PetID  uint
	Date   time.Time
	Reason string
}

// UpdateAppointmentInput carries only the fields to change
type UpdateAppointmentInput struct {
	Date   *time.Time
	Reason *string
}

// List lists the owner's appointments, most recent date first
func (s *AppointmentService) List(ctx context.Context, ownerID uint) ([]models.Appointment, error) {
	appts, err := s.apptRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list appointments: %w", err)
	}
	return appts, nil
}

// ListForPet lists the owner's appointments for one pet. A pet the owner
// does not have simply yields an empty list.
func (s *AppointmentService) ListForPet(ctx context.Context, ownerID, petID uint) ([]models.Appointment, error) {
	appts, err := s.apptRepo.ListByOwnerAndPet(ctx, ownerID, petID)
	if err != nil {
		return nil, fmt.Errorf("list pet appointments: %w", err)
	}
	return appts, nil
}

// Create books an appointment for one of the owner's pets
func (s *AppointmentService) Create(ctx context.Context, ownerID uint, input *CreateAppointmentInput) (*models.Appointment, error) {
	if input.PetID == 0 {
		return nil, domain.NewValidationError("mascotaId is required")
	}
	if input.Date.IsZero() {
		return nil, domain.NewValidationError("fecha is required")
	}

	owned, err := s.petRepo.ExistsOwned(ctx, input.PetID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("check pet: %w", err)
	}
	if !owned {
		return nil, domain.ErrPetNotOwned
	}

	appt := &models.Appointment{
		Date:     input.Date.UTC(),
		Reason:   strings.TrimSpace(input.Reason),
		Status:   domain.StatusPending.String(),
		ClientID: ownerID,
		PetID:    input.PetID,
	}
	if err := s.apptRepo.Create(ctx, appt); err != nil {
		return nil, fmt.Errorf("create appointment: %w", err)
	}

	metrics.AppointmentTransitionsTotal.WithLabelValues(appt.Status).Inc()
	s.log.Info().Uint("user_id", ownerID).Uint("appointment_id", appt.ID).Msg("appointment booked")

	return appt, nil
}

// Update reschedules or rewords one of the owner's appointments
func (s *AppointmentService) Update(ctx context.Context, ownerID, id uint, input *UpdateAppointmentInput) (*models.Appointment, error) {
	fields := map[string]interface{}{}
	if input.Date != nil {
		if input.Date.IsZero() {
			return nil, domain.NewValidationError("fecha is invalid")
		}
		fields["date"] = input.Date.UTC()
	}
	if input.Reason != nil {
		fields["reason"] = strings.TrimSpace(*input.Reason)
	}

	appt, err := s.apptRepo.UpdateOwned(ctx, id, ownerID, fields)
	if err != nil {
		return nil, notFoundOr(err, "update appointment")
	}
	return appt, nil
}

// Cancel marks one of the owner's appointments as cancelled, whatever its
// current status
func (s *AppointmentService) Cancel(ctx context.Context, ownerID, id uint) (*models.Appointment, error) {
	return s.setStatus(ctx, ownerID, id, domain.StatusCancelled)
}

// Complete marks one of the owner's appointments as completed, whatever its
// current status
func (s *AppointmentService) Complete(ctx context.Context, ownerID, id uint) (*models.Appointment, error) {
	return s.setStatus(ctx, ownerID, id, domain.StatusCompleted)
}

func (s *AppointmentService) setStatus(ctx context.Context, ownerID, id uint, status domain.AppointmentStatus) (*models.Appointment, error) {
	appt, err := s.apptRepo.UpdateOwned(ctx, id, ownerID, map[string]interface{}{"status": status.String()})
	if err != nil {
		return nil, notFoundOr(err, "set appointment status")
	}

	metrics.AppointmentTransitionsTotal.WithLabelValues(status.String()).Inc()
	s.log.Info().
		Uint("user_id", ownerID).
		Uint("appointment_id", id).
		Str("status", status.String()).
		Msg("appointment status changed")

	return appt, nil
}

// Agenda lists every appointment in the clinic for reception staff,
// optionally filtered by status
func (s *AppointmentService) Agenda(ctx context.Context, status string, offset, limit int) ([]models.Appointment, int64, error) {
	filter := repositories.AppointmentFilter{}
	if status != "" {
		st := domain.AppointmentStatus(strings.ToUpper(strings.TrimSpace(status)))
		if !st.IsValid() {
			return nil, 0, domain.NewValidationError("estado must be one of: PENDIENTE CONFIRMADA CANCELADA COMPLETADA")
		}
		filter.Statuses = []string{st.String()}
	}

	appts, total, err := s.apptRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list agenda: %w", err)
	}
	return appts, total, nil
}

// Upcoming lists pending and confirmed appointments from now on, soonest
// first, for veterinarians
func (s *AppointmentService) Upcoming(ctx context.Context, offset, limit int) ([]models.Appointment, int64, error) {
	from := s.now().UTC()
	filter := repositories.AppointmentFilter{
		Statuses:  []string{domain.StatusPending.String(), domain.StatusConfirmed.String()},
		From:      &from,
		Ascending: true,
	}

	appts, total, err := s.apptRepo.List(ctx, filter, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("list upcoming: %w", err)
	}
	return appts, total, nil
}

// Confirm moves a pending appointment to confirmed. Unlike the client-side
// transitions this one is guarded: anything but PENDIENTE is rejected.
func (s *AppointmentService) Confirm(ctx context.Context, id uint) (*models.Appointment, error) {
	changed, err := s.apptRepo.TransitionStatus(ctx, id, domain.StatusPending.String(), domain.StatusConfirmed.String())
	if err != nil {
		return nil, fmt.Errorf("confirm appointment: %w", err)
	}

	appt, err := s.apptRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get appointment: %w", err)
	}

	if !changed {
		return nil, domain.ErrInvalidTransition
	}

	metrics.AppointmentTransitionsTotal.WithLabelValues(domain.StatusConfirmed.String()).Inc()
	s.log.Info().Uint("appointment_id", id).Msg("appointment confirmed")

	return appt, nil
}
