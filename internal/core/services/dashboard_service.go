package services

import (
	"context"
	"fmt"
	"time"

	"vetcare-api/internal/adapters/persistence/models"
	"vetcare-api/internal/adapters/persistence/repositories"
	"vetcare-api/internal/core/domain"
)

// DashboardService builds the role-scoped dashboard summaries
type DashboardService struct {
	userRepo repositories.UserRepository
	petRepo  repositories.PetRepository
	apptRepo repositories.AppointmentRepository
	waitRepo repositories.WaitingListRepository
	now      func() time.Time
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(
	userRepo repositories.UserRepository,
	petRepo repositories.PetRepository,
	apptRepo repositories.AppointmentRepository,
	waitRepo repositories.WaitingListRepository,
) *DashboardService {
	return &DashboardService{
		userRepo: userRepo,
		petRepo:  petRepo,
		apptRepo: apptRepo,
		waitRepo: waitRepo,
		now:      time.Now,
	}
}

// recentLimit caps the appointment lists embedded in staff dashboards
const recentLimit = 10

// ============================================================
// Client Dashboard
// ============================================================

// ClientDashboard summarizes the caller's own pets and appointments
type ClientDashboard struct {
	Role                 string           `json:"role"`
	TotalPets            int64            `json:"totalMascotas"`
	UpcomingAppointments int64            `json:"citasProximas"`
	WaitingListEntries   int64            `json:"listaEspera"`
	AppointmentsByStatus map[string]int64 `json:"citasPorEstado"`
}

// GetClientDashboard returns the dashboard of a client
func (s *DashboardService) GetClientDashboard(ctx context.Context, ownerID uint) (*ClientDashboard, error) {
	data := &ClientDashboard{Role: domain.RoleClient.String()}
	var err error

	if data.TotalPets, err = s.petRepo.CountByOwner(ctx, ownerID); err != nil {
		return nil, fmt.Errorf("count pets: %w", err)
	}
	if data.UpcomingAppointments, err = s.apptRepo.CountUpcoming(ctx, &ownerID, s.now().UTC()); err != nil {
		return nil, fmt.Errorf("count upcoming: %w", err)
	}
	if data.WaitingListEntries, err = s.waitRepo.CountByOwner(ctx, ownerID); err != nil {
		return nil, fmt.Errorf("count waiting list: %w", err)
	}
	if data.AppointmentsByStatus, err = s.statusCounts(ctx, &ownerID); err != nil {
		return nil, err
	}

	return data, nil
}

// ============================================================
// Reception Dashboard
// ============================================================

// ReceptionDashboard summarizes the clinic agenda for the front desk
type ReceptionDashboard struct {
	Role                 string               `json:"role"`
	PendingAppointments  int64                `json:"citasPendientes"`
	WaitingListEntries   int64                `json:"listaEspera"`
	AppointmentsByStatus map[string]int64     `json:"citasPorEstado"`
	Pending              []models.Appointment `json:"pendientes"`
}

// GetReceptionDashboard returns the dashboard of a receptionist
func (s *DashboardService) GetReceptionDashboard(ctx context.Context) (*ReceptionDashboard, error) {
	data := &ReceptionDashboard{Role: domain.RoleReceptionist.String()}
	var err error

	if data.AppointmentsByStatus, err = s.statusCounts(ctx, nil); err != nil {
		return nil, err
	}
	data.PendingAppointments = data.AppointmentsByStatus[domain.StatusPending.String()]

	if data.WaitingListEntries, err = s.waitRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count waiting list: %w", err)
	}

	// Oldest pending first, that is the confirmation order
	filter := repositories.AppointmentFilter{
		Statuses:  []string{domain.StatusPending.String()},
		Ascending: true,
	}
	if data.Pending, _, err = s.apptRepo.List(ctx, filter, 0, recentLimit); err != nil {
		return nil, fmt.Errorf("list pending: %w", err)
	}

	return data, nil
}

// ============================================================
// Vet Dashboard
// ============================================================

// VetDashboard summarizes upcoming clinical work
type VetDashboard struct {
	Role                 string               `json:"role"`
	UpcomingAppointments int64                `json:"citasProximas"`
	TodayAppointments    int64                `json:"citasHoy"`
	Next                 []models.Appointment `json:"proximas"`
}

// GetVetDashboard returns the dashboard of a veterinarian
func (s *DashboardService) GetVetDashboard(ctx context.Context) (*VetDashboard, error) {
	now := s.now().UTC()
	data := &VetDashboard{Role: domain.RoleVeterinarian.String()}

	filter := repositories.AppointmentFilter{
		Statuses:  []string{domain.StatusPending.String(), domain.StatusConfirmed.String()},
		From:      &now,
		Ascending: true,
	}
	next, total, err := s.apptRepo.List(ctx, filter, 0, recentLimit)
	if err != nil {
		return nil, fmt.Errorf("list upcoming: %w", err)
	}
	data.Next = next
	data.UpcomingAppointments = total

	endOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, 1)
	if data.TodayAppointments, err = s.apptRepo.CountBetween(ctx, now, endOfDay); err != nil {
		return nil, fmt.Errorf("count today: %w", err)
	}

	return data, nil
}

// ============================================================
// Admin Dashboard
// ============================================================

// AdminDashboard holds clinic-wide counters
type AdminDashboard struct {
	Role                 string           `json:"role"`
	TotalUsers           int64            `json:"totalUsuarios"`
	UsersByRole          map[string]int64 `json:"usuariosPorRol"`
	TotalPets            int64            `json:"totalMascotas"`
	WaitingListEntries   int64            `json:"listaEspera"`
	AppointmentsByStatus map[string]int64 `json:"citasPorEstado"`
}

// GetAdminDashboard returns the dashboard of an administrator
func (s *DashboardService) GetAdminDashboard(ctx context.Context) (*AdminDashboard, error) {
	data := &AdminDashboard{Role: domain.RoleAdmin.String()}

	byRole, err := s.userRepo.CountByRole(ctx)
	if err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}
	data.UsersByRole = make(map[string]int64, len(domain.Roles))
	for _, r := range domain.Roles {
		data.UsersByRole[r.String()] = byRole[r.String()]
		data.TotalUsers += byRole[r.String()]
	}

	if data.TotalPets, err = s.petRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count pets: %w", err)
	}
	if data.WaitingListEntries, err = s.waitRepo.Count(ctx); err != nil {
		return nil, fmt.Errorf("count waiting list: %w", err)
	}
	if data.AppointmentsByStatus, err = s.statusCounts(ctx, nil); err != nil {
		return nil, err
	}

	return data, nil
}

// ForIdentity picks the dashboard matching the caller's role
func (s *DashboardService) ForIdentity(ctx context.Context, id domain.Identity) (interface{}, error) {
	switch id.Role {
	case domain.RoleClient:
		return s.GetClientDashboard(ctx, id.UserID)
	case domain.RoleReceptionist:
		return s.GetReceptionDashboard(ctx)
	case domain.RoleVeterinarian:
		return s.GetVetDashboard(ctx)
	case domain.RoleAdmin:
		return s.GetAdminDashboard(ctx)
	default:
		return nil, domain.ErrForbidden
	}
}

// statusCounts returns a count for every status, zero when absent
func (s *DashboardService) statusCounts(ctx context.Context, ownerID *uint) (map[string]int64, error) {
	raw, err := s.apptRepo.CountByStatus(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("count appointments: %w", err)
	}

	counts := make(map[string]int64, len(domain.AppointmentStatuses))
	for _, st := range domain.AppointmentStatuses {
		counts[st.String()] = raw[st.String()]
	}
	return counts, nil
}
