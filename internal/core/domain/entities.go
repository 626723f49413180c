package domain

// Role represents user role in the system
type Role string

const (
	RoleClient       Role = "CLIENTE"
	RoleReceptionist Role = "RECEPCIONISTA"
	RoleVeterinarian Role = "VETERINARIO"
	RoleAdmin        Role = "ADMIN"
)

// Roles lists every valid role
var Roles = []Role{RoleClient, RoleReceptionist, RoleVeterinarian, RoleAdmin}

// IsValid reports whether r is one of the known roles
func (r Role) IsValid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// AppointmentStatus is the lifecycle state of an appointment
type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "PENDIENTE"
	StatusConfirmed AppointmentStatus = "CONFIRMADA"
	StatusCancelled AppointmentStatus = "CANCELADA"
	StatusCompleted AppointmentStatus = "COMPLETADA"
)

// AppointmentStatuses lists every status in lifecycle order
var AppointmentStatuses = []AppointmentStatus{StatusPending, StatusConfirmed, StatusCancelled, StatusCompleted}

// IsValid reports whether s is one of the known statuses
func (s AppointmentStatus) IsValid() bool {
	for _, known := range AppointmentStatuses {
		if s == known {
			return true
		}
	}
	return false
}

func (s AppointmentStatus) String() string {
	return string(s)
}

// Identity is the authenticated caller resolved from a verified token
type Identity struct {
	UserID uint
	Email  string
	Role   Role
}
