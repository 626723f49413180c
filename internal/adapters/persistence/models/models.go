package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents users table
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null;index" json:"name"`
	Email     string    `gorm:"uniqueIndex;size:191;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Role      string    `gorm:"size:20;not null;default:'CLIENTE';index" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (User) TableName() string {
	return "users"
}

// UserResponse DTO
type UserResponse struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func (u *User) ToResponse() *UserResponse {
	return &UserResponse{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// Pet represents pets table. Deleted pets stay readable through the
// appointments and waiting list entries that reference them.
type Pet struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Name      string         `gorm:"size:100;not null" json:"nombre"`
	Species   string         `gorm:"size:50;not null" json:"especie"`
	Breed     *string        `gorm:"size:100" json:"raza"`
	Age       *int           `json:"edad"`
	ClientID  uint           `gorm:"not null;index" json:"clienteId"`
	CreatedAt time.Time      `gorm:"autoCreateTime;index" json:"creadoEn"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"-"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Pet) TableName() string {
	return "pets"
}

// Appointment represents appointments table
type Appointment struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Date      time.Time `gorm:"not null;index" json:"fecha"`
	Reason    string    `gorm:"size:500" json:"motivo"`
	Status    string    `gorm:"size:20;not null;default:'PENDIENTE';index" json:"estado"`
	ClientID  uint      `gorm:"not null;index" json:"clienteId"`
	PetID     uint      `gorm:"not null;index" json:"mascotaId"`
	Pet       *Pet      `gorm:"foreignKey:PetID" json:"mascota,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"creadoEn"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"-"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// WaitingListEntry represents waiting_list_entries table.
// Date is the date the client would like to be seen.
type WaitingListEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ClientID  uint      `gorm:"not null;index" json:"clienteId"`
	PetID     uint      `gorm:"not null;index" json:"mascotaId"`
	Pet       *Pet      `gorm:"foreignKey:PetID" json:"mascota,omitempty"`
	Reason    *string   `gorm:"size:500" json:"motivo"`
	Date      time.Time `gorm:"not null;index" json:"fecha"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"creadoEn"`
}

func (WaitingListEntry) TableName() string {
	return "waiting_list_entries"
}

// AutoMigrate runs auto migration for all models
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Pet{},
		&Appointment{},
		&WaitingListEntry{},
	)
}
