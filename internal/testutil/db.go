// Package testutil holds fixtures shared by package tests.
package testutil

import (
	"context"
	"testing"
	"time"

	"vetcare-api/internal/adapters/persistence/models"
	"vetcare-api/internal/config"
	"vetcare-api/internal/pkg/password"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// NewDB opens a migrated in-memory SQLite database through the same path
// the server uses with DB_DRIVER=sqlite
func NewDB(t *testing.T) *gorm.DB {
	t.Helper()

	cfg := &config.Config{
		AppMode: config.ModeProd,
		Database: config.DatabaseConfig{
			Driver:       "sqlite",
			Name:         ":memory:",
			QueryTimeout: 5 * time.Second,
		},
	}

	db, err := config.ConnectDatabase(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("failed to connect database: %v", err)
	}
	t.Cleanup(func() {
		_ = config.CloseDatabase(db)
	})

	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("failed to migrate database: %v", err)
	}
	return db
}

// CreateUser inserts a user with a precomputed hash
func CreateUser(t *testing.T, db *gorm.DB, name, email, role string) *models.User {
	t.Helper()

	user := &models.User{Name: name, Email: email, Password: "unused-hash", Role: role}
	if err := db.WithContext(context.Background()).Create(user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}
	return user
}

// CreatePet inserts a pet owned by ownerID
func CreatePet(t *testing.T, db *gorm.DB, ownerID uint, name, species string) *models.Pet {
	t.Helper()

	pet := &models.Pet{Name: name, Species: species, ClientID: ownerID}
	if err := db.Create(pet).Error; err != nil {
		t.Fatalf("failed to create pet: %v", err)
	}
	return pet
}

// CreateAppointment inserts an appointment for a pet
func CreateAppointment(t *testing.T, db *gorm.DB, ownerID, petID uint, date time.Time, status string) *models.Appointment {
	t.Helper()

	appt := &models.Appointment{ClientID: ownerID, PetID: petID, Date: date, Reason: "checkup", Status: status}
	if err := db.Omit("Pet").Create(appt).Error; err != nil {
		t.Fatalf("failed to create appointment: %v", err)
	}
	return appt
}

// FastHasher returns a hasher at the minimum cost
func FastHasher() *password.Hasher {
	return password.NewHasher(password.MinCost)
}
