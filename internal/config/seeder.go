package config

import (
	"context"
	"errors"
	"strings"

	"vetcare-api/internal/adapters/persistence/models"
	"vetcare-api/internal/core/domain"
	"vetcare-api/internal/pkg/password"

	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db     *gorm.DB
	hasher *password.Hasher
	seed   SeedConfig
	log    zerolog.Logger
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, hasher *password.Hasher, seed SeedConfig, log zerolog.Logger) *Seeder {
	return &Seeder{db: db, hasher: hasher, seed: seed, log: log}
}

// Run executes all seeders
func (s *Seeder) Run(ctx context.Context) error {
	created, err := s.seedAdminUser(ctx)
	if err != nil {
		return err
	}
	if created {
		s.log.Info().Str("email", s.seed.AdminEmail).Msg("admin user created")
	}
	return nil
}

// seedAdminUser creates the bootstrap admin when credentials are configured
// and no admin exists yet. Registration is open to every role, so this is
// only a convenience for first boot.
func (s *Seeder) seedAdminUser(ctx context.Context) (bool, error) {
	email := strings.ToLower(strings.TrimSpace(s.seed.AdminEmail))
	if email == "" || s.seed.AdminPassword == "" {
		return false, nil
	}

	db := s.db.WithContext(ctx)

	var count int64
	if err := db.Model(&models.User{}).Where("role = ?", domain.RoleAdmin.String()).Count(&count).Error; err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	hash, err := s.hasher.Hash(s.seed.AdminPassword)
	if err != nil {
		return false, err
	}

	admin := &models.User{
		Name:     s.seed.AdminName,
		Email:    email,
		Password: hash,
		Role:     domain.RoleAdmin.String(),
	}
	if err := db.Create(admin).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			s.log.Warn().Str("email", email).Msg("seed admin email already used by a non-admin account")
			return false, nil
		}
		return false, err
	}
	return true, nil
}
