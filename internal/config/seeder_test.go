package config_test

import (
	"context"
	"testing"

	"vetcare-api/internal/adapters/persistence/models"
	"vetcare-api/internal/config"
	"vetcare-api/internal/testutil"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeederCreatesAdminOnce(t *testing.T) {
	db := testutil.NewDB(t)
	hasher := testutil.FastHasher()
	seed := config.SeedConfig{AdminName: "Admin", AdminEmail: " Admin@Clinic.test ", AdminPassword: "s3cret!"}

	seeder := config.NewSeeder(db, hasher, seed, zerolog.Nop())
	require.NoError(t, seeder.Run(context.Background()))
	require.NoError(t, seeder.Run(context.Background()))

	var admins []models.User
	require.NoError(t, db.Where("role = ?", "ADMIN").Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, "admin@clinic.test", admins[0].Email)
	assert.True(t, hasher.Verify("s3cret!", admins[0].Password))
}

func TestSeederSkipsWithoutCredentials(t *testing.T) {
	db := testutil.NewDB(t)

	seeder := config.NewSeeder(db, testutil.FastHasher(), config.SeedConfig{AdminEmail: "admin@clinic.test"}, zerolog.Nop())
	require.NoError(t, seeder.Run(context.Background()))

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}
