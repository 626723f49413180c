package repositories

import (
	"context"
	"testing"

	"vetcare-api/internal/adapters/persistence/models"
	"vetcare-api/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestPetRepository_OwnershipScopedReads(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPetRepository(db)
	ctx := context.Background()

	ana := testutil.CreateUser(t, db, "Ana", "ana@x.com", "CLIENTE")
	bob := testutil.CreateUser(t, db, "Bob", "bob@x.com", "CLIENTE")
	rex := testutil.CreatePet(t, db, ana.ID, "Rex", "Perro")

	got, err := repo.GetOwned(ctx, rex.ID, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rex", got.Name)

	_, err = repo.GetOwned(ctx, rex.ID, bob.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	_, err = repo.GetOwned(ctx, 9999, ana.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	ok, err := repo.ExistsOwned(ctx, rex.ID, ana.ID)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = repo.ExistsOwned(ctx, rex.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestPetRepository_ListByOwnerNewestFirst(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPetRepository(db)
	ctx := context.Background()

	ana := testutil.CreateUser(t, db, "Ana", "ana@x.com", "CLIENTE")
	bob := testutil.CreateUser(t, db, "Bob", "bob@x.com", "CLIENTE")
	testutil.CreatePet(t, db, ana.ID, "Rex", "Perro")
	testutil.CreatePet(t, db, ana.ID, "Michi", "Gato")
	testutil.CreatePet(t, db, bob.ID, "Toby", "Perro")

	pets, err := repo.ListByOwner(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, pets, 2)
	assert.Equal(t, "Michi", pets[0].Name)
	assert.Equal(t, "Rex", pets[1].Name)

	none, err := repo.ListByOwner(ctx, 9999)
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	count, err := repo.CountByOwner(ctx, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestPetRepository_UpdateOwned(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPetRepository(db)
	ctx := context.Background()

	ana := testutil.CreateUser(t, db, "Ana", "ana@x.com", "CLIENTE")
	bob := testutil.CreateUser(t, db, "Bob", "bob@x.com", "CLIENTE")
	rex := testutil.CreatePet(t, db, ana.ID, "Rex", "Perro")

	_, err := repo.UpdateOwned(ctx, rex.ID, bob.ID, map[string]interface{}{"name": "Stolen"})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var unchanged models.Pet
	require.NoError(t, db.First(&unchanged, rex.ID).Error)
	assert.Equal(t, "Rex", unchanged.Name)

	updated, err := repo.UpdateOwned(ctx, rex.ID, ana.ID, map[string]interface{}{"name": "Rex II", "age": 4})
	require.NoError(t, err)
	assert.Equal(t, "Rex II", updated.Name)
	require.NotNil(t, updated.Age)
	assert.Equal(t, 4, *updated.Age)

	// identical values still count as a match
	again, err := repo.UpdateOwned(ctx, rex.ID, ana.ID, map[string]interface{}{"name": "Rex II"})
	require.NoError(t, err)
	assert.Equal(t, "Rex II", again.Name)

	// no fields only checks ownership
	_, err = repo.UpdateOwned(ctx, rex.ID, bob.ID, map[string]interface{}{})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestPetRepository_DeleteOwned(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPetRepository(db)
	ctx := context.Background()

	ana := testutil.CreateUser(t, db, "Ana", "ana@x.com", "CLIENTE")
	bob := testutil.CreateUser(t, db, "Bob", "bob@x.com", "CLIENTE")
	rex := testutil.CreatePet(t, db, ana.ID, "Rex", "Perro")

	assert.ErrorIs(t, repo.DeleteOwned(ctx, rex.ID, bob.ID), gorm.ErrRecordNotFound)

	require.NoError(t, repo.DeleteOwned(ctx, rex.ID, ana.ID))
	assert.ErrorIs(t, repo.DeleteOwned(ctx, rex.ID, ana.ID), gorm.ErrRecordNotFound)

	_, err := repo.GetOwned(ctx, rex.ID, ana.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	// soft deleted: the row is still there for history
	var kept models.Pet
	require.NoError(t, db.Unscoped().First(&kept, rex.ID).Error)
	assert.True(t, kept.DeletedAt.Valid)
}
