package repositories

import (
	"context"
	"testing"
	"time"

	"vetcare-api/internal/adapters/persistence/models"
	"vetcare-api/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestWaitingListRepository(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewWaitingListRepository(db)
	ctx := context.Background()

	ana := testutil.CreateUser(t, db, "Ana", "ana@x.com", "CLIENTE")
	bob := testutil.CreateUser(t, db, "Bob", "bob@x.com", "CLIENTE")
	rex := testutil.CreatePet(t, db, ana.ID, "Rex", "Perro")
	toby := testutil.CreatePet(t, db, bob.ID, "Toby", "Perro")

	base := time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)
	reason := "sin turnos"

	soon := &models.WaitingListEntry{ClientID: ana.ID, PetID: rex.ID, Date: base, Reason: &reason}
	require.NoError(t, repo.Create(ctx, soon))
	require.NotNil(t, soon.Pet)
	assert.Equal(t, "Rex", soon.Pet.Name)

	later := &models.WaitingListEntry{ClientID: ana.ID, PetID: rex.ID, Date: base.Add(72 * time.Hour)}
	require.NoError(t, repo.Create(ctx, later))

	other := &models.WaitingListEntry{ClientID: bob.ID, PetID: toby.ID, Date: base.Add(24 * time.Hour)}
	require.NoError(t, repo.Create(ctx, other))

	mine, err := repo.ListByOwner(ctx, ana.ID)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, later.ID, mine[0].ID)
	assert.Equal(t, soon.ID, mine[1].ID)

	all, total, err := repo.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	require.Len(t, all, 3)
	assert.Equal(t, soon.ID, all[0].ID)
	assert.Equal(t, other.ID, all[1].ID)

	assert.ErrorIs(t, repo.DeleteOwned(ctx, other.ID, ana.ID), gorm.ErrRecordNotFound)
	require.NoError(t, repo.DeleteOwned(ctx, soon.ID, ana.ID))
	assert.ErrorIs(t, repo.DeleteOwned(ctx, soon.ID, ana.ID), gorm.ErrRecordNotFound)

	n, err := repo.CountByOwner(ctx, ana.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	n, err = repo.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}
