package services

import (
	"context"
	"testing"

	"vetcare-api/internal/adapters/persistence/repositories"
	"vetcare-api/internal/core/domain"
	"vetcare-api/internal/testutil"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

func TestPetService_CreateAndOwnership(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewPetService(repositories.NewPetRepository(db), zerolog.Nop())
	ctx := context.Background()

	ana := testutil.CreateUser(t, db, "Ana", "ana@x.com", "CLIENTE")
	bob := testutil.CreateUser(t, db, "Bob", "bob@x.com", "CLIENTE")

	rex, err := svc.Create(ctx, ana.ID, &PetInput{Name: " Rex ", Species: "Perro", Breed: strPtr("  "), Age: intPtr(3)})
	require.NoError(t, err)
	assert.Equal(t, "Rex", rex.Name)
	assert.Nil(t, rex.Breed)
	assert.Equal(t, ana.ID, rex.ClientID)

	_, err = svc.Get(ctx, bob.ID, rex.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.Update(ctx, bob.ID, rex.ID, &PetUpdateInput{Name: strPtr("Stolen")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, bob.ID, rex.ID), domain.ErrNotFound)

	got, err := svc.Get(ctx, ana.ID, rex.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rex", got.Name)

	pets, err := svc.List(ctx, bob.ID)
	require.NoError(t, err)
	assert.Empty(t, pets)
}

func TestPetService_CreateValidation(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewPetService(repositories.NewPetRepository(db), zerolog.Nop())
	ana := testutil.CreateUser(t, db, "Ana", "ana@x.com", "CLIENTE")

	_, err := svc.Create(context.Background(), ana.ID, &PetInput{Name: "Rex"})
	assert.ErrorIs(t, err, domain.ErrValidation)

	_, err = svc.Create(context.Background(), ana.ID, &PetInput{Name: "Rex", Species: "Perro", Age: intPtr(-1)})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPetService_UpdatePartial(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewPetService(repositories.NewPetRepository(db), zerolog.Nop())
	ctx := context.Background()

	ana := testutil.CreateUser(t, db, "Ana", "ana@x.com", "CLIENTE")
	rex, err := svc.Create(ctx, ana.ID, &PetInput{Name: "Rex", Species: "Perro", Breed: strPtr("Labrador")})
	require.NoError(t, err)

	updated, err := svc.Update(ctx, ana.ID, rex.ID, &PetUpdateInput{Age: intPtr(4)})
	require.NoError(t, err)
	assert.Equal(t, "Rex", updated.Name)
	require.NotNil(t, updated.Age)
	assert.Equal(t, 4, *updated.Age)
	require.NotNil(t, updated.Breed)
	assert.Equal(t, "Labrador", *updated.Breed)

	_, err = svc.Update(ctx, ana.ID, rex.ID, &PetUpdateInput{Species: strPtr(" ")})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPetService_DeleteHidesPet(t *testing.T) {
	db := testutil.NewDB(t)
	svc := NewPetService(repositories.NewPetRepository(db), zerolog.Nop())
	ctx := context.Background()

	ana := testutil.CreateUser(t, db, "Ana", "ana@x.com", "CLIENTE")
	rex := testutil.CreatePet(t, db, ana.ID, "Rex", "Perro")

	require.NoError(t, svc.Delete(ctx, ana.ID, rex.ID))

	_, err := svc.Get(ctx, ana.ID, rex.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, ana.ID, rex.ID), domain.ErrNotFound)
}
