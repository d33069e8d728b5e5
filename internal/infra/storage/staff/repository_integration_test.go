//go:build integration

package staff

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TattooStudio/internal/domain"
	"github.com/m04kA/SMC-TattooStudio/internal/infra/storage/storagetest"
)

func TestRepository_CreateListGet(t *testing.T) {
	db := storagetest.StartPostgres(t)
	repo := NewRepository(db)
	ctx := context.Background()

	zoe, err := repo.Create(ctx, &domain.Staff{Email: "zoe@studio.test", FullName: "Zoe", Role: domain.RoleArtist})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &domain.Staff{
		Email:       "adam@studio.test",
		FullName:    "Adam",
		Role:        domain.RoleManager,
		Permissions: []string{"reservations", "economics"},
	})
	require.NoError(t, err)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Adam", list[0].FullName)
	assert.Equal(t, []string{"reservations", "economics"}, list[0].Permissions)

	got, err := repo.GetByEmail(ctx, " ZOE@studio.test ")
	require.NoError(t, err)
	assert.Equal(t, zoe.ID, got.ID)
	assert.True(t, got.IsArtist())

	_, err = repo.Create(ctx, &domain.Staff{Email: "zoe@studio.test", FullName: "Zoe 2", Role: domain.RoleArtist})
	assert.ErrorIs(t, err, ErrEmailTaken)

	_, err = repo.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrStaffNotFound)
}
