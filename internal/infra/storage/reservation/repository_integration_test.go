//go:build integration

package reservation

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TattooStudio/internal/domain"
	"github.com/m04kA/SMC-TattooStudio/internal/infra/storage/storagetest"
	"github.com/m04kA/SMC-TattooStudio/pkg/ptr"
	"github.com/m04kA/SMC-TattooStudio/pkg/types"
)

func newReservation(first string, date time.Time, at string) *domain.Reservation {
	return &domain.Reservation{
		FirstName:       first,
		LastName:        "Test",
		Phone:           "+34600111222",
		AppointmentDate: date,
		AppointmentTime: types.MustTimeString(at),
		TotalPrice:      250,
		DepositPaid:     50,
		IsDepositPaid:   true,
		DesignImages:    []string{"designs/1.png"},
	}
}

func TestRepository_Lifecycle(t *testing.T) {
	db := storagetest.StartPostgres(t)
	repo := NewRepository(db)
	ctx := context.Background()
	date := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)

	first, err := repo.Create(ctx, newReservation("Ana", date, "12:00"))
	require.NoError(t, err)
	second, err := repo.Create(ctx, newReservation("Bea", date, "10:30"))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, first.ID)
	assert.Greater(t, second.Number, first.Number)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, 200.0, list[0].Remaining())
	assert.Equal(t, []string{"designs/1.png"}, list[0].DesignImages)

	byDate, err := repo.ListByAppointmentDate(ctx, date)
	require.NoError(t, err)
	require.Len(t, byDate, 2)
	assert.Equal(t, "10:30", byDate[0].AppointmentTime.String())

	updatedAt, err := repo.Update(ctx, first.ID, &domain.ReservationPatch{
		IsRestPaid: ptr.Ptr(true),
		Notes:      ptr.Ptr("bring reference"),
	})
	require.NoError(t, err)
	assert.False(t, updatedAt.Before(first.UpdatedAt))

	got, err := repo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentFullyPaid, got.PaymentStatus())
	require.NotNil(t, got.Notes)
	assert.Equal(t, "bring reference", *got.Notes)

	require.NoError(t, repo.Delete(ctx, first.ID))
	_, err = repo.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, ErrReservationNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, first.ID), ErrReservationNotFound)
}

func TestRepository_DepositAboveTotal(t *testing.T) {
	db := storagetest.StartPostgres(t)
	repo := NewRepository(db)

	res := newReservation("Eva", time.Date(2026, 6, 2, 0, 0, 0, 0, time.UTC), "09:00")
	res.DepositPaid = 300

	_, err := repo.Create(context.Background(), res)
	assert.ErrorIs(t, err, ErrConstraintViolation)

	_, err = repo.Update(context.Background(), uuid.New(), &domain.ReservationPatch{Phone: ptr.Ptr("1")})
	assert.ErrorIs(t, err, ErrReservationNotFound)
}
