package reservations

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TattooStudio/internal/domain"
	reservationRepo "github.com/m04kA/SMC-TattooStudio/internal/infra/storage/reservation"
	staffRepo "github.com/m04kA/SMC-TattooStudio/internal/infra/storage/staff"
	"github.com/m04kA/SMC-TattooStudio/internal/service/reservations/models"
	"github.com/m04kA/SMC-TattooStudio/pkg/logger"
	"github.com/m04kA/SMC-TattooStudio/pkg/ptr"
	"github.com/m04kA/SMC-TattooStudio/pkg/types"
)

type fakeReservationRepo struct {
	mu          sync.Mutex
	rows        []*domain.Reservation
	nextNum     int64
	listCalls   int
	createErr   error
	updateErr   error
	deleteErr   error
	patches     []*domain.ReservationPatch
	afterCreate func()
}

func (f *fakeReservationRepo) List(ctx context.Context) ([]*domain.Reservation, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listCalls++
	out := make([]*domain.Reservation, len(f.rows))
	for i, r := range f.rows {
		out[i] = r.Clone()
	}
	return out, nil
}

func (f *fakeReservationRepo) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	f.mu.Lock()
	if f.createErr != nil {
		f.mu.Unlock()
		return nil, f.createErr
	}
	f.nextNum++
	created := res.Clone()
	created.ID = uuid.New()
	created.Number = 1000 + f.nextNum
	created.CreatedAt = time.Now()
	created.UpdatedAt = created.CreatedAt
	f.rows = append([]*domain.Reservation{created.Clone()}, f.rows...)
	hook := f.afterCreate
	f.mu.Unlock()

	if hook != nil {
		hook()
	}
	return created, nil
}

func (f *fakeReservationRepo) Update(ctx context.Context, id uuid.UUID, patch *domain.ReservationPatch) (time.Time, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.patches = append(f.patches, patch)
	if f.updateErr != nil {
		return time.Time{}, f.updateErr
	}
	return time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), nil
}

func (f *fakeReservationRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return f.deleteErr
}

type fakeStaffRepo struct {
	members []*domain.Staff
}

func (f *fakeStaffRepo) List(ctx context.Context) ([]*domain.Staff, error) {
	return f.members, nil
}

func (f *fakeStaffRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Staff, error) {
	for _, m := range f.members {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, staffRepo.ErrStaffNotFound
}

type fakeTxManager struct {
	calls int
	err   error
}

func (f *fakeTxManager) DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	return fn(ctx)
}

func existing(number int64, first string) *domain.Reservation {
	return &domain.Reservation{
		ID:              uuid.New(),
		Number:          number,
		FirstName:       first,
		LastName:        "Doe",
		Phone:           "600100200",
		AppointmentDate: time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC),
		AppointmentTime: types.MustTimeString("11:00"),
		TotalPrice:      250,
		DepositPaid:     50,
		IsDepositPaid:   true,
	}
}

func newRequest() *models.CreateReservationRequest {
	return &models.CreateReservationRequest{
		FirstName:       "Lucía",
		LastName:        "Martín",
		Phone:           "+34 600 000 001",
		AppointmentDate: "2026-03-01",
		AppointmentTime: "16:30",
		TotalPrice:      300,
		DepositPaid:     100,
		IsDepositPaid:   true,
	}
}

func setup(rows ...*domain.Reservation) (*Service, *fakeReservationRepo, *fakeStaffRepo) {
	svc, repo, staff, _ := setupWithTx(rows...)
	return svc, repo, staff
}

func setupWithTx(rows ...*domain.Reservation) (*Service, *fakeReservationRepo, *fakeStaffRepo, *fakeTxManager) {
	repo := &fakeReservationRepo{rows: rows}
	staff := &fakeStaffRepo{members: []*domain.Staff{
		{ID: uuid.New(), FullName: "Ink Master", Role: domain.RoleArtist},
		{ID: uuid.New(), FullName: "Front Desk", Role: domain.RoleReception},
	}}
	tx := &fakeTxManager{}
	return NewService(repo, staff, tx, logger.NewNop()), repo, staff, tx
}

func TestService_LoadReadsInSingleTransaction(t *testing.T) {
	svc, _, _, tx := setupWithTx(existing(1001, "Old"))
	ctx := context.Background()

	require.NoError(t, svc.Load(ctx))
	assert.Equal(t, 1, tx.calls)

	list, err := svc.Reservations(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

func TestService_LoadTransactionFailure(t *testing.T) {
	svc, _, _, tx := setupWithTx(existing(1001, "Old"))
	tx.err = errors.New("txmanager: failed to begin transaction")

	err := svc.Load(context.Background())

	assert.ErrorIs(t, err, ErrInternal)
}

func TestService_CreateThenListShowsNewFirst(t *testing.T) {
	svc, _, _ := setup(existing(1001, "Old"))
	ctx := context.Background()

	created, err := svc.Create(ctx, newRequest())
	require.NoError(t, err)
	assert.Equal(t, "Deposit Paid", created.PaymentStatus)
	assert.Equal(t, 200.0, created.Remaining)

	list, err := svc.List(ctx, &models.ListReservationsRequest{})
	require.NoError(t, err)
	require.Len(t, list.Reservations, 2)
	assert.Equal(t, created.ID, list.Reservations[0].ID)
}

func TestService_CreateRacingLoadKeepsSingleCopy(t *testing.T) {
	svc, repo, _ := setup(existing(1001, "Old"))
	ctx := context.Background()
	require.NoError(t, svc.Load(ctx))

	// Перезагрузка между вставкой в БД и обновлением памяти уже видит новую строку
	repo.afterCreate = func() { require.NoError(t, svc.Load(ctx)) }

	created, err := svc.Create(ctx, newRequest())
	require.NoError(t, err)

	list, err := svc.List(ctx, &models.ListReservationsRequest{})
	require.NoError(t, err)
	require.Len(t, list.Reservations, 2)
	assert.Equal(t, created.ID, list.Reservations[0].ID)
	assert.Equal(t, "Old", list.Reservations[1].FirstName)
}

func TestService_CreateIsNotIdempotent(t *testing.T) {
	svc, _, _ := setup()
	ctx := context.Background()

	a, err := svc.Create(ctx, newRequest())
	require.NoError(t, err)
	b, err := svc.Create(ctx, newRequest())
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.NotEqual(t, a.Number, b.Number)
}

func TestService_CreateValidation(t *testing.T) {
	svc, _, staff := setup()
	receptionID := staff.members[1].ID.String()
	artistID := staff.members[0].ID.String()

	tests := []struct {
		name    string
		mutate  func(r *models.CreateReservationRequest)
		wantErr error
	}{
		{name: "missing first name", mutate: func(r *models.CreateReservationRequest) { r.FirstName = " " }, wantErr: ErrInvalidInput},
		{name: "missing phone", mutate: func(r *models.CreateReservationRequest) { r.Phone = "" }, wantErr: ErrInvalidInput},
		{name: "bad date", mutate: func(r *models.CreateReservationRequest) { r.AppointmentDate = "01/03/2026" }, wantErr: ErrInvalidInput},
		{name: "bad time", mutate: func(r *models.CreateReservationRequest) { r.AppointmentTime = "25:00" }, wantErr: ErrInvalidInput},
		{name: "negative price", mutate: func(r *models.CreateReservationRequest) { r.TotalPrice = -1; r.DepositPaid = 0 }, wantErr: ErrInvalidInput},
		{name: "deposit above total", mutate: func(r *models.CreateReservationRequest) { r.DepositPaid = 301 }, wantErr: ErrDepositExceedsTotal},
		{name: "artist not uuid", mutate: func(r *models.CreateReservationRequest) { r.ArtistID = ptr.Ptr("nope") }, wantErr: ErrInvalidInput},
		{name: "unknown artist", mutate: func(r *models.CreateReservationRequest) { r.ArtistID = ptr.Ptr(uuid.NewString()) }, wantErr: ErrInvalidArtist},
		{name: "staff without artist role", mutate: func(r *models.CreateReservationRequest) { r.ArtistID = &receptionID }, wantErr: ErrInvalidArtist},
		{name: "valid artist", mutate: func(r *models.CreateReservationRequest) { r.ArtistID = &artistID }, wantErr: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newRequest()
			tt.mutate(req)

			resp, err := svc.Create(context.Background(), req)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, resp.ArtistName)
			assert.Equal(t, "Ink Master", *resp.ArtistName)
		})
	}
}

func TestService_CreateRepositoryErrors(t *testing.T) {
	svc, repo, _ := setup()

	repo.createErr = reservationRepo.ErrConstraintViolation
	_, err := svc.Create(context.Background(), newRequest())
	assert.ErrorIs(t, err, ErrInvalidInput)

	repo.createErr = errors.New("connection lost")
	_, err = svc.Create(context.Background(), newRequest())
	assert.ErrorIs(t, err, ErrInternal)

	list, err := svc.List(context.Background(), &models.ListReservationsRequest{})
	require.NoError(t, err)
	assert.Empty(t, list.Reservations)
}

func TestService_UpdateMergesOnlyChangedFields(t *testing.T) {
	r := existing(1042, "Ana")
	svc, repo, _ := setup(r)
	ctx := context.Background()

	resp, err := svc.Update(ctx, r.ID, &models.UpdateReservationRequest{IsRestPaid: ptr.Ptr(true)})
	require.NoError(t, err)

	assert.Equal(t, "Fully Paid", resp.PaymentStatus)
	assert.Equal(t, "Ana", resp.FirstName)
	assert.Equal(t, time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC), resp.UpdatedAt)
	require.Len(t, repo.patches, 1)
	assert.Equal(t, map[string]interface{}{"is_rest_paid": true}, repo.patches[0].Columns())

	got, err := svc.Get(ctx, r.ID)
	require.NoError(t, err)
	assert.True(t, got.IsRestPaid)
	assert.Equal(t, 1, repo.listCalls)
}

func TestService_UpdateValidatesMergedRecord(t *testing.T) {
	r := existing(1042, "Ana")
	svc, repo, _ := setup(r)

	_, err := svc.Update(context.Background(), r.ID, &models.UpdateReservationRequest{TotalPrice: ptr.Ptr(10.0)})
	assert.ErrorIs(t, err, ErrDepositExceedsTotal)

	_, err = svc.Update(context.Background(), r.ID, &models.UpdateReservationRequest{})
	assert.ErrorIs(t, err, ErrEmptyUpdate)

	_, err = svc.Update(context.Background(), uuid.New(), &models.UpdateReservationRequest{Phone: ptr.Ptr("1")})
	assert.ErrorIs(t, err, ErrReservationNotFound)

	assert.Empty(t, repo.patches)
}

func TestService_UpdateRemoteMissingDropsLocal(t *testing.T) {
	r := existing(1042, "Ana")
	svc, repo, _ := setup(r)
	repo.updateErr = reservationRepo.ErrReservationNotFound

	_, err := svc.Update(context.Background(), r.ID, &models.UpdateReservationRequest{Phone: ptr.Ptr("1")})
	assert.ErrorIs(t, err, ErrReservationNotFound)

	_, err = svc.Reservation(context.Background(), r.ID)
	assert.ErrorIs(t, err, ErrReservationNotFound)
}

func TestService_Delete(t *testing.T) {
	a, b := existing(1, "A"), existing(2, "B")
	svc, repo, _ := setup(a, b)
	ctx := context.Background()

	require.NoError(t, svc.Delete(ctx, a.ID))

	list, err := svc.List(ctx, &models.ListReservationsRequest{})
	require.NoError(t, err)
	require.Len(t, list.Reservations, 1)
	assert.Equal(t, b.ID.String(), list.Reservations[0].ID)

	repo.deleteErr = reservationRepo.ErrReservationNotFound
	assert.ErrorIs(t, svc.Delete(ctx, a.ID), ErrReservationNotFound)

	repo.deleteErr = errors.New("timeout")
	assert.ErrorIs(t, svc.Delete(ctx, b.ID), ErrInternal)
	_, err = svc.Reservation(ctx, b.ID)
	assert.NoError(t, err)
}

func TestService_ListFilters(t *testing.T) {
	a := existing(1042, "María")
	b := existing(2001, "Pablo")
	b.AppointmentDate = time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	svc, _, _ := setup(a, b)

	list, err := svc.List(context.Background(), &models.ListReservationsRequest{Query: "104"})
	require.NoError(t, err)
	require.Len(t, list.Reservations, 1)
	assert.Equal(t, "María", list.Reservations[0].FirstName)

	from := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	list, err = svc.List(context.Background(), &models.ListReservationsRequest{From: &from})
	require.NoError(t, err)
	require.Len(t, list.Reservations, 1)
	assert.Equal(t, "Pablo", list.Reservations[0].FirstName)
}

func TestService_CloseDropsStateAndReloads(t *testing.T) {
	svc, repo, _ := setup(existing(1, "A"))
	ctx := context.Background()

	staff, err := svc.ListStaff(ctx)
	require.NoError(t, err)
	assert.Len(t, staff.Staff, 2)
	assert.Equal(t, 1, repo.listCalls)

	svc.Close()
	_, err = svc.Reservations(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, repo.listCalls)
}

func TestService_ReservationsReturnsCopies(t *testing.T) {
	r := existing(1, "A")
	svc, _, _ := setup(r)

	snapshot, err := svc.Reservations(context.Background())
	require.NoError(t, err)
	snapshot[0].FirstName = "mutated"

	again, err := svc.Reservation(context.Background(), r.ID)
	require.NoError(t, err)
	assert.Equal(t, "A", again.FirstName)
}

func TestService_ConcurrentAccess(t *testing.T) {
	svc, _, _ := setup(existing(1, "A"))
	ctx := context.Background()
	require.NoError(t, svc.Load(ctx))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			_, _ = svc.Create(ctx, newRequest())
		}()
		go func() {
			defer wg.Done()
			_, _ = svc.List(ctx, &models.ListReservationsRequest{Query: "luc"})
		}()
	}
	wg.Wait()

	list, err := svc.List(ctx, &models.ListReservationsRequest{})
	require.NoError(t, err)
	assert.Len(t, list.Reservations, 21)
}
