package reservation

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-TattooStudio/internal/domain"
	"github.com/m04kA/SMC-TattooStudio/internal/infra/storage/pgerrors"
	"github.com/m04kA/SMC-TattooStudio/pkg/dbmetrics"
	"github.com/m04kA/SMC-TattooStudio/pkg/psqlbuilder"
)

const table = "reservations"

var columns = []string{
	"id",
	"number",
	"first_name",
	"last_name",
	"phone",
	"appointment_date",
	"appointment_time",
	"total_price",
	"deposit_paid",
	"is_deposit_paid",
	"is_rest_paid",
	"is_paid",
	"artist_id",
	"notes",
	"design_images",
	"created_at",
	"updated_at",
}

// Repository репозиторий записей клиентов
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория записей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// List возвращает все записи, новые первыми
func (r *Repository) List(ctx context.Context) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("created_at DESC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// ListByAppointmentDate возвращает записи на указанную дату, отсортированные по времени
func (r *Repository) ListByAppointmentDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"appointment_date": date.Format(domain.DateFormat)}).
		OrderBy("appointment_time ASC", "number ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByAppointmentDate - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByAppointmentDate - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return r.scanReservations(rows)
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	res, err := scanReservation(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrReservationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reservation: %v", ErrScanRow, err)
	}

	return res, nil
}

// Create вставляет запись. Номер, ID и временные метки назначает БД.
func (r *Repository) Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	images := res.DesignImages
	if images == nil {
		images = []string{}
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"first_name",
			"last_name",
			"phone",
			"appointment_date",
			"appointment_time",
			"total_price",
			"deposit_paid",
			"is_deposit_paid",
			"is_rest_paid",
			"is_paid",
			"artist_id",
			"notes",
			"design_images",
		).
		Values(
			res.FirstName,
			res.LastName,
			res.Phone,
			res.AppointmentDate.Format(domain.DateFormat),
			res.AppointmentTime,
			res.TotalPrice,
			res.DepositPaid,
			res.IsDepositPaid,
			res.IsRestPaid,
			res.IsPaid,
			nullUUID(res.ArtistID),
			nullString(res.Notes),
			pq.Array(images),
		).
		Suffix("RETURNING id, number, created_at, updated_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created := res.Clone()
	created.DesignImages = images
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&created.ID,
		&created.Number,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if pgerrors.IsConstraintViolation(err) {
		return nil, fmt.Errorf("%w: Create - %s: %v", ErrConstraintViolation, pgerrors.Constraint(err), err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return created, nil
}

// Update записывает только измененные поля и возвращает новое значение updated_at
func (r *Repository) Update(ctx context.Context, id uuid.UUID, patch *domain.ReservationPatch) (time.Time, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update(table).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": id}).
		Suffix("RETURNING updated_at")

	for column, value := range patch.Columns() {
		builder = builder.Set(column, columnValue(value))
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: Update - build update query: %v", ErrBuildQuery, err)
	}

	var updatedAt time.Time
	err = executor.QueryRowContext(ctx, query, args...).Scan(&updatedAt)
	if err == sql.ErrNoRows {
		return time.Time{}, ErrReservationNotFound
	}
	if pgerrors.IsConstraintViolation(err) {
		return time.Time{}, fmt.Errorf("%w: Update - %s: %v", ErrConstraintViolation, pgerrors.Constraint(err), err)
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: Update - execute update: %v", ErrExecQuery, err)
	}

	return updatedAt, nil
}

// Delete удаляет запись безвозвратно
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReservationNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReservation(row rowScanner) (*domain.Reservation, error) {
	var res domain.Reservation
	var artistID uuid.NullUUID
	var notes sql.NullString

	err := row.Scan(
		&res.ID,
		&res.Number,
		&res.FirstName,
		&res.LastName,
		&res.Phone,
		&res.AppointmentDate,
		&res.AppointmentTime,
		&res.TotalPrice,
		&res.DepositPaid,
		&res.IsDepositPaid,
		&res.IsRestPaid,
		&res.IsPaid,
		&artistID,
		&notes,
		pq.Array(&res.DesignImages),
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if artistID.Valid {
		id := artistID.UUID
		res.ArtistID = &id
	}
	if notes.Valid {
		n := notes.String
		res.Notes = &n
	}

	return &res, nil
}

func (r *Repository) scanReservations(rows *sql.Rows) ([]*domain.Reservation, error) {
	result := make([]*domain.Reservation, 0)
	for rows.Next() {
		res, err := scanReservation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanReservations - scan reservation: %v", ErrScanRow, err)
		}
		result = append(result, res)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanReservations - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

func columnValue(value interface{}) interface{} {
	if images, ok := value.([]string); ok {
		if images == nil {
			images = []string{}
		}
		return pq.Array(images)
	}
	return value
}

func nullUUID(id *uuid.UUID) uuid.NullUUID {
	if id == nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *id, Valid: true}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
