package email

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-TattooStudio/internal/domain"
	"github.com/m04kA/SMC-TattooStudio/internal/infra/storage/pgerrors"
	"github.com/m04kA/SMC-TattooStudio/pkg/dbmetrics"
	"github.com/m04kA/SMC-TattooStudio/pkg/psqlbuilder"
)

const (
	emailsTable      = "emails"
	attachmentsTable = "email_attachments"
)

var emailColumns = []string{
	"id",
	"message_id",
	"direction",
	"from_address",
	"to_address",
	"subject",
	"body_text",
	"body_html",
	"is_read",
	"is_archived",
	"received_at",
	"created_at",
}

var attachmentColumns = []string{"id", "email_id", "filename", "content_type", "size_bytes", "storage_path", "created_at"}

// Repository репозиторий писем и метаданных вложений
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория писем
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет письмо без вложений.
// Повторный message_id возвращает ErrDuplicateMessageID.
func (r *Repository) Create(ctx context.Context, e *domain.Email) (*domain.Email, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(emailsTable).
		Columns(
			"message_id",
			"direction",
			"from_address",
			"to_address",
			"subject",
			"body_text",
			"body_html",
			"is_read",
			"is_archived",
			"received_at",
		).
		Values(
			e.MessageID,
			e.Direction,
			e.FromAddress,
			e.ToAddress,
			e.Subject,
			e.BodyText,
			e.BodyHTML,
			e.IsRead,
			e.IsArchived,
			e.ReceivedAt,
		).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	created := *e
	created.Attachments = nil
	err = executor.QueryRowContext(ctx, query, args...).Scan(&created.ID, &created.CreatedAt)
	if pgerrors.IsUniqueViolation(err) {
		return nil, ErrDuplicateMessageID
	}
	if pgerrors.IsConstraintViolation(err) {
		return nil, fmt.Errorf("%w: Create - %s: %v", ErrConstraintViolation, pgerrors.Constraint(err), err)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	return &created, nil
}

// CreateAttachment сохраняет метаданные одного вложения
func (r *Repository) CreateAttachment(ctx context.Context, a *domain.EmailAttachment) (*domain.EmailAttachment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert(attachmentsTable).
		Columns("email_id", "filename", "content_type", "size_bytes", "storage_path").
		Values(a.EmailID, a.Filename, a.ContentType, a.SizeBytes, a.StoragePath).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: CreateAttachment - build insert query: %v", ErrBuildQuery, err)
	}

	created := *a
	err = executor.QueryRowContext(ctx, query, args...).Scan(&created.ID, &created.CreatedAt)
	if pgerrors.IsForeignKeyViolation(err) {
		return nil, ErrEmailNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: CreateAttachment - execute insert: %v", ErrExecQuery, err)
	}

	return &created, nil
}

// GetByID получает письмо вместе с вложениями
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Email, error) {
	e, err := r.getOne(ctx, "GetByID", squirrel.Eq{"id": id})
	if err != nil {
		return nil, err
	}

	attachments, err := r.ListAttachments(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Attachments = attachments

	return e, nil
}

// GetByMessageID получает письмо по message_id (без вложений)
func (r *Repository) GetByMessageID(ctx context.Context, messageID string) (*domain.Email, error) {
	return r.getOne(ctx, "GetByMessageID", squirrel.Eq{"message_id": messageID})
}

func (r *Repository) getOne(ctx context.Context, op string, where squirrel.Sqlizer) (*domain.Email, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(emailColumns...).
		From(emailsTable).
		Where(where).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	e, err := scanEmail(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrEmailNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan email: %v", ErrScanRow, op, err)
	}

	return e, nil
}

// List возвращает письма, новые первыми, с фильтрацией по флагам
func (r *Repository) List(ctx context.Context, filter domain.EmailFilter) ([]*domain.Email, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Select(emailColumns...).
		From(emailsTable).
		OrderBy("received_at DESC", "created_at DESC")

	if filter.Archived != nil {
		builder = builder.Where(squirrel.Eq{"is_archived": *filter.Archived})
	}
	if filter.UnreadOnly {
		builder = builder.Where(squirrel.Eq{"is_read": false})
	}
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		builder = builder.Offset(filter.Offset)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Email, 0)
	for rows.Next() {
		e, err := scanEmail(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan email: %v", ErrScanRow, err)
		}
		result = append(result, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// ListAttachments возвращает вложения письма в порядке добавления
func (r *Repository) ListAttachments(ctx context.Context, emailID uuid.UUID) ([]domain.EmailAttachment, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(attachmentColumns...).
		From(attachmentsTable).
		Where(squirrel.Eq{"email_id": emailID}).
		OrderBy("created_at ASC", "filename ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListAttachments - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListAttachments - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]domain.EmailAttachment, 0)
	for rows.Next() {
		var a domain.EmailAttachment
		if err := rows.Scan(&a.ID, &a.EmailID, &a.Filename, &a.ContentType, &a.SizeBytes, &a.StoragePath, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListAttachments - scan attachment: %v", ErrScanRow, err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListAttachments - rows error: %v", ErrScanRow, err)
	}

	return result, nil
}

// UpdateFlags обновляет флаги прочтения и архивации
func (r *Repository) UpdateFlags(ctx context.Context, id uuid.UUID, patch domain.EmailFlagsPatch) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	builder := psqlbuilder.Update(emailsTable).Where(squirrel.Eq{"id": id})
	if patch.IsRead != nil {
		builder = builder.Set("is_read", *patch.IsRead)
	}
	if patch.IsArchived != nil {
		builder = builder.Set("is_archived", *patch.IsArchived)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: UpdateFlags - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdateFlags - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdateFlags - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrEmailNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanEmail(row rowScanner) (*domain.Email, error) {
	var e domain.Email
	err := row.Scan(
		&e.ID,
		&e.MessageID,
		&e.Direction,
		&e.FromAddress,
		&e.ToAddress,
		&e.Subject,
		&e.BodyText,
		&e.BodyHTML,
		&e.IsRead,
		&e.IsArchived,
		&e.ReceivedAt,
		&e.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}
