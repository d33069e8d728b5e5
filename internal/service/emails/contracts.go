package emails

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TattooStudio/internal/domain"
)

// EmailRepository интерфейс репозитория писем
type EmailRepository interface {
	List(ctx context.Context, filter domain.EmailFilter) ([]*domain.Email, error)
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Email, error)
	UpdateFlags(ctx context.Context, id uuid.UUID, patch domain.EmailFlagsPatch) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
