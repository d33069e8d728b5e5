package ingest_email

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TattooStudio/internal/domain"
)

// EmailRepository интерфейс репозитория писем
type EmailRepository interface {
	Create(ctx context.Context, e *domain.Email) (*domain.Email, error)
	CreateAttachment(ctx context.Context, a *domain.EmailAttachment) (*domain.EmailAttachment, error)
	GetByMessageID(ctx context.Context, messageID string) (*domain.Email, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// IngestMetrics счетчик обработанных писем
type IngestMetrics interface {
	IncEmailIngested(outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
