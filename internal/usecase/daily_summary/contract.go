package daily_summary

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TattooStudio/internal/domain"
	"github.com/m04kA/SMC-TattooStudio/internal/integrations/chatrelay"
)

// ReservationRepository записи на конкретную дату
type ReservationRepository interface {
	ListByAppointmentDate(ctx context.Context, date time.Time) ([]*domain.Reservation, error)
}

// StaffRepository источник имен мастеров
type StaffRepository interface {
	List(ctx context.Context) ([]*domain.Staff, error)
}

// RelayClient интерфейс клиента чат-релея
type RelayClient interface {
	Send(ctx context.Context, channel domain.Channel, msg chatrelay.Message) (*chatrelay.SendResult, error)
}

// NotificationMetrics счетчик отправленных уведомлений
type NotificationMetrics interface {
	IncNotification(channel string, success bool)
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
