package notify_reservation

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TattooStudio/internal/domain"
	"github.com/m04kA/SMC-TattooStudio/internal/integrations/chatrelay"
)

// ReservationSource источник записей и имен мастеров
type ReservationSource interface {
	Reservation(ctx context.Context, id uuid.UUID) (*domain.Reservation, error)
	StaffName(id *uuid.UUID) *string
}

// RelayClient интерфейс клиента чат-релея
type RelayClient interface {
	Send(ctx context.Context, channel domain.Channel, msg chatrelay.Message) (*chatrelay.SendResult, error)
}

// NotificationMetrics счетчик отправленных уведомлений
type NotificationMetrics interface {
	IncNotification(channel string, success bool)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
