package create_reservation

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TattooStudio/internal/service/reservations/models"
)

type ReservationService interface {
	Create(ctx context.Context, req *models.CreateReservationRequest) (*models.ReservationResponse, error)
}

// Notifier отправка уведомления о новой записи в фоне
type Notifier interface {
	NotifyAsync(id uuid.UUID)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
