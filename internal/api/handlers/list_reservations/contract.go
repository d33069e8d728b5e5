package list_reservations

import (
	"context"

	"github.com/m04kA/SMC-TattooStudio/internal/service/reservations/models"
)

type ReservationService interface {
	Load(ctx context.Context) error
	List(ctx context.Context, req *models.ListReservationsRequest) (*models.ReservationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
