package send_reservation_notice

import (
	"context"

	notifyReservation "github.com/m04kA/SMC-TattooStudio/internal/usecase/notify_reservation"
)

type NotifyReservationUseCase interface {
	Execute(ctx context.Context, req *notifyReservation.Request) (*notifyReservation.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
