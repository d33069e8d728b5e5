package get_analytics

import (
	"context"

	reservationAnalytics "github.com/m04kA/SMC-TattooStudio/internal/usecase/reservation_analytics"
)

type AnalyticsUseCase interface {
	Execute(ctx context.Context, req *reservationAnalytics.Request) (*reservationAnalytics.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
