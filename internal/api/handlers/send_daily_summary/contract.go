package send_daily_summary

import (
	"context"

	dailySummary "github.com/m04kA/SMC-TattooStudio/internal/usecase/daily_summary"
)

type DailySummaryUseCase interface {
	Execute(ctx context.Context, req *dailySummary.Request) (*dailySummary.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
