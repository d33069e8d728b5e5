package list_staff

import (
	"context"

	"github.com/m04kA/SMC-TattooStudio/internal/service/reservations/models"
)

type StaffService interface {
	ListStaff(ctx context.Context) (*models.StaffListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
