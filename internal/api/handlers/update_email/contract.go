package update_email

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TattooStudio/internal/service/emails/models"
)

type EmailService interface {
	UpdateFlags(ctx context.Context, id uuid.UUID, req *models.UpdateFlagsRequest) (*models.EmailResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
