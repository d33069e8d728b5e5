package list_emails

import (
	"context"

	"github.com/m04kA/SMC-TattooStudio/internal/service/emails/models"
)

type EmailService interface {
	List(ctx context.Context, req *models.ListEmailsRequest) (*models.EmailListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
