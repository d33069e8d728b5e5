package ingest_email

import (
	"context"

	ingestEmail "github.com/m04kA/SMC-TattooStudio/internal/usecase/ingest_email"
)

type IngestEmailUseCase interface {
	Execute(ctx context.Context, req *ingestEmail.Request) (*ingestEmail.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
