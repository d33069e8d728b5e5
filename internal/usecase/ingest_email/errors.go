package ingest_email

import "errors"

var (
	// ErrInvalidPayload возвращается, если тело вебхука не разбирается
	ErrInvalidPayload = errors.New("ingest_email: invalid payload")

	// ErrMissingSender возвращается, если в письме нет отправителя
	ErrMissingSender = errors.New("ingest_email: sender is required")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("ingest_email: internal error")
)
