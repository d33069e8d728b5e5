package daily_summary

import "errors"

var (
	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("daily_summary: invalid input data")

	// ErrNoRecipient возвращается, если получатель не указан и не настроен
	ErrNoRecipient = errors.New("daily_summary: recipient is not configured")

	// ErrRelayFailed возвращается, если релей не принял сообщение
	ErrRelayFailed = errors.New("daily_summary: relay failed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("daily_summary: internal error")
)
