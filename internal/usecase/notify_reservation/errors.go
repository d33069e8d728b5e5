package notify_reservation

import "errors"

var (
	// ErrReservationNotFound возвращается, когда запись не найдена
	ErrReservationNotFound = errors.New("notify_reservation: reservation not found")

	// ErrInvalidChannel возвращается для неизвестного канала
	ErrInvalidChannel = errors.New("notify_reservation: invalid channel")

	// ErrNoRecipient возвращается, если получатель не указан и не настроен
	ErrNoRecipient = errors.New("notify_reservation: recipient is not configured")

	// ErrRelayFailed возвращается, если релей не принял сообщение
	ErrRelayFailed = errors.New("notify_reservation: relay failed")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("notify_reservation: internal error")
)
