package reservation_analytics

import "errors"

var (
	// ErrInvalidPeriod возвращается для неизвестного периода
	ErrInvalidPeriod = errors.New("reservation_analytics: invalid period")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("reservation_analytics: internal error")
)
