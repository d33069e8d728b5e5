package reservations

import "errors"

var (
	// ErrReservationNotFound возвращается, когда запись не найдена
	ErrReservationNotFound = errors.New("reservation not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInvalidArtist возвращается, если мастер не найден или не является мастером
	ErrInvalidArtist = errors.New("artist must reference a staff member with the artist role")

	// ErrDepositExceedsTotal возвращается, если депозит больше полной стоимости
	ErrDepositExceedsTotal = errors.New("deposit exceeds total price")

	// ErrEmptyUpdate возвращается, если в запросе на обновление нет полей
	ErrEmptyUpdate = errors.New("no fields to update")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
