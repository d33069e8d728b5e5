package emails

import "errors"

var (
	// ErrEmailNotFound возвращается, когда письмо не найдено
	ErrEmailNotFound = errors.New("email not found")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
