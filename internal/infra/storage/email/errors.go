package email

import "errors"

var (
	// ErrEmailNotFound возвращается, когда письмо не найдено
	ErrEmailNotFound = errors.New("email.repository: email not found")

	// ErrDuplicateMessageID возвращается, когда письмо с таким message_id уже сохранено
	ErrDuplicateMessageID = errors.New("email.repository: duplicate message id")

	// ErrConstraintViolation возвращается при нарушении ограничений таблицы
	ErrConstraintViolation = errors.New("email.repository: constraint violation")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("email.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("email.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("email.repository: failed to scan row")
)
