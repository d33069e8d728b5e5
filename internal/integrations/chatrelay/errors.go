package chatrelay

import "errors"

var (
	// ErrUnknownChannel возвращается, если для канала не настроен адрес релея
	ErrUnknownChannel = errors.New("chatrelay client: channel is not configured")

	// ErrInternal возвращается при внутренних ошибках клиента (запрос не ушел)
	ErrInternal = errors.New("chatrelay client: internal error")

	// ErrRelayRejected возвращается, если релей ответил не-2xx статусом
	ErrRelayRejected = errors.New("chatrelay client: relay rejected message")

	// ErrInvalidResponse возвращается при некорректном теле успешного ответа
	ErrInvalidResponse = errors.New("chatrelay client: invalid response")
)
