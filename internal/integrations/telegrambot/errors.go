package telegrambot

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("telegrambot client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от бота
	ErrInvalidResponse = errors.New("telegrambot client: invalid response")
)
