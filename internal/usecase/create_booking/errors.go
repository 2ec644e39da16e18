package create_booking

import "errors"

var (
	// ErrExcursionNotFound возвращается, когда экскурсия не найдена
	ErrExcursionNotFound = errors.New("create_booking: excursion not found")

	// ErrExcursionInactive возвращается, когда экскурсия отменена или скрыта
	ErrExcursionInactive = errors.New("create_booking: excursion is not active")

	// ErrUserNotFound возвращается, когда пользователь не найден в UserService
	ErrUserNotFound = errors.New("create_booking: user not found")

	// ErrAlreadyBooked возвращается при повторной подтверждённой записи
	// на ту же экскурсию
	ErrAlreadyBooked = errors.New("create_booking: user already has a confirmed booking for this excursion")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
