package update_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("update_booking: booking not found")

	// ErrExcursionNotFound возвращается, когда экскурсия бронирования
	// не найдена
	ErrExcursionNotFound = errors.New("update_booking: excursion not found")

	// ErrBookingCancelled возвращается при попытке изменить отменённую бронь
	ErrBookingCancelled = errors.New("update_booking: booking is cancelled")

	// ErrForbidden возвращается, когда у пользователя нет прав на изменение
	ErrForbidden = errors.New("update_booking: access denied")

	// ErrStatusChangeForbidden возвращается, когда статус пытается изменить
	// не админ
	ErrStatusChangeForbidden = errors.New("update_booking: only admin can change booking status")

	// ErrCapacityExceeded возвращается, когда увеличение количества человек
	// не помещается в свободные места экскурсии
	ErrCapacityExceeded = errors.New("update_booking: not enough free spots for the new people count")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("update_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("update_booking: internal error")
)
