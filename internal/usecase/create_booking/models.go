package create_booking

import "time"

// Request модель запроса на создание бронирования
type Request struct {
	UserID          int64   // ID участника
	ExcursionID     int64   // ID экскурсии
	PeopleCount     int     // Количество человек в заявке (1..3)
	BinocularNeeded bool    // Нужен ли бинокль от организаторов
	Notes           *string // Дополнительные пожелания (опционально)
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID              int64     // ID созданного бронирования
	ExcursionID     int64     // ID экскурсии
	UserID          int64     // ID участника
	PeopleCount     int       // Количество человек
	BinocularNeeded bool      // Нужен ли бинокль
	Status          string    // CONFIRMED или RESERVE
	Notes           *string   // Пожелания
	CreatedAt       time.Time // Время создания
	UpdatedAt       time.Time // Время обновления
}
