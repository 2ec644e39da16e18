package update_booking

import "time"

// Request модель запроса на изменение бронирования
type Request struct {
	BookingID       int64   // ID бронирования
	ActingUserID    int64   // ID пользователя, выполняющего изменение
	PeopleCount     *int    // Новое количество человек (опционально)
	BinocularNeeded *bool   // Нужен ли бинокль (опционально)
	Notes           *string // Новые пожелания (опционально)
	Status          *string // Новый статус, только для админа (опционально)
}

// IsEmpty возвращает true, если в запросе нет ни одного изменяемого поля
func (r *Request) IsEmpty() bool {
	return r.PeopleCount == nil && r.BinocularNeeded == nil && r.Notes == nil && r.Status == nil
}

// Response модель ответа с обновлённым бронированием
type Response struct {
	ID              int64     // ID бронирования
	ExcursionID     int64     // ID экскурсии
	UserID          int64     // ID участника
	PeopleCount     int       // Количество человек
	BinocularNeeded bool      // Нужен ли бинокль
	Status          string    // Текущий статус
	Notes           *string   // Пожелания
	CreatedAt       time.Time // Время создания
	UpdatedAt       time.Time // Время обновления
}
