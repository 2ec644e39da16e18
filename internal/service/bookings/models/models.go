package models

import (
	"errors"
	"time"

	"github.com/wildroute/ExcursionBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований пользователя
type GetUserBookingsRequest struct {
	UserID       int64   `json:"userId"`
	ActingUserID int64   `json:"actingUserId"`
	Status       *string `json:"status,omitempty"`
}

// GetExcursionBookingsRequest запрос на список бронирований экскурсии
type GetExcursionBookingsRequest struct {
	ExcursionID      int64   `json:"excursionId"`
	ActingUserID     int64   `json:"actingUserId"`
	Status           *string `json:"status,omitempty"`           // Фильтр по статусу (опционально)
	IncludeCancelled bool    `json:"includeCancelled,omitempty"` // Включить отменённые бронирования
}

// ToDomainBookingStatus конвертирует строку в domain.BookingStatus
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	s := domain.BookingStatus(status)
	if !s.IsValid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID              int64      `json:"id"`
	ExcursionID     int64      `json:"excursionId"`
	UserID          int64      `json:"userId"`
	PeopleCount     int        `json:"peopleCount"`
	BinocularNeeded bool       `json:"binocularNeeded"`
	Status          string     `json:"status"`
	Notes           *string    `json:"notes,omitempty"`
	CancelledAt     *time.Time `json:"cancelledAt,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []*BookingResponse `json:"bookings"`
	Total    int                `json:"total"`
}

// BookingStatsResponse сводка по экскурсии
type BookingStatsResponse struct {
	ExcursionID     int64 `json:"excursionId"`
	Capacity        int   `json:"capacity"`
	TotalBookings   int   `json:"totalBookings"` // Активные брони (без отменённых)
	ConfirmedPeople int   `json:"confirmedPeople"`
	ReservePeople   int   `json:"reservePeople"`
	AvailableSpots  int   `json:"availableSpots"`
}

// FromDomainBooking конвертирует domain.Booking в response
func FromDomainBooking(booking *domain.Booking) *BookingResponse {
	return &BookingResponse{
		ID:              booking.ID,
		ExcursionID:     booking.ExcursionID,
		UserID:          booking.UserID,
		PeopleCount:     booking.PeopleCount,
		BinocularNeeded: booking.BinocularNeeded,
		Status:          string(booking.Status),
		Notes:           booking.Notes,
		CancelledAt:     booking.CancelledAt,
		CreatedAt:       booking.CreatedAt,
		UpdatedAt:       booking.UpdatedAt,
	}
}

// FromDomainBookingList конвертирует список domain.Booking в response
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	result := make([]*BookingResponse, 0, len(bookings))
	for _, booking := range bookings {
		result = append(result, FromDomainBooking(booking))
	}
	return &BookingListResponse{
		Bookings: result,
		Total:    len(result),
	}
}
