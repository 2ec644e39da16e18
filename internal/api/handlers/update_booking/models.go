package update_booking

import (
	"time"

	updateBooking "github.com/wildroute/ExcursionBookingService/internal/usecase/update_booking"
)

// UpdateBookingRequest HTTP request model
type UpdateBookingRequest struct {
	PeopleCount     *int    `json:"peopleCount,omitempty"`
	BinocularNeeded *bool   `json:"binocularNeeded,omitempty"`
	Notes           *string `json:"notes,omitempty"`
	Status          *string `json:"status,omitempty"` // Только для админа
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64   `json:"id"`
	ExcursionID     int64   `json:"excursionId"`
	UserID          int64   `json:"userId"`
	PeopleCount     int     `json:"peopleCount"`
	BinocularNeeded bool    `json:"binocularNeeded"`
	Status          string  `json:"status"`
	Notes           *string `json:"notes,omitempty"`
	CreatedAt       string  `json:"createdAt"`
	UpdatedAt       string  `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *UpdateBookingRequest) ToUseCaseRequest(bookingID, actingUserID int64) *updateBooking.Request {
	return &updateBooking.Request{
		BookingID:       bookingID,
		ActingUserID:    actingUserID,
		PeopleCount:     r.PeopleCount,
		BinocularNeeded: r.BinocularNeeded,
		Notes:           r.Notes,
		Status:          r.Status,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *updateBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		ExcursionID:     resp.ExcursionID,
		UserID:          resp.UserID,
		PeopleCount:     resp.PeopleCount,
		BinocularNeeded: resp.BinocularNeeded,
		Status:          resp.Status,
		Notes:           resp.Notes,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
