package create_booking

import (
	"time"

	createBooking "github.com/wildroute/ExcursionBookingService/internal/usecase/create_booking"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	PeopleCount     int     `json:"peopleCount"`
	BinocularNeeded bool    `json:"binocularNeeded"`
	Notes           *string `json:"notes,omitempty"`
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
func (r *CreateBookingRequest) ToUseCaseRequest(userID, excursionID int64) *createBooking.Request {
	return &createBooking.Request{
		UserID:          userID,
		ExcursionID:     excursionID,
		PeopleCount:     r.PeopleCount,
		BinocularNeeded: r.BinocularNeeded,
		Notes:           r.Notes,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
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
