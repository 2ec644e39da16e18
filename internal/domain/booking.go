package domain

import "time"

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusConfirmed BookingStatus = "CONFIRMED"
	StatusReserve   BookingStatus = "RESERVE"
	StatusCancelled BookingStatus = "CANCELLED"
)

// IsValid returns true if the status is one of the known booking statuses
func (s BookingStatus) IsValid() bool {
	return s == StatusConfirmed || s == StatusReserve || s == StatusCancelled
}

// Booking represents a user's reservation against an excursion
type Booking struct {
	ID          int64
	ExcursionID int64
	UserID      int64

	PeopleCount     int // размер группы, 1..3
	BinocularNeeded bool
	Status          BookingStatus
	Notes           *string

	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsConfirmed returns true if the booking counts against excursion capacity
func (b *Booking) IsConfirmed() bool {
	return b.Status == StatusConfirmed
}

// IsReserve returns true if the booking is waitlisted
func (b *Booking) IsReserve() bool {
	return b.Status == StatusReserve
}

// IsCancelled returns true if the booking has been cancelled
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}

// IsActive returns true if the booking is not cancelled
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled
}

// CanBeCancelled returns true if the booking can still be cancelled
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusConfirmed || b.Status == StatusReserve
}

// CanBeUpdated returns true if the booking can still be edited
func (b *Booking) CanBeUpdated() bool {
	return b.Status == StatusConfirmed || b.Status == StatusReserve
}

// BookingPatch набор изменяемых полей бронирования.
// nil-поле означает "не менять". Status может выставлять только админ.
type BookingPatch struct {
	PeopleCount     *int
	BinocularNeeded *bool
	Notes           *string
	Status          *BookingStatus
}

// IsEmpty returns true if the patch changes nothing
func (p *BookingPatch) IsEmpty() bool {
	return p.PeopleCount == nil && p.BinocularNeeded == nil && p.Notes == nil && p.Status == nil
}
