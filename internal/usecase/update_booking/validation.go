package update_booking

import (
	"fmt"

	"github.com/wildroute/ExcursionBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.BookingID <= 0 {
		return fmt.Errorf("%w: bookingID must be positive", ErrInvalidInput)
	}

	if req.ActingUserID <= 0 {
		return fmt.Errorf("%w: actingUserID must be positive", ErrInvalidInput)
	}

	if req.IsEmpty() {
		return fmt.Errorf("%w: at least one field must be provided", ErrInvalidInput)
	}

	if req.PeopleCount != nil {
		if *req.PeopleCount < domain.MinPeopleCount || *req.PeopleCount > domain.MaxPeopleCount {
			return fmt.Errorf("%w: peopleCount must be between %d and %d",
				ErrInvalidInput, domain.MinPeopleCount, domain.MaxPeopleCount)
		}
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	if req.Status != nil && !domain.BookingStatus(*req.Status).IsValid() {
		return fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
	}

	return nil
}
