package create_booking

import (
	"fmt"

	"github.com/wildroute/ExcursionBookingService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ExcursionID <= 0 {
		return fmt.Errorf("%w: excursionID must be positive", ErrInvalidInput)
	}

	if req.PeopleCount < domain.MinPeopleCount || req.PeopleCount > domain.MaxPeopleCount {
		return fmt.Errorf("%w: peopleCount must be between %d and %d",
			ErrInvalidInput, domain.MinPeopleCount, domain.MaxPeopleCount)
	}

	if req.Notes != nil && len(*req.Notes) > domain.MaxNotesLength {
		return fmt.Errorf("%w: notes must not exceed %d characters", ErrInvalidInput, domain.MaxNotesLength)
	}

	return nil
}
