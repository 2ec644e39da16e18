package get_excursion_bookings

import (
	"context"

	"github.com/wildroute/ExcursionBookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetExcursionBookings(ctx context.Context, req *models.GetExcursionBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
