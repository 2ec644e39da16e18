package get_booking_stats

import (
	"context"

	"github.com/wildroute/ExcursionBookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetBookingStats(ctx context.Context, excursionID int64) (*models.BookingStatsResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
