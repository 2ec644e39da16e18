package bookings

import (
	"context"

	"github.com/wildroute/ExcursionBookingService/internal/domain"
	"github.com/wildroute/ExcursionBookingService/internal/integrations/userservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByUserID(ctx context.Context, userID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByExcursion(ctx context.Context, excursionID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
}

// ExcursionRepository интерфейс репозитория экскурсий
type ExcursionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Excursion, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUser(ctx context.Context, userID int64) (*userservice.User, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
