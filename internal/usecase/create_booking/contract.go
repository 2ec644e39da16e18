package create_booking

import (
	"context"

	"github.com/wildroute/ExcursionBookingService/internal/domain"
	"github.com/wildroute/ExcursionBookingService/internal/integrations/userservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	SumConfirmedPeople(ctx context.Context, excursionID int64) (int, error)
	FindConfirmedByUserAndExcursion(ctx context.Context, userID, excursionID int64) (*domain.Booking, error)
}

// ExcursionRepository интерфейс репозитория экскурсий
type ExcursionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Excursion, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUser(ctx context.Context, userID int64) (*userservice.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс отправки уведомлений о новом бронировании
type Notifier interface {
	ParticipantBooked(participantID int64, excursionTitle string, status domain.BookingStatus, peopleCount int)
	GuideNewBooking(guideID, participantID int64, excursionTitle string, peopleCount int, status domain.BookingStatus)
	AdminsNewBooking(participantID int64, excursionTitle string, peopleCount int)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
