package promote_reserve

import (
	"context"

	"github.com/wildroute/ExcursionBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByExcursion(ctx context.Context, excursionID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	SumConfirmedPeople(ctx context.Context, excursionID int64) (int, error)
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
}

// ExcursionRepository интерфейс репозитория экскурсий
type ExcursionRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Excursion, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Notifier интерфейс отправки уведомлений о повышении из резерва
type Notifier interface {
	ParticipantPromoted(participantID int64, excursionTitle string)
	GuideNewBooking(guideID, participantID int64, excursionTitle string, peopleCount int, status domain.BookingStatus)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
