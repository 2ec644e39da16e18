package cancel_booking

import (
	"context"

	"github.com/wildroute/ExcursionBookingService/internal/domain"
	"github.com/wildroute/ExcursionBookingService/internal/integrations/userservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64) error
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

// ReservePromoter интерфейс прохода повышения из резерва
type ReservePromoter interface {
	Execute(ctx context.Context, excursionID int64) error
}

// Notifier интерфейс отправки уведомлений об отмене
type Notifier interface {
	ParticipantCancelled(participantID int64, excursionTitle string)
	GuideCancellation(guideID, participantID int64, excursionTitle string)
	AdminsCancellation(participantID int64, excursionTitle string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
