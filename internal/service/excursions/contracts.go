package excursions

import (
	"context"

	"github.com/wildroute/ExcursionBookingService/internal/domain"
	"github.com/wildroute/ExcursionBookingService/internal/integrations/userservice"
)

// ExcursionRepository интерфейс репозитория экскурсий
type ExcursionRepository interface {
	Create(ctx context.Context, excursion *domain.Excursion) (*domain.Excursion, error)
	GetByID(ctx context.Context, id int64) (*domain.Excursion, error)
	ListActive(ctx context.Context) ([]*domain.Excursion, error)
	Update(ctx context.Context, excursion *domain.Excursion) (*domain.Excursion, error)
	SoftDelete(ctx context.Context, id int64) error
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
