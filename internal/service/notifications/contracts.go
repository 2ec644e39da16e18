package notifications

import (
	"context"

	"github.com/wildroute/ExcursionBookingService/internal/integrations/userservice"
)

// UserProvider интерфейс получения адресатов уведомлений
type UserProvider interface {
	GetUser(ctx context.Context, userID int64) (*userservice.User, error)
	GetAdmins(ctx context.Context) ([]userservice.User, error)
}

// MessageSender интерфейс доставки сообщений через чат-бота
type MessageSender interface {
	SendMessage(ctx context.Context, chatID int64, text string) error
}

// MetricsCollector интерфейс метрик диспетчера (может быть nil)
type MetricsCollector interface {
	NotificationEnqueued(kind string)
	NotificationDropped()
	NotificationFailed()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
