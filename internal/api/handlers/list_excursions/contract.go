package list_excursions

import (
	"context"

	"github.com/wildroute/ExcursionBookingService/internal/service/excursions/models"
)

type ExcursionService interface {
	ListActive(ctx context.Context) (*models.ExcursionListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
