package create_excursion

import (
	"context"

	"github.com/wildroute/ExcursionBookingService/internal/service/excursions/models"
)

type ExcursionService interface {
	Create(ctx context.Context, req *models.CreateExcursionRequest) (*models.ExcursionResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
