package get_booking_stats

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wildroute/ExcursionBookingService/internal/api/handlers"
	"github.com/wildroute/ExcursionBookingService/internal/service/bookings"
)

const (
	msgInvalidExcursionID = "некорректный ID экскурсии"
	msgExcursionNotFound  = "экскурсия не найдена"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/excursions/{excursionId}/stats
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	excursionID, err := strconv.ParseInt(vars["excursionId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /excursions/{id}/stats - Invalid excursion ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExcursionID)
		return
	}

	stats, err := h.service.GetBookingStats(r.Context(), excursionID)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrExcursionNotFound):
			h.logger.Warn("GET /excursions/{id}/stats - Excursion not found: excursion_id=%d", excursionID)
			handlers.RespondNotFound(w, msgExcursionNotFound)

		default:
			h.logger.Error("GET /excursions/{id}/stats - Failed to get stats: excursion_id=%d, error=%v",
				excursionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /excursions/{id}/stats - Stats retrieved: excursion_id=%d", excursionID)
	handlers.RespondJSON(w, http.StatusOK, stats)
}
