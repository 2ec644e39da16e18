package get_excursion_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wildroute/ExcursionBookingService/internal/api/handlers"
	"github.com/wildroute/ExcursionBookingService/internal/api/middleware"
	"github.com/wildroute/ExcursionBookingService/internal/service/bookings"
	"github.com/wildroute/ExcursionBookingService/internal/service/bookings/models"
)

const (
	msgInvalidExcursionID = "некорректный ID экскурсии"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgExcursionNotFound  = "экскурсия не найдена"
	msgForbidden          = "доступ запрещен"
	msgInvalidStatus      = "некорректный статус бронирования"
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

// Handle GET /api/v1/excursions/{excursionId}/bookings?status=&includeCancelled=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	excursionID, err := strconv.ParseInt(vars["excursionId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /excursions/{id}/bookings - Invalid excursion ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExcursionID)
		return
	}

	actingUserID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /excursions/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.GetExcursionBookingsRequest{
		ExcursionID:      excursionID,
		ActingUserID:     actingUserID,
		IncludeCancelled: r.URL.Query().Get("includeCancelled") == "true",
	}
	if status := r.URL.Query().Get("status"); status != "" {
		req.Status = &status
	}

	result, err := h.service.GetExcursionBookings(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrExcursionNotFound):
			h.logger.Warn("GET /excursions/{id}/bookings - Excursion not found: excursion_id=%d", excursionID)
			handlers.RespondNotFound(w, msgExcursionNotFound)

		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /excursions/{id}/bookings - Access denied: excursion_id=%d, user_id=%d",
				excursionID, actingUserID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /excursions/{id}/bookings - Invalid status filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)

		default:
			h.logger.Error("GET /excursions/{id}/bookings - Failed to get bookings: excursion_id=%d, error=%v",
				excursionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /excursions/{id}/bookings - Retrieved %d bookings: excursion_id=%d",
		result.Total, excursionID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
