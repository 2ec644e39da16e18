package delete_excursion

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wildroute/ExcursionBookingService/internal/api/handlers"
	"github.com/wildroute/ExcursionBookingService/internal/api/middleware"
	"github.com/wildroute/ExcursionBookingService/internal/service/excursions"
)

const (
	msgInvalidExcursionID = "некорректный ID экскурсии"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "экскурсия не найдена"
	msgForbidden          = "доступ запрещен"
)

type Handler struct {
	service ExcursionService
	logger  Logger
}

func NewHandler(service ExcursionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/excursions/{excursionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	excursionID, err := strconv.ParseInt(vars["excursionId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /excursions/{id} - Invalid excursion ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExcursionID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /excursions/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.SoftDelete(r.Context(), excursionID, userID); err != nil {
		switch {
		case errors.Is(err, excursions.ErrExcursionNotFound):
			h.logger.Warn("DELETE /excursions/{id} - Excursion not found: excursion_id=%d", excursionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, excursions.ErrAccessDenied):
			h.logger.Warn("DELETE /excursions/{id} - Access denied: excursion_id=%d, user_id=%d",
				excursionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /excursions/{id} - Failed to delete excursion: excursion_id=%d, error=%v",
				excursionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /excursions/{id} - Excursion deleted: excursion_id=%d, user_id=%d",
		excursionID, userID)
	handlers.RespondJSON(w, http.StatusNoContent, nil)
}
