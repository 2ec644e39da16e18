package update_excursion

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
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidExcursionID = "некорректный ID экскурсии"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgNotFound           = "экскурсия не найдена"
	msgForbidden          = "доступ запрещен"
	msgInvalidInput       = "некорректные данные экскурсии"
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

// Handle PATCH /api/v1/excursions/{excursionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	excursionID, err := strconv.ParseInt(vars["excursionId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /excursions/{id} - Invalid excursion ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExcursionID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /excursions/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateExcursionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /excursions/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Update(r.Context(), req.ToServiceRequest(excursionID, userID))
	if err != nil {
		switch {
		case errors.Is(err, excursions.ErrExcursionNotFound):
			h.logger.Warn("PATCH /excursions/{id} - Excursion not found: excursion_id=%d", excursionID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, excursions.ErrAccessDenied):
			h.logger.Warn("PATCH /excursions/{id} - Access denied: excursion_id=%d, user_id=%d",
				excursionID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, excursions.ErrInvalidInput):
			h.logger.Warn("PATCH /excursions/{id} - Invalid input: excursion_id=%d, error=%v", excursionID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /excursions/{id} - Failed to update excursion: excursion_id=%d, error=%v",
				excursionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /excursions/{id} - Excursion updated: excursion_id=%d, user_id=%d", excursionID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
