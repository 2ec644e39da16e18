package create_excursion

import (
	"errors"
	"net/http"

	"github.com/wildroute/ExcursionBookingService/internal/api/handlers"
	"github.com/wildroute/ExcursionBookingService/internal/api/middleware"
	"github.com/wildroute/ExcursionBookingService/internal/service/excursions"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "создавать экскурсии могут только гиды и администраторы"
	msgUserNotFound       = "пользователь не найден"
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

// Handle POST /api/v1/excursions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /excursions - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateExcursionRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /excursions - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Create(r.Context(), req.ToServiceRequest(userID))
	if err != nil {
		switch {
		case errors.Is(err, excursions.ErrAccessDenied):
			h.logger.Warn("POST /excursions - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, excursions.ErrUserNotFound):
			h.logger.Warn("POST /excursions - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, excursions.ErrInvalidInput):
			h.logger.Warn("POST /excursions - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /excursions - Failed to create excursion: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /excursions - Excursion created: excursion_id=%d, user_id=%d", result.ID, userID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
