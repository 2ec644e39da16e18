package get_excursion

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wildroute/ExcursionBookingService/internal/api/handlers"
	"github.com/wildroute/ExcursionBookingService/internal/service/excursions"
)

const (
	msgInvalidExcursionID = "некорректный ID экскурсии"
	msgNotFound           = "экскурсия не найдена"
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

// Handle GET /api/v1/excursions/{excursionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	excursionID, err := strconv.ParseInt(vars["excursionId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /excursions/{id} - Invalid excursion ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExcursionID)
		return
	}

	excursion, err := h.service.GetByID(r.Context(), excursionID)
	if err != nil {
		switch {
		case errors.Is(err, excursions.ErrExcursionNotFound):
			h.logger.Warn("GET /excursions/{id} - Excursion not found: excursion_id=%d", excursionID)
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /excursions/{id} - Failed to get excursion: excursion_id=%d, error=%v",
				excursionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, excursion)
}
