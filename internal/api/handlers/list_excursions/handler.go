package list_excursions

import (
	"net/http"

	"github.com/wildroute/ExcursionBookingService/internal/api/handlers"
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

// Handle GET /api/v1/excursions
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListActive(r.Context())
	if err != nil {
		h.logger.Error("GET /excursions - Failed to list excursions: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
