package create_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/wildroute/ExcursionBookingService/internal/api/handlers"
	"github.com/wildroute/ExcursionBookingService/internal/api/middleware"
	createBooking "github.com/wildroute/ExcursionBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidExcursionID = "некорректный ID экскурсии"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgExcursionNotFound  = "экскурсия не найдена"
	msgExcursionInactive  = "экскурсия отменена или скрыта"
	msgUserNotFound       = "пользователь не найден"
	msgAlreadyBooked      = "у вас уже есть подтвержденная запись на эту экскурсию"
	msgInvalidInput       = "некорректные данные бронирования"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/excursions/{excursionId}/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	excursionID, err := strconv.ParseInt(vars["excursionId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /excursions/{id}/bookings - Invalid excursion ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidExcursionID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /excursions/{id}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /excursions/{id}/bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID, excursionID))
	if err != nil {
		switch {
		case errors.Is(err, createBooking.ErrExcursionNotFound):
			h.logger.Warn("POST /excursions/{id}/bookings - Excursion not found: excursion_id=%d", excursionID)
			handlers.RespondNotFound(w, msgExcursionNotFound)

		case errors.Is(err, createBooking.ErrExcursionInactive):
			h.logger.Warn("POST /excursions/{id}/bookings - Excursion inactive: excursion_id=%d", excursionID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgExcursionInactive)

		case errors.Is(err, createBooking.ErrUserNotFound):
			h.logger.Warn("POST /excursions/{id}/bookings - User not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgUserNotFound)

		case errors.Is(err, createBooking.ErrAlreadyBooked):
			h.logger.Warn("POST /excursions/{id}/bookings - Duplicate booking: user_id=%d, excursion_id=%d",
				userID, excursionID)
			handlers.RespondError(w, http.StatusConflict, msgAlreadyBooked)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /excursions/{id}/bookings - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /excursions/{id}/bookings - Failed to create booking: user_id=%d, excursion_id=%d, error=%v",
				userID, excursionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /excursions/{id}/bookings - Booking created: booking_id=%d, user_id=%d, status=%s",
		result.ID, userID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
