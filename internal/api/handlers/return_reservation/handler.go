package return_reservation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	returnReservation "github.com/m04kA/SMC-RentalService/internal/usecase/return_reservation"
)

const (
	msgInvalidReservationID = "некорректный ID резервации"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgReservationNotFound  = "резервация не найдена"
	msgInvalidTransition    = "резервация не находится в аренде"
	msgForbidden            = "доступ разрешен только сотрудникам"
	msgInvalidInput         = "некорректные данные запроса"
)

type Handler struct {
	useCase ReturnReservationUseCase
	logger  Logger
}

func NewHandler(useCase ReturnReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/return
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/return - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/return - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &returnReservation.Request{
		UserID:        userID,
		ReservationID: reservationID,
	})
	if err != nil {
		switch {
		case errors.Is(err, returnReservation.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/return - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, returnReservation.ErrInvalidTransition):
			h.logger.Warn("PATCH /reservations/{id}/return - Invalid transition: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, returnReservation.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id}/return - Access denied: reservation_id=%d, user_id=%d", reservationID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, returnReservation.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id}/return - Invalid input: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /reservations/{id}/return - Failed to return reservation: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/return - Reservation completed: reservation_id=%d, returned_at=%s",
		result.ID, result.ReturnedAt)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
