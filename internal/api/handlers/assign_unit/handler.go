package assign_unit

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	assignUnit "github.com/m04kA/SMC-RentalService/internal/usecase/assign_unit"
	"github.com/m04kA/SMC-RentalService/pkg/txmanager"
)

const (
	msgInvalidReservationID = "некорректный ID резервации"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgReservationNotFound  = "резервация не найдена"
	msgUnitNotFound         = "автомобиль не найден"
	msgInvalidTransition    = "резервация не ожидает выдачи"
	msgUnitUnavailable      = "автомобиль недоступен для этой резервации"
	msgAddonNotFound        = "дополнительная услуга не найдена"
	msgForbidden            = "доступ запрещен"
	msgInvalidInput         = "некорректные данные запроса"
	msgConflict             = "не удалось выдать автомобиль, попробуйте снова"
)

type Handler struct {
	useCase AssignUnitUseCase
	logger  Logger
}

func NewHandler(useCase AssignUnitUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/reservations/{reservationId}/assign
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	reservationID, err := strconv.ParseInt(vars["reservationId"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reservations/{id}/assign - Invalid reservation ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidReservationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /reservations/{id}/assign - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req AssignUnitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reservations/{id}/assign - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &assignUnit.Request{
		UserID:        userID,
		ReservationID: reservationID,
		Plate:         req.Plate,
		AddonIDs:      req.AddonIDs,
	})
	if err != nil {
		switch {
		case errors.Is(err, assignUnit.ErrReservationNotFound):
			h.logger.Warn("PATCH /reservations/{id}/assign - Reservation not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgReservationNotFound)

		case errors.Is(err, assignUnit.ErrUnitNotFound):
			h.logger.Warn("PATCH /reservations/{id}/assign - Unit not found: plate=%s", req.Plate)
			handlers.RespondNotFound(w, msgUnitNotFound)

		case errors.Is(err, assignUnit.ErrInvalidTransition):
			h.logger.Warn("PATCH /reservations/{id}/assign - Invalid transition: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgInvalidTransition)

		case errors.Is(err, assignUnit.ErrUnitUnavailable):
			h.logger.Warn("PATCH /reservations/{id}/assign - Unit unavailable: reservation_id=%d, plate=%s", reservationID, req.Plate)
			handlers.RespondConflict(w, msgUnitUnavailable)

		case errors.Is(err, txmanager.ErrSerializationFailure):
			h.logger.Warn("PATCH /reservations/{id}/assign - Serialization conflict: reservation_id=%d", reservationID)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, assignUnit.ErrAddonNotFound):
			h.logger.Warn("PATCH /reservations/{id}/assign - Addon not found: reservation_id=%d", reservationID)
			handlers.RespondNotFound(w, msgAddonNotFound)

		case errors.Is(err, assignUnit.ErrAccessDenied):
			h.logger.Warn("PATCH /reservations/{id}/assign - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, assignUnit.ErrInvalidInput):
			h.logger.Warn("PATCH /reservations/{id}/assign - Invalid input: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /reservations/{id}/assign - Failed to assign unit: reservation_id=%d, error=%v", reservationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reservations/{id}/assign - Unit assigned: reservation_id=%d, plate=%s, total=%s",
		result.ID, result.AssignedPlate, result.Total)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
