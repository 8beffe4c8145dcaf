package update_unit_state

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/fleet"
	"github.com/m04kA/SMC-RentalService/internal/service/fleet/models"
)

const (
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgForbidden             = "доступ разрешен только сотрудникам"
	msgUnitNotFound          = "автомобиль не найден"
	msgUnitDecommissioned    = "автомобиль выведен из эксплуатации"
	msgUnitHasReservations   = "у автомобиля есть резервации, вывод из эксплуатации невозможен"
	msgUnitHasPendingRentals = "автомобиль назначен на ожидающие резервации"
	msgInvalidInput          = "некорректные данные запроса"
)

type Handler struct {
	service FleetService
	logger  Logger
}

func NewHandler(service FleetService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/fleet/units/{plate}/state
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	plate := vars["plate"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /fleet/units/{plate}/state - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdateUnitStateRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /fleet/units/{plate}/state - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.UpdateUnitState(r.Context(), plate, &req)
	if err != nil {
		switch {
		case errors.Is(err, fleet.ErrAccessDenied):
			h.logger.Warn("PATCH /fleet/units/{plate}/state - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, fleet.ErrUnitNotFound):
			h.logger.Warn("PATCH /fleet/units/{plate}/state - Unit not found: plate=%s", plate)
			handlers.RespondNotFound(w, msgUnitNotFound)

		case errors.Is(err, fleet.ErrUnitDecommissioned):
			h.logger.Warn("PATCH /fleet/units/{plate}/state - Unit decommissioned: plate=%s", plate)
			handlers.RespondConflict(w, msgUnitDecommissioned)

		case errors.Is(err, fleet.ErrUnitHasReservations):
			h.logger.Warn("PATCH /fleet/units/{plate}/state - Unit has reservations: plate=%s", plate)
			handlers.RespondConflict(w, msgUnitHasReservations)

		case errors.Is(err, fleet.ErrUnitHasPendingReservations):
			h.logger.Warn("PATCH /fleet/units/{plate}/state - Unit has pending reservations: plate=%s", plate)
			handlers.RespondConflict(w, msgUnitHasPendingRentals)

		case errors.Is(err, fleet.ErrInvalidInput):
			h.logger.Warn("PATCH /fleet/units/{plate}/state - Invalid input: plate=%s, error=%v", plate, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("PATCH /fleet/units/{plate}/state - Failed to update unit state: plate=%s, error=%v", plate, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /fleet/units/{plate}/state - Unit state updated: plate=%s, state=%s", result.Plate, result.State)
	handlers.RespondJSON(w, http.StatusOK, result)
}
