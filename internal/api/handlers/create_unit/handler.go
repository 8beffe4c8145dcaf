package create_unit

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/fleet"
	"github.com/m04kA/SMC-RentalService/internal/service/fleet/models"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "доступ разрешен только сотрудникам"
	msgDuplicatePlate     = "автомобиль с таким номером уже существует"
	msgModelNotFound      = "модель не найдена"
	msgBranchNotFound     = "филиал не найден"
	msgInvalidInput       = "некорректные данные автомобиля"
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

// Handle POST /api/v1/fleet/units
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /fleet/units - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateUnitRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /fleet/units - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.CreateUnit(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, fleet.ErrAccessDenied):
			h.logger.Warn("POST /fleet/units - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, fleet.ErrDuplicatePlate):
			h.logger.Warn("POST /fleet/units - Duplicate plate: plate=%s", req.Plate)
			handlers.RespondConflict(w, msgDuplicatePlate)

		case errors.Is(err, fleet.ErrModelNotFound):
			h.logger.Warn("POST /fleet/units - Model not found: plate=%s", req.Plate)
			handlers.RespondNotFound(w, msgModelNotFound)

		case errors.Is(err, fleet.ErrBranchNotFound):
			h.logger.Warn("POST /fleet/units - Branch not found: branch_id=%d", req.BranchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, fleet.ErrInvalidInput):
			h.logger.Warn("POST /fleet/units - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /fleet/units - Failed to create unit: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /fleet/units - Unit created: plate=%s, branch_id=%d", result.Plate, result.BranchID)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
