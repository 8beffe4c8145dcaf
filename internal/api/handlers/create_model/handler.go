package create_model

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
	msgDuplicateModel     = "модель с такими параметрами уже существует"
	msgInvalidInput       = "некорректные данные модели"
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

// Handle POST /api/v1/fleet/models
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /fleet/models - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateModelRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /fleet/models - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.CreateModel(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, fleet.ErrAccessDenied):
			h.logger.Warn("POST /fleet/models - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, fleet.ErrDuplicateModel):
			h.logger.Warn("POST /fleet/models - Duplicate model: brand=%s, model=%s", req.Brand, req.Model)
			handlers.RespondConflict(w, msgDuplicateModel)

		case errors.Is(err, fleet.ErrInvalidInput):
			h.logger.Warn("POST /fleet/models - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /fleet/models - Failed to create model: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /fleet/models - Model created: model_id=%d, brand=%s, model=%s", result.ID, result.Brand, result.Model)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
