package create_addon

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
	msgDuplicateAddonName = "услуга с таким названием уже существует"
	msgInvalidInput       = "некорректные данные услуги"
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

// Handle POST /api/v1/fleet/addons
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /fleet/addons - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.CreateAddonRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /fleet/addons - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID

	result, err := h.service.CreateAddon(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, fleet.ErrAccessDenied):
			h.logger.Warn("POST /fleet/addons - Access denied: user_id=%d", userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, fleet.ErrDuplicateAddonName):
			h.logger.Warn("POST /fleet/addons - Duplicate addon name: name=%s", req.Name)
			handlers.RespondConflict(w, msgDuplicateAddonName)

		case errors.Is(err, fleet.ErrInvalidInput):
			h.logger.Warn("POST /fleet/addons - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /fleet/addons - Failed to create addon: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /fleet/addons - Addon created: addon_id=%d, name=%s", result.ID, result.Name)
	handlers.RespondJSON(w, http.StatusCreated, result)
}
