package delete_addon

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/service/fleet"
)

const (
	msgInvalidAddonID = "некорректный ID услуги"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgForbidden      = "доступ разрешен только сотрудникам"
	msgAddonNotFound  = "услуга не найдена"
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

// Handle DELETE /api/v1/fleet/addons/{addonId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	addonID, err := strconv.ParseInt(vars["addonId"], 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /fleet/addons/{id} - Invalid addon ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAddonID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /fleet/addons/{id} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	if err := h.service.DeleteAddon(r.Context(), addonID, userID); err != nil {
		switch {
		case errors.Is(err, fleet.ErrAccessDenied):
			h.logger.Warn("DELETE /fleet/addons/{id} - Access denied: addon_id=%d, user_id=%d", addonID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, fleet.ErrAddonNotFound):
			h.logger.Warn("DELETE /fleet/addons/{id} - Addon not found: addon_id=%d", addonID)
			handlers.RespondNotFound(w, msgAddonNotFound)

		default:
			h.logger.Error("DELETE /fleet/addons/{id} - Failed to delete addon: addon_id=%d, error=%v", addonID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /fleet/addons/{id} - Addon deleted: addon_id=%d, user_id=%d", addonID, userID)
	w.WriteHeader(http.StatusNoContent)
}
