package list_addons

import (
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
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

// Handle GET /api/v1/fleet/addons
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.ListAddons(r.Context())
	if err != nil {
		h.logger.Error("GET /fleet/addons - Failed to list addons: error=%v", err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /fleet/addons - Addons retrieved: count=%d", len(result.Addons))
	handlers.RespondJSON(w, http.StatusOK, result)
}
