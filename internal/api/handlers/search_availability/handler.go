package search_availability

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	searchAvailability "github.com/m04kA/SMC-RentalService/internal/usecase/search_availability"
)

const (
	msgInvalidBranchID = "некорректный ID филиала"
	msgInvalidDates    = "некорректный период, ожидается start и end в формате YYYY-MM-DD"
	msgInvalidRange    = "некорректный период аренды"
	msgBranchNotFound  = "филиал не найден"
)

type Handler struct {
	useCase SearchAvailabilityUseCase
	logger  Logger
}

func NewHandler(useCase SearchAvailabilityUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/branches/{branchId}/availability?start=YYYY-MM-DD&end=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	branchID, err := strconv.ParseInt(vars["branchId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /branches/{id}/availability - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	startDate, err := time.ParseInLocation(domain.DateFormat, r.URL.Query().Get("start"), domain.RentalLocation)
	if err != nil {
		h.logger.Warn("GET /branches/{id}/availability - Invalid start date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	endDate, err := time.ParseInLocation(domain.DateFormat, r.URL.Query().Get("end"), domain.RentalLocation)
	if err != nil {
		h.logger.Warn("GET /branches/{id}/availability - Invalid end date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &searchAvailability.Request{
		BranchID:  branchID,
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		switch {
		case errors.Is(err, searchAvailability.ErrBranchNotFound):
			h.logger.Warn("GET /branches/{id}/availability - Branch not found: branch_id=%d", branchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, searchAvailability.ErrInvalidInput):
			h.logger.Warn("GET /branches/{id}/availability - Invalid range: branch_id=%d, error=%v", branchID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET /branches/{id}/availability - Failed to search: branch_id=%d, error=%v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /branches/{id}/availability - Found %d models: branch_id=%d", len(result.Models), branchID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
