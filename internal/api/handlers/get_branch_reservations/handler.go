package get_branch_reservations

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/service/reservations"
	"github.com/m04kA/SMC-RentalService/internal/service/reservations/models"
)

const (
	msgInvalidBranchID  = "некорректный ID филиала"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgForbidden        = "доступ разрешен только сотрудникам"
	msgInvalidStartDate = "некорректная дата начала периода, ожидается формат YYYY-MM-DD"
	msgInvalidEndDate   = "некорректная дата конца периода, ожидается формат YYYY-MM-DD"
	msgInvalidInput     = "некорректные параметры запроса"
)

type Handler struct {
	service ReservationService
	logger  Logger
}

func NewHandler(service ReservationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/branches/{branchId}/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	branchID, err := strconv.ParseInt(vars["branchId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /branches/{id}/reservations - Invalid branch ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBranchID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /branches/{id}/reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.GetBranchReservationsRequest{
		UserID:   userID,
		BranchID: branchID,
	}

	query := r.URL.Query()

	if raw := query.Get("start"); raw != "" {
		start, err := time.ParseInLocation(domain.DateFormat, raw, domain.RentalLocation)
		if err != nil {
			h.logger.Warn("GET /branches/{id}/reservations - Invalid start date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStartDate)
			return
		}
		req.StartDate = &start
	}

	if raw := query.Get("end"); raw != "" {
		end, err := time.ParseInLocation(domain.DateFormat, raw, domain.RentalLocation)
		if err != nil {
			h.logger.Warn("GET /branches/{id}/reservations - Invalid end date: %v", err)
			handlers.RespondBadRequest(w, msgInvalidEndDate)
			return
		}
		req.EndDate = &end
	}

	if state := query.Get("state"); state != "" {
		req.State = &state
	}

	if query.Get("includeInactive") == "true" {
		req.IncludeInactive = true
	}

	result, err := h.service.GetBranchReservations(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, reservations.ErrAccessDenied):
			h.logger.Warn("GET /branches/{id}/reservations - Access denied: branch_id=%d, user_id=%d", branchID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, reservations.ErrInvalidInput):
			h.logger.Warn("GET /branches/{id}/reservations - Invalid input: branch_id=%d, error=%v", branchID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("GET /branches/{id}/reservations - Failed to get reservations: branch_id=%d, error=%v", branchID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /branches/{id}/reservations - Reservations retrieved: branch_id=%d, user_id=%d, count=%d",
		branchID, userID, len(result.Reservations))
	handlers.RespondJSON(w, http.StatusOK, result)
}
