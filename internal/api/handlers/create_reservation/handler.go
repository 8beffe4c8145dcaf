package create_reservation

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-RentalService/internal/api/handlers"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	createReservation "github.com/m04kA/SMC-RentalService/internal/usecase/create_reservation"
	"github.com/m04kA/SMC-RentalService/pkg/txmanager"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgModelNotFound      = "модель не найдена"
	msgBranchNotFound     = "филиал не найден"
	msgNoAvailability     = "нет свободных автомобилей на выбранный период"
	msgDateInPast         = "дата начала аренды уже прошла"
	msgInvalidInput       = "некорректные данные резервации"
	msgConflict           = "не удалось создать резервацию, попробуйте снова"
)

type Handler struct {
	useCase CreateReservationUseCase
	logger  Logger
}

func NewHandler(useCase CreateReservationUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/reservations
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /reservations - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateReservationRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /reservations - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /reservations - Failed to parse dates: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createReservation.ErrInsufficientAvailability):
			h.logger.Warn("POST /reservations - No availability: user_id=%d, model_id=%d", userID, req.ModelID)
			handlers.RespondConflict(w, msgNoAvailability)

		case errors.Is(err, txmanager.ErrSerializationFailure):
			h.logger.Warn("POST /reservations - Serialization conflict: user_id=%d, model_id=%d", userID, req.ModelID)
			handlers.RespondConflict(w, msgConflict)

		case errors.Is(err, createReservation.ErrModelNotFound):
			h.logger.Warn("POST /reservations - Model not found: model_id=%d", req.ModelID)
			handlers.RespondNotFound(w, msgModelNotFound)

		case errors.Is(err, createReservation.ErrBranchNotFound):
			h.logger.Warn("POST /reservations - Branch not found: branch_id=%d", req.BranchID)
			handlers.RespondNotFound(w, msgBranchNotFound)

		case errors.Is(err, createReservation.ErrDateInPast):
			h.logger.Warn("POST /reservations - Start date in past: user_id=%d", userID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createReservation.ErrInvalidInput):
			h.logger.Warn("POST /reservations - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		default:
			h.logger.Error("POST /reservations - Failed to create reservation: user_id=%d, error=%v", userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /reservations - Reservation created: reservation_id=%d, user_id=%d, total=%s",
		result.ID, userID, result.Total)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
