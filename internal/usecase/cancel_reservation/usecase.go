package cancel_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/reservation"
	modelRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/vehiclemodel"
)

// UseCase use case для отмены резервации (pending -> cancelled)
type UseCase struct {
	reservationRepo ReservationRepository
	modelRepo       ModelRepository
	userClient      UserServiceClient
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	modelRepo ModelRepository,
	userClient UserServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		modelRepo:       modelRepo,
		userClient:      userClient,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case отмены резервации.
// Суммы пересчитываются по политике отмены модели, исходная сумма
// сохраняется. Отмена после выдачи автомобиля запрещена и не меняет
// состояние резервации.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelReservation: reservation=%d, user=%d", req.ReservationID, req.UserID)

	// 1. Валидация входных данных
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.ReservationID <= 0 {
		return nil, fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	// 2. Проверяем права доступа до открытия транзакции:
	// проверка ходит во внешний сервис
	reservation, err := uc.reservationRepo.GetByID(ctx, req.ReservationID)
	if err != nil {
		if errors.Is(err, reservationRepo.ErrReservationNotFound) {
			uc.logger.Warn("CancelReservation: reservation id=%d not found", req.ReservationID)
			return nil, ErrReservationNotFound
		}
		uc.logger.Error("CancelReservation: failed to get reservation id=%d: %v", req.ReservationID, err)
		return nil, fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
	}

	if err := uc.checkUserAccess(ctx, reservation, req.UserID); err != nil {
		uc.logger.Warn("CancelReservation: access denied for user=%d to reservation id=%d", req.UserID, req.ReservationID)
		return nil, err
	}

	// 3. Получаем политику отмены модели
	model, err := uc.modelRepo.GetByID(ctx, reservation.ModelID)
	if err != nil {
		if errors.Is(err, modelRepo.ErrModelNotFound) {
			uc.logger.Error("CancelReservation: model id=%d missing for reservation id=%d", reservation.ModelID, reservation.ID)
			return nil, fmt.Errorf("%w: reservation references missing model", ErrInternal)
		}
		uc.logger.Error("CancelReservation: failed to get model id=%d: %v", reservation.ModelID, err)
		return nil, fmt.Errorf("%w: failed to get model: %v", ErrInternal, err)
	}

	var result *domain.Reservation

	// 4. Перечитываем резервацию под блокировкой и отменяем
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		res, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		// Допустимость перехода решает машина состояний домена
		if err := res.Transition(domain.StateCancelled); err != nil {
			uc.logger.Warn("CancelReservation: reservation id=%d is in state=%s", res.ID, res.State)
			return ErrInvalidTransition
		}

		// Применяем политику возврата к текущим суммам
		newBase, newAddons, err := model.Policy.ApplyRefund(res.BaseTotal, res.AddonsTotal)
		if err != nil {
			uc.logger.Error("CancelReservation: model id=%d has invalid policy: %v", model.ID, err)
			return fmt.Errorf("%w: apply refund policy: %v", ErrInternal, err)
		}

		if err := uc.reservationRepo.UpdateCancellation(txCtx, res.ID, newBase, newAddons); err != nil {
			if errors.Is(err, reservationRepo.ErrStateConflict) {
				return ErrInvalidTransition
			}
			return fmt.Errorf("%w: failed to cancel reservation: %v", ErrInternal, err)
		}

		res.BaseTotal = newBase
		res.AddonsTotal = newAddons
		result = res
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CancelReservation: successfully cancelled reservation id=%d, policy=%s, total=%s",
		result.ID, model.Policy.Kind(), result.CurrentTotal().StringFixed(2))

	return toResponse(result, model.Policy.Kind()), nil
}

// checkUserAccess проверяет, что пользователь владелец резервации или сотрудник
func (uc *UseCase) checkUserAccess(ctx context.Context, res *domain.Reservation, userID int64) error {
	if res.CustomerID == userID {
		return nil
	}

	user, err := uc.userClient.GetUserWithGracefulDegradation(ctx, userID)
	if err != nil {
		return ErrAccessDenied
	}
	if !user.IsEmployee() {
		return ErrAccessDenied
	}

	return nil
}
