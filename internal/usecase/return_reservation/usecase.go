package return_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/reservation"
)

// UseCase use case для возврата автомобиля (delivered -> returned)
type UseCase struct {
	reservationRepo ReservationRepository
	userClient      UserServiceClient
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	userClient UserServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		userClient:      userClient,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case возврата автомобиля.
// Суммы не пересчитываются: ранний или поздний возврат не меняет стоимость.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("ReturnReservation: reservation=%d, user=%d", req.ReservationID, req.UserID)

	// 1. Валидация входных данных
	if req.UserID <= 0 {
		return nil, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}
	if req.ReservationID <= 0 {
		return nil, fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	// 2. Проверяем права сотрудника
	if err := uc.checkEmployeeAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	returnedAt := uc.timeProvider.Now()

	var result *domain.Reservation

	// 3. Перечитываем резервацию под блокировкой и завершаем аренду
	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		res, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		// Допустимость перехода решает машина состояний домена
		if err := res.Transition(domain.StateReturned); err != nil {
			uc.logger.Warn("ReturnReservation: reservation id=%d is in state=%s", res.ID, res.State)
			return ErrInvalidTransition
		}

		if err := uc.reservationRepo.UpdateReturn(txCtx, res.ID, returnedAt); err != nil {
			if errors.Is(err, reservationRepo.ErrStateConflict) {
				return ErrInvalidTransition
			}
			return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
		}

		res.ReturnedAt = &returnedAt
		result = res
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("ReturnReservation: successfully returned reservation id=%d at %s",
		result.ID, returnedAt.Format("2006-01-02 15:04:05"))

	return toResponse(result), nil
}

// checkEmployeeAccess проверяет, что пользователь является сотрудником
func (uc *UseCase) checkEmployeeAccess(ctx context.Context, userID int64) error {
	user, err := uc.userClient.GetUserWithGracefulDegradation(ctx, userID)
	if err != nil {
		uc.logger.Warn("ReturnReservation: failed to get user=%d: %v", userID, err)
		return ErrAccessDenied
	}

	if !user.IsEmployee() {
		uc.logger.Warn("ReturnReservation: user=%d is not an employee", userID)
		return ErrAccessDenied
	}

	return nil
}
