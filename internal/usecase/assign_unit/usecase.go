package assign_unit

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	reservationRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/reservation"
	unitRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/unit"
)

// UseCase use case для выдачи автомобиля по резервации (pending -> delivered)
type UseCase struct {
	reservationRepo ReservationRepository
	unitRepo        UnitRepository
	addonRepo       AddonRepository
	userClient      UserServiceClient
	txManager       TransactionManager
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	unitRepo UnitRepository,
	addonRepo AddonRepository,
	userClient UserServiceClient,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		unitRepo:        unitRepo,
		addonRepo:       addonRepo,
		userClient:      userClient,
		txManager:       txManager,
		logger:          logger,
	}
}

// Execute выполняет use case выдачи автомобиля.
// Доступность автомобиля перепроверяется внутри сериализуемой транзакции
// с блокировкой строк, чтобы закрыть гонку между поиском и подтверждением.
// Переход выполняется целиком или не выполняется вовсе.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("AssignUnit: reservation=%d, plate=%s, addons=%v, user=%d",
		req.ReservationID, req.Plate, req.AddonIDs, req.UserID)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("AssignUnit: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем права сотрудника
	if err := uc.checkEmployeeAccess(ctx, req.UserID); err != nil {
		return nil, err
	}

	plate := domain.NormalizePlate(req.Plate)
	addonIDs := dedupeAddonIDs(req.AddonIDs)

	var result *domain.Reservation

	// 3. Все проверки и мутации идут в одной сериализуемой транзакции
	err := uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 3.1. Резервация с блокировкой строки
		res, err := uc.reservationRepo.GetByID(txCtx, req.ReservationID)
		if err != nil {
			if errors.Is(err, reservationRepo.ErrReservationNotFound) {
				return ErrReservationNotFound
			}
			return fmt.Errorf("%w: failed to get reservation: %v", ErrInternal, err)
		}

		// Допустимость перехода решает машина состояний домена
		if err := res.Transition(domain.StateDelivered); err != nil {
			uc.logger.Warn("AssignUnit: reservation id=%d is in state=%s", res.ID, res.State)
			return ErrInvalidTransition
		}

		// 3.2. Автомобиль с блокировкой строки
		unit, err := uc.unitRepo.GetByPlate(txCtx, plate)
		if err != nil {
			if errors.Is(err, unitRepo.ErrUnitNotFound) {
				return ErrUnitNotFound
			}
			return fmt.Errorf("%w: failed to get unit: %v", ErrInternal, err)
		}

		if err := validateUnitForReservation(unit, res); err != nil {
			uc.logger.Warn("AssignUnit: unit plate=%s failed validation for reservation id=%d", plate, res.ID)
			return err
		}

		// 3.3. Перепроверяем занятость автомобиля на период резервации
		conflicts, err := uc.reservationRepo.ListBlockingByPlate(txCtx, plate, res.Period, res.ID)
		if err != nil {
			return fmt.Errorf("%w: failed to check conflicts: %v", ErrInternal, err)
		}
		if len(conflicts) > 0 {
			uc.logger.Warn("AssignUnit: unit plate=%s is blocked by %d overlapping reservations", plate, len(conflicts))
			return ErrUnitUnavailable
		}

		// 3.4. Услуги: все должны существовать и быть активными
		addons, err := uc.addonRepo.GetByIDs(txCtx, addonIDs)
		if err != nil {
			return fmt.Errorf("%w: failed to get addons: %v", ErrInternal, err)
		}
		if len(addons) != len(addonIDs) {
			return ErrAddonNotFound
		}
		for _, addon := range addons {
			if addon.Deleted {
				return ErrAddonNotFound
			}
		}

		// 3.5. Пересчитываем стоимость услуг на полный период аренды
		addonsTotal := domain.AddonsTotal(addons, res.Period)

		// 3.6. Переводим резервацию в delivered
		if err := uc.reservationRepo.UpdateDelivery(txCtx, res.ID, plate, res.BaseTotal, addonsTotal); err != nil {
			if errors.Is(err, reservationRepo.ErrStateConflict) {
				return ErrInvalidTransition
			}
			return fmt.Errorf("%w: failed to update reservation: %v", ErrInternal, err)
		}

		// 3.7. Заменяем состав услуг
		if err := uc.reservationRepo.ReplaceAddons(txCtx, res.ID, addonIDs); err != nil {
			return fmt.Errorf("%w: failed to replace addons: %v", ErrInternal, err)
		}

		res.AssignedPlate = &plate
		res.AddonsTotal = addonsTotal
		res.OriginalTotal = res.BaseTotal.Add(addonsTotal)
		result = res
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("AssignUnit: successfully delivered reservation id=%d with unit plate=%s, total=%s",
		result.ID, plate, result.CurrentTotal().StringFixed(2))

	return toResponse(result, addonIDs), nil
}

// checkEmployeeAccess проверяет, что пользователь является сотрудником
func (uc *UseCase) checkEmployeeAccess(ctx context.Context, userID int64) error {
	user, err := uc.userClient.GetUserWithGracefulDegradation(ctx, userID)
	if err != nil {
		uc.logger.Warn("AssignUnit: failed to get user=%d: %v", userID, err)
		return ErrAccessDenied
	}

	if !user.IsEmployee() {
		uc.logger.Warn("AssignUnit: user=%d is not an employee", userID)
		return ErrAccessDenied
	}

	return nil
}
