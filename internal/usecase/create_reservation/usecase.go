package create_reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	branchRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/branch"
	modelRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/vehiclemodel"
)

// UseCase use case для создания резервации
type UseCase struct {
	reservationRepo ReservationRepository
	unitRepo        UnitRepository
	modelRepo       ModelRepository
	branchRepo      BranchRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	reservationRepo ReservationRepository,
	unitRepo UnitRepository,
	modelRepo ModelRepository,
	branchRepo BranchRepository,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		reservationRepo: reservationRepo,
		unitRepo:        unitRepo,
		modelRepo:       modelRepo,
		branchRepo:      branchRepo,
		txManager:       txManager,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case создания резервации
// Использует сериализуемую транзакцию для предотвращения гонки данных
// между проверкой доступности и созданием резервации
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateReservation: user=%d, model=%d, branch=%d, period=%s to %s",
		req.UserID, req.ModelID, req.BranchID,
		req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных
	now := uc.timeProvider.Now()
	period, err := validateRequest(req, now)
	if err != nil {
		uc.logger.Warn("CreateReservation: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование филиала
	if _, err := uc.branchRepo.GetByID(ctx, req.BranchID); err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			uc.logger.Warn("CreateReservation: branch id=%d not found", req.BranchID)
			return nil, ErrBranchNotFound
		}
		uc.logger.Error("CreateReservation: failed to get branch id=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to get branch: %v", ErrInternal, err)
	}

	// 3. Получаем модель с политикой отмены
	model, err := uc.modelRepo.GetByID(ctx, req.ModelID)
	if err != nil {
		if errors.Is(err, modelRepo.ErrModelNotFound) {
			uc.logger.Warn("CreateReservation: model id=%d not found", req.ModelID)
			return nil, ErrModelNotFound
		}
		uc.logger.Error("CreateReservation: failed to get model id=%d: %v", req.ModelID, err)
		return nil, fmt.Errorf("%w: failed to get model: %v", ErrInternal, err)
	}

	// 4. Базовая стоимость аренды
	baseTotal := domain.BaseTotal(model.DailyPrice, period)

	var result *domain.Reservation

	// 5. Проверка доступности и создание идут в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		units, err := uc.unitRepo.ListEnabledByBranch(txCtx, req.BranchID)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to list units: %v", err)
			return fmt.Errorf("%w: failed to list units: %v", ErrInternal, err)
		}

		blocking, err := uc.reservationRepo.ListBlockingByBranch(txCtx, req.BranchID, period)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to list blocking reservations: %v", err)
			return fmt.Errorf("%w: failed to list blocking reservations: %v", ErrInternal, err)
		}

		available := countModelAvailability(req.ModelID, units, blocking)
		if available < 1 {
			uc.logger.Warn("CreateReservation: no available unit for model=%d, branch=%d", req.ModelID, req.BranchID)
			return ErrInsufficientAvailability
		}

		uc.logger.Info("CreateReservation: %d units available for model=%d", available, req.ModelID)

		reservation := &domain.Reservation{
			CustomerID:    req.UserID,
			ModelID:       req.ModelID,
			BranchID:      req.BranchID,
			Period:        period,
			State:         domain.StatePending,
			BaseTotal:     baseTotal,
			AddonsTotal:   decimal.Zero,
			OriginalTotal: baseTotal,
		}

		created, err := uc.reservationRepo.Create(txCtx, reservation)
		if err != nil {
			uc.logger.Error("CreateReservation: failed to create reservation: %v", err)
			return fmt.Errorf("%w: failed to create reservation: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateReservation: successfully created reservation id=%d, total=%s",
		result.ID, result.CurrentTotal().StringFixed(2))

	return toResponse(result), nil
}
