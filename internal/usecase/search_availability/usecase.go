package search_availability

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	branchRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/branch"
)

// UseCase use case для поиска доступных моделей по филиалу и периоду
type UseCase struct {
	unitRepo        UnitRepository
	reservationRepo ReservationRepository
	modelRepo       ModelRepository
	branchRepo      BranchRepository
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	unitRepo UnitRepository,
	reservationRepo ReservationRepository,
	modelRepo ModelRepository,
	branchRepo BranchRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		unitRepo:        unitRepo,
		reservationRepo: reservationRepo,
		modelRepo:       modelRepo,
		branchRepo:      branchRepo,
		logger:          logger,
	}
}

// Execute выполняет поиск доступных моделей
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("SearchAvailability: branch=%d, period=%s to %s",
		req.BranchID, req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))

	// 1. Валидация входных данных и нормализация периода
	period, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("SearchAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Проверяем существование филиала
	if _, err := uc.branchRepo.GetByID(ctx, req.BranchID); err != nil {
		if errors.Is(err, branchRepo.ErrBranchNotFound) {
			uc.logger.Warn("SearchAvailability: branch id=%d not found", req.BranchID)
			return nil, ErrBranchNotFound
		}
		uc.logger.Error("SearchAvailability: failed to get branch id=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to get branch: %v", ErrInternal, err)
	}

	// 3. Активный парк филиала
	units, err := uc.unitRepo.ListEnabledByBranch(ctx, req.BranchID)
	if err != nil {
		uc.logger.Error("SearchAvailability: failed to list units for branch=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to list units: %v", ErrInternal, err)
	}

	// 4. Блокирующие резервации, пересекающие период
	blocking, err := uc.reservationRepo.ListBlockingByBranch(ctx, req.BranchID, period)
	if err != nil {
		uc.logger.Error("SearchAvailability: failed to list blocking reservations for branch=%d: %v", req.BranchID, err)
		return nil, fmt.Errorf("%w: failed to list blocking reservations: %v", ErrInternal, err)
	}

	// 5. Считаем доступность и отбрасываем модели без свободных автомобилей
	counts := computeAvailability(units, blocking)

	availableIDs := make([]int64, 0, len(counts))
	for _, modelID := range sortedModelIDs(counts) {
		if counts[modelID].availableUnits() > 0 {
			availableIDs = append(availableIDs, modelID)
		}
	}

	// 6. Подтягиваем описания доступных моделей
	models, err := uc.modelRepo.GetByIDs(ctx, availableIDs)
	if err != nil {
		uc.logger.Error("SearchAvailability: failed to get models: %v", err)
		return nil, fmt.Errorf("%w: failed to get models: %v", ErrInternal, err)
	}

	result := make([]ModelAvailability, 0, len(availableIDs))
	for _, modelID := range availableIDs {
		model, ok := models[modelID]
		if !ok {
			// Модель удалена между запросами, пропускаем
			uc.logger.Warn("SearchAvailability: model id=%d missing from storage, skipping", modelID)
			continue
		}

		entry := ModelAvailability{
			ModelID:           model.ID,
			Brand:             model.Brand,
			Model:             model.Model,
			DailyPrice:        model.DailyPrice.StringFixed(2),
			PolicyKind:        string(model.Policy.Kind()),
			PassengerCapacity: model.PassengerCapacity,
			TotalUnits:        counts[modelID].total,
			AvailableUnits:    counts[modelID].availableUnits(),
		}
		if percent, ok := model.Policy.RefundPercent(); ok {
			percentStr := percent.StringFixed(0)
			entry.RefundPercent = &percentStr
		}

		result = append(result, entry)
	}

	uc.logger.Info("SearchAvailability: found %d available models for branch=%d", len(result), req.BranchID)

	return &Response{
		BranchID:  req.BranchID,
		StartDate: period.Start,
		EndDate:   period.End,
		Days:      period.Days(),
		Models:    result,
	}, nil
}
