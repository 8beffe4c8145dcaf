package create_reservation

import (
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// validateRequest валидирует входные данные и строит нормализованный период аренды
func validateRequest(req *Request, now time.Time) (domain.DateRange, error) {
	if req.UserID <= 0 {
		return domain.DateRange{}, fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ModelID <= 0 {
		return domain.DateRange{}, fmt.Errorf("%w: modelID must be positive", ErrInvalidInput)
	}

	if req.BranchID <= 0 {
		return domain.DateRange{}, fmt.Errorf("%w: branchID must be positive", ErrInvalidInput)
	}

	period, err := domain.NewDateRange(req.StartDate, req.EndDate)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidDateRange) {
			return domain.DateRange{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return domain.DateRange{}, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	if period.Days() > domain.MaxRentalDays {
		return domain.DateRange{}, fmt.Errorf("%w: rental period exceeds %d days", ErrInvalidInput, domain.MaxRentalDays)
	}

	// Начало аренды не может быть раньше сегодняшнего дня
	today := domain.ToRentalDate(now)
	if period.Start.Before(today) {
		return domain.DateRange{}, ErrDateInPast
	}

	return period, nil
}

// countModelAvailability считает свободные слоты одной модели:
// активные автомобили модели минус занятые автомобили минус
// ожидающие резервации модели без назначенного автомобиля
func countModelAvailability(modelID int64, units []*domain.VehicleUnit, blocking []*domain.Reservation) int {
	total := 0
	unitOfModel := make(map[string]bool)
	for _, unit := range units {
		if unit.ModelID == nil || *unit.ModelID != modelID {
			continue
		}
		unitOfModel[unit.Plate] = true
		total++
	}

	blockedPlates := make(map[string]bool)
	pendingUnassigned := 0
	for _, res := range blocking {
		if res.AssignedPlate != nil {
			if unitOfModel[*res.AssignedPlate] {
				blockedPlates[*res.AssignedPlate] = true
			}
			continue
		}
		if res.ModelID == modelID {
			pendingUnassigned++
		}
	}

	available := total - len(blockedPlates) - pendingUnassigned
	if available < 0 {
		return 0
	}
	return available
}
