package assign_unit

import (
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: userID must be positive", ErrInvalidInput)
	}

	if req.ReservationID <= 0 {
		return fmt.Errorf("%w: reservationID must be positive", ErrInvalidInput)
	}

	if err := domain.ValidatePlate(domain.NormalizePlate(req.Plate)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	for _, id := range req.AddonIDs {
		if id <= 0 {
			return fmt.Errorf("%w: addon IDs must be positive", ErrInvalidInput)
		}
	}

	return nil
}

// dedupeAddonIDs убирает дубликаты, сохраняя порядок первого вхождения.
// Состав услуг резервации это множество.
func dedupeAddonIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	result := make([]int64, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		result = append(result, id)
	}
	return result
}

// validateUnitForReservation проверяет, что автомобиль подходит резервации
func validateUnitForReservation(unit *domain.VehicleUnit, res *domain.Reservation) error {
	if unit.State != domain.UnitEnabled {
		return ErrUnitUnavailable
	}
	if unit.ModelID == nil || *unit.ModelID != res.ModelID {
		return ErrUnitUnavailable
	}
	if unit.BranchID != res.BranchID {
		return ErrUnitUnavailable
	}
	return nil
}
