package search_availability

import (
	"errors"
	"fmt"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// validateRequest валидирует входные данные и строит нормализованный период аренды
func validateRequest(req *Request) (domain.DateRange, error) {
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

	return period, nil
}
