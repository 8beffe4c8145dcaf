package search_availability

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// UnitRepository интерфейс репозитория физических автомобилей
type UnitRepository interface {
	ListEnabledByBranch(ctx context.Context, branchID int64) ([]*domain.VehicleUnit, error)
}

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	ListBlockingByBranch(ctx context.Context, branchID int64, period domain.DateRange) ([]*domain.Reservation, error)
}

// ModelRepository интерфейс репозитория моделей автомобилей
type ModelRepository interface {
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*domain.VehicleModel, error)
}

// BranchRepository интерфейс репозитория филиалов
type BranchRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Branch, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
