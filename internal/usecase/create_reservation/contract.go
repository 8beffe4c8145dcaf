package create_reservation

import (
	"context"
	"time"

	"github.com/m04kA/SMC-RentalService/internal/domain"
)

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	Create(ctx context.Context, res *domain.Reservation) (*domain.Reservation, error)
	ListBlockingByBranch(ctx context.Context, branchID int64, period domain.DateRange) ([]*domain.Reservation, error)
}

// UnitRepository интерфейс репозитория физических автомобилей
type UnitRepository interface {
	ListEnabledByBranch(ctx context.Context, branchID int64) ([]*domain.VehicleUnit, error)
}

// ModelRepository интерфейс репозитория моделей автомобилей
type ModelRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.VehicleModel, error)
}

// BranchRepository интерфейс репозитория филиалов
type BranchRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Branch, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
