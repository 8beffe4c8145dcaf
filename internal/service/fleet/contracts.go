package fleet

import (
	"context"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/integrations/userservice"
)

// ModelRepository интерфейс репозитория моделей автомобилей
type ModelRepository interface {
	Create(ctx context.Context, model *domain.VehicleModel) (*domain.VehicleModel, error)
	GetByID(ctx context.Context, id int64) (*domain.VehicleModel, error)
}

// UnitRepository интерфейс репозитория физических автомобилей
type UnitRepository interface {
	Create(ctx context.Context, unit *domain.VehicleUnit) (*domain.VehicleUnit, error)
	GetByPlate(ctx context.Context, plate string) (*domain.VehicleUnit, error)
	UpdateState(ctx context.Context, plate string, state domain.UnitState) error
}

// BranchRepository интерфейс репозитория филиалов
type BranchRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Branch, error)
}

// AddonRepository интерфейс репозитория дополнительных услуг
type AddonRepository interface {
	Create(ctx context.Context, addon *domain.Addon) (*domain.Addon, error)
	ListActive(ctx context.Context) ([]*domain.Addon, error)
	SoftDelete(ctx context.Context, id int64) error
}

// ReservationRepository интерфейс репозитория резерваций.
// Нужен для проверки ограничений смены состояния юнита.
type ReservationRepository interface {
	CountByPlate(ctx context.Context, plate string) (int, error)
	CountPendingByPlate(ctx context.Context, plate string) (int, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUserWithGracefulDegradation(ctx context.Context, userID int64) (*userservice.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
