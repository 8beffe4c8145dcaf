package assign_unit

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/integrations/userservice"
)

// ReservationRepository интерфейс репозитория резерваций
type ReservationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reservation, error)
	ListBlockingByPlate(ctx context.Context, plate string, period domain.DateRange, excludeID int64) ([]*domain.Reservation, error)
	UpdateDelivery(ctx context.Context, id int64, plate string, baseTotal, addonsTotal decimal.Decimal) error
	ReplaceAddons(ctx context.Context, reservationID int64, addonIDs []int64) error
}

// UnitRepository интерфейс репозитория физических автомобилей
type UnitRepository interface {
	GetByPlate(ctx context.Context, plate string) (*domain.VehicleUnit, error)
}

// AddonRepository интерфейс репозитория дополнительных услуг
type AddonRepository interface {
	GetByIDs(ctx context.Context, ids []int64) ([]*domain.Addon, error)
}

// UserServiceClient интерфейс клиента для UserService
type UserServiceClient interface {
	GetUserWithGracefulDegradation(ctx context.Context, userID int64) (*userservice.User, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
