package create_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	modelRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/vehiclemodel"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type fakeReservationRepo struct {
	blocking []*domain.Reservation
	created  *domain.Reservation
}

func (f *fakeReservationRepo) Create(_ context.Context, res *domain.Reservation) (*domain.Reservation, error) {
	res.ID = 42
	res.CreatedAt = time.Now()
	f.created = res
	return res, nil
}

func (f *fakeReservationRepo) ListBlockingByBranch(_ context.Context, _ int64, _ domain.DateRange) ([]*domain.Reservation, error) {
	return f.blocking, nil
}

type fakeUnitRepo struct {
	units []*domain.VehicleUnit
}

func (f *fakeUnitRepo) ListEnabledByBranch(_ context.Context, _ int64) ([]*domain.VehicleUnit, error) {
	return f.units, nil
}

type fakeModelRepo struct {
	model *domain.VehicleModel
}

func (f *fakeModelRepo) GetByID(_ context.Context, _ int64) (*domain.VehicleModel, error) {
	if f.model == nil {
		return nil, modelRepo.ErrModelNotFound
	}
	return f.model, nil
}

type fakeBranchRepo struct{}

func (fakeBranchRepo) GetByID(_ context.Context, id int64) (*domain.Branch, error) {
	return &domain.Branch{ID: id, Name: "Centro"}, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, domain.RentalLocation)
}

func corolla() *domain.VehicleModel {
	return &domain.VehicleModel{
		ID:                1,
		Brand:             "Toyota",
		Model:             "Corolla",
		DailyPrice:        decimal.RequireFromString("100"),
		Policy:            domain.NewFullRefundPolicy(),
		PassengerCapacity: 5,
	}
}

func newTestUseCase(reservations *fakeReservationRepo, units *fakeUnitRepo, models *fakeModelRepo) *UseCase {
	uc := NewUseCase(reservations, units, models, fakeBranchRepo{}, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTime{now: date(2026, 3, 1)}
	return uc
}

func TestExecute_CreatesPendingReservation(t *testing.T) {
	reservations := &fakeReservationRepo{}
	units := &fakeUnitRepo{units: []*domain.VehicleUnit{
		{Plate: "ABC123", ModelID: ptr.Ptr(int64(1)), BranchID: 1, State: domain.UnitEnabled},
	}}
	uc := newTestUseCase(reservations, units, &fakeModelRepo{model: corolla()})

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    7,
		ModelID:   1,
		BranchID:  1,
		StartDate: date(2026, 3, 15),
		EndDate:   date(2026, 3, 17),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, string(domain.StatePending), resp.State)
	assert.Equal(t, 3, resp.Days)
	assert.Equal(t, "300.00", resp.BaseTotal)
	assert.Equal(t, "300.00", resp.Total)

	require.NotNil(t, reservations.created)
	assert.Nil(t, reservations.created.AssignedPlate)
	assert.True(t, reservations.created.OriginalTotal.Equal(decimal.RequireFromString("300")))
}

func TestExecute_SameDayRentalCountsOneDay(t *testing.T) {
	units := &fakeUnitRepo{units: []*domain.VehicleUnit{
		{Plate: "ABC123", ModelID: ptr.Ptr(int64(1)), BranchID: 1, State: domain.UnitEnabled},
	}}
	uc := newTestUseCase(&fakeReservationRepo{}, units, &fakeModelRepo{model: corolla()})

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:    7,
		ModelID:   1,
		BranchID:  1,
		StartDate: date(2026, 3, 15),
		EndDate:   date(2026, 3, 15),
	})
	require.NoError(t, err)

	assert.Equal(t, 1, resp.Days)
	assert.Equal(t, "100.00", resp.BaseTotal)
}

func TestExecute_NoAvailability(t *testing.T) {
	units := &fakeUnitRepo{units: []*domain.VehicleUnit{
		{Plate: "ABC123", ModelID: ptr.Ptr(int64(1)), BranchID: 1, State: domain.UnitEnabled},
	}}
	// Единственный автомобиль занят слотом модели от неназначенной резервации
	reservations := &fakeReservationRepo{blocking: []*domain.Reservation{
		{ID: 10, ModelID: 1, BranchID: 1, State: domain.StatePending},
	}}
	uc := newTestUseCase(reservations, units, &fakeModelRepo{model: corolla()})

	_, err := uc.Execute(context.Background(), &Request{
		UserID:    7,
		ModelID:   1,
		BranchID:  1,
		StartDate: date(2026, 3, 15),
		EndDate:   date(2026, 3, 17),
	})
	assert.ErrorIs(t, err, ErrInsufficientAvailability)
}

func TestExecute_StartDateInPast(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeUnitRepo{}, &fakeModelRepo{model: corolla()})

	_, err := uc.Execute(context.Background(), &Request{
		UserID:    7,
		ModelID:   1,
		BranchID:  1,
		StartDate: date(2026, 2, 20),
		EndDate:   date(2026, 3, 17),
	})
	assert.ErrorIs(t, err, ErrDateInPast)
}

func TestExecute_ModelNotFound(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeUnitRepo{}, &fakeModelRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		UserID:    7,
		ModelID:   99,
		BranchID:  1,
		StartDate: date(2026, 3, 15),
		EndDate:   date(2026, 3, 17),
	})
	assert.ErrorIs(t, err, ErrModelNotFound)
}

func TestExecute_RangeTooLong(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{}, &fakeUnitRepo{}, &fakeModelRepo{model: corolla()})

	_, err := uc.Execute(context.Background(), &Request{
		UserID:    7,
		ModelID:   1,
		BranchID:  1,
		StartDate: date(2026, 3, 1),
		EndDate:   date(2026, 7, 1),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
