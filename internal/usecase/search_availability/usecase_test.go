package search_availability

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	branchRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/branch"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUnitRepo struct {
	units []*domain.VehicleUnit
}

func (f *fakeUnitRepo) ListEnabledByBranch(_ context.Context, _ int64) ([]*domain.VehicleUnit, error) {
	return f.units, nil
}

type fakeReservationRepo struct {
	blocking []*domain.Reservation
}

func (f *fakeReservationRepo) ListBlockingByBranch(_ context.Context, _ int64, _ domain.DateRange) ([]*domain.Reservation, error) {
	return f.blocking, nil
}

type fakeModelRepo struct {
	models map[int64]*domain.VehicleModel
}

func (f *fakeModelRepo) GetByIDs(_ context.Context, ids []int64) (map[int64]*domain.VehicleModel, error) {
	result := make(map[int64]*domain.VehicleModel)
	for _, id := range ids {
		if m, ok := f.models[id]; ok {
			result[id] = m
		}
	}
	return result, nil
}

type fakeBranchRepo struct {
	err error
}

func (f *fakeBranchRepo) GetByID(_ context.Context, id int64) (*domain.Branch, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &domain.Branch{ID: id, Name: "Centro"}, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, domain.RentalLocation)
}

func testModel(id int64, brand, name string, price string) *domain.VehicleModel {
	return &domain.VehicleModel{
		ID:                id,
		Brand:             brand,
		Model:             name,
		DailyPrice:        decimal.RequireFromString(price),
		Policy:            domain.NewFullRefundPolicy(),
		PassengerCapacity: 5,
	}
}

func newUseCase(units *fakeUnitRepo, reservations *fakeReservationRepo, models *fakeModelRepo, branches *fakeBranchRepo) *UseCase {
	return NewUseCase(units, reservations, models, branches, nopLogger{})
}

func TestExecute_AllUnitsFree(t *testing.T) {
	units := &fakeUnitRepo{units: []*domain.VehicleUnit{
		{Plate: "ABC123", ModelID: ptr.Ptr(int64(1)), BranchID: 1, State: domain.UnitEnabled},
		{Plate: "ABC124", ModelID: ptr.Ptr(int64(1)), BranchID: 1, State: domain.UnitEnabled},
	}}
	uc := newUseCase(units, &fakeReservationRepo{}, &fakeModelRepo{models: map[int64]*domain.VehicleModel{
		1: testModel(1, "Toyota", "Corolla", "100"),
	}}, &fakeBranchRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		BranchID:  1,
		StartDate: date(2026, 3, 15),
		EndDate:   date(2026, 3, 17),
	})
	require.NoError(t, err)

	require.Len(t, resp.Models, 1)
	assert.Equal(t, int64(1), resp.Models[0].ModelID)
	assert.Equal(t, 2, resp.Models[0].TotalUnits)
	assert.Equal(t, 2, resp.Models[0].AvailableUnits)
	assert.Equal(t, 3, resp.Days)
	assert.Equal(t, "100.00", resp.Models[0].DailyPrice)
}

func TestExecute_AssignedUnitBlocks(t *testing.T) {
	units := &fakeUnitRepo{units: []*domain.VehicleUnit{
		{Plate: "ABC123", ModelID: ptr.Ptr(int64(1)), BranchID: 1, State: domain.UnitEnabled},
		{Plate: "ABC124", ModelID: ptr.Ptr(int64(1)), BranchID: 1, State: domain.UnitEnabled},
	}}
	reservations := &fakeReservationRepo{blocking: []*domain.Reservation{
		{ID: 10, ModelID: 1, BranchID: 1, AssignedPlate: ptr.Ptr("ABC123"), State: domain.StateDelivered},
	}}
	uc := newUseCase(units, reservations, &fakeModelRepo{models: map[int64]*domain.VehicleModel{
		1: testModel(1, "Toyota", "Corolla", "100"),
	}}, &fakeBranchRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		BranchID:  1,
		StartDate: date(2026, 3, 15),
		EndDate:   date(2026, 3, 17),
	})
	require.NoError(t, err)

	require.Len(t, resp.Models, 1)
	assert.Equal(t, 2, resp.Models[0].TotalUnits)
	assert.Equal(t, 1, resp.Models[0].AvailableUnits)
}

func TestExecute_PendingUnassignedConsumesSlot(t *testing.T) {
	units := &fakeUnitRepo{units: []*domain.VehicleUnit{
		{Plate: "ABC123", ModelID: ptr.Ptr(int64(1)), BranchID: 1, State: domain.UnitEnabled},
	}}
	// Ожидающая резервация без назначенного автомобиля занимает слот модели
	reservations := &fakeReservationRepo{blocking: []*domain.Reservation{
		{ID: 10, ModelID: 1, BranchID: 1, State: domain.StatePending},
	}}
	uc := newUseCase(units, reservations, &fakeModelRepo{models: map[int64]*domain.VehicleModel{
		1: testModel(1, "Toyota", "Corolla", "100"),
	}}, &fakeBranchRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		BranchID:  1,
		StartDate: date(2026, 3, 15),
		EndDate:   date(2026, 3, 17),
	})
	require.NoError(t, err)

	// Единственный автомобиль занят слотом модели, модель не возвращается
	assert.Empty(t, resp.Models)
}

func TestExecute_CancelledReservationDoesNotBlock(t *testing.T) {
	units := &fakeUnitRepo{units: []*domain.VehicleUnit{
		{Plate: "ABC123", ModelID: ptr.Ptr(int64(1)), BranchID: 1, State: domain.UnitEnabled},
	}}
	// Неблокирующие состояния отфильтровываются предикатом домена
	reservations := &fakeReservationRepo{blocking: []*domain.Reservation{
		{ID: 10, ModelID: 1, BranchID: 1, AssignedPlate: ptr.Ptr("ABC123"), State: domain.StateCancelled},
		{ID: 11, ModelID: 1, BranchID: 1, State: domain.StateReturned},
	}}
	uc := newUseCase(units, reservations, &fakeModelRepo{models: map[int64]*domain.VehicleModel{
		1: testModel(1, "Toyota", "Corolla", "100"),
	}}, &fakeBranchRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		BranchID:  1,
		StartDate: date(2026, 3, 15),
		EndDate:   date(2026, 3, 17),
	})
	require.NoError(t, err)

	require.Len(t, resp.Models, 1)
	assert.Equal(t, 1, resp.Models[0].AvailableUnits)
}

func TestExecute_UnitWithoutModelIgnored(t *testing.T) {
	units := &fakeUnitRepo{units: []*domain.VehicleUnit{
		{Plate: "ABC123", BranchID: 1, State: domain.UnitEnabled},
		{Plate: "ABC124", ModelID: ptr.Ptr(int64(2)), BranchID: 1, State: domain.UnitEnabled},
	}}
	uc := newUseCase(units, &fakeReservationRepo{}, &fakeModelRepo{models: map[int64]*domain.VehicleModel{
		2: testModel(2, "Fiat", "Cronos", "80"),
	}}, &fakeBranchRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		BranchID:  1,
		StartDate: date(2026, 3, 15),
		EndDate:   date(2026, 3, 15),
	})
	require.NoError(t, err)

	require.Len(t, resp.Models, 1)
	assert.Equal(t, int64(2), resp.Models[0].ModelID)
	assert.Equal(t, 1, resp.Models[0].TotalUnits)
}

func TestExecute_OverbookedModelFlooredAtZero(t *testing.T) {
	units := &fakeUnitRepo{units: []*domain.VehicleUnit{
		{Plate: "ABC123", ModelID: ptr.Ptr(int64(1)), BranchID: 1, State: domain.UnitEnabled},
	}}
	reservations := &fakeReservationRepo{blocking: []*domain.Reservation{
		{ID: 10, ModelID: 1, BranchID: 1, AssignedPlate: ptr.Ptr("ABC123"), State: domain.StateDelivered},
		{ID: 11, ModelID: 1, BranchID: 1, State: domain.StatePending},
	}}
	uc := newUseCase(units, reservations, &fakeModelRepo{models: map[int64]*domain.VehicleModel{
		1: testModel(1, "Toyota", "Corolla", "100"),
	}}, &fakeBranchRepo{})

	resp, err := uc.Execute(context.Background(), &Request{
		BranchID:  1,
		StartDate: date(2026, 3, 15),
		EndDate:   date(2026, 3, 17),
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Models)
}

func TestExecute_BranchNotFound(t *testing.T) {
	uc := newUseCase(&fakeUnitRepo{}, &fakeReservationRepo{}, &fakeModelRepo{}, &fakeBranchRepo{err: branchRepo.ErrBranchNotFound})

	_, err := uc.Execute(context.Background(), &Request{
		BranchID:  99,
		StartDate: date(2026, 3, 15),
		EndDate:   date(2026, 3, 17),
	})
	assert.ErrorIs(t, err, ErrBranchNotFound)
}

func TestExecute_InvalidRange(t *testing.T) {
	uc := newUseCase(&fakeUnitRepo{}, &fakeReservationRepo{}, &fakeModelRepo{}, &fakeBranchRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		BranchID:  1,
		StartDate: date(2026, 3, 17),
		EndDate:   date(2026, 3, 15),
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
