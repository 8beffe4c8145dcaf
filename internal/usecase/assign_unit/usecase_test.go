package assign_unit

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	unitRepoPkg "github.com/m04kA/SMC-RentalService/internal/infra/storage/unit"
	"github.com/m04kA/SMC-RentalService/internal/integrations/userservice"
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

type fakeReservationRepo struct {
	reservation    *domain.Reservation
	conflicts      []*domain.Reservation
	deliveredPlate string
	deliveredBase  decimal.Decimal
	deliveredAdds  decimal.Decimal
	replacedAddons []int64
}

func (f *fakeReservationRepo) GetByID(_ context.Context, _ int64) (*domain.Reservation, error) {
	return f.reservation, nil
}

func (f *fakeReservationRepo) ListBlockingByPlate(_ context.Context, _ string, _ domain.DateRange, _ int64) ([]*domain.Reservation, error) {
	return f.conflicts, nil
}

func (f *fakeReservationRepo) UpdateDelivery(_ context.Context, _ int64, plate string, baseTotal, addonsTotal decimal.Decimal) error {
	f.deliveredPlate = plate
	f.deliveredBase = baseTotal
	f.deliveredAdds = addonsTotal
	return nil
}

func (f *fakeReservationRepo) ReplaceAddons(_ context.Context, _ int64, addonIDs []int64) error {
	f.replacedAddons = addonIDs
	return nil
}

type fakeUnitRepo struct {
	unit *domain.VehicleUnit
}

func (f *fakeUnitRepo) GetByPlate(_ context.Context, _ string) (*domain.VehicleUnit, error) {
	if f.unit == nil {
		return nil, unitRepoPkg.ErrUnitNotFound
	}
	return f.unit, nil
}

type fakeAddonRepo struct {
	addons []*domain.Addon
}

func (f *fakeAddonRepo) GetByIDs(_ context.Context, ids []int64) ([]*domain.Addon, error) {
	result := make([]*domain.Addon, 0, len(ids))
	for _, id := range ids {
		for _, addon := range f.addons {
			if addon.ID == id {
				result = append(result, addon)
			}
		}
	}
	return result, nil
}

type fakeUserClient struct {
	role string
}

func (f *fakeUserClient) GetUserWithGracefulDegradation(_ context.Context, userID int64) (*userservice.User, error) {
	return &userservice.User{ID: userID, Role: f.role}, nil
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, domain.RentalLocation)
}

func mustRange(t *testing.T, start, end time.Time) domain.DateRange {
	t.Helper()
	period, err := domain.NewDateRange(start, end)
	require.NoError(t, err)
	return period
}

func pendingReservation(t *testing.T) *domain.Reservation {
	t.Helper()
	return &domain.Reservation{
		ID:            42,
		CustomerID:    7,
		ModelID:       1,
		BranchID:      1,
		Period:        mustRange(t, date(2026, 3, 15), date(2026, 3, 17)),
		State:         domain.StatePending,
		BaseTotal:     decimal.RequireFromString("300"),
		AddonsTotal:   decimal.Zero,
		OriginalTotal: decimal.RequireFromString("300"),
	}
}

func enabledUnit() *domain.VehicleUnit {
	return &domain.VehicleUnit{
		Plate:    "ABC123",
		ModelID:  ptr.Ptr(int64(1)),
		BranchID: 1,
		Year:     2022,
		State:    domain.UnitEnabled,
	}
}

func newTestUseCase(reservations *fakeReservationRepo, units *fakeUnitRepo, addons *fakeAddonRepo) *UseCase {
	return NewUseCase(reservations, units, addons, &fakeUserClient{role: userservice.RoleEmployee}, fakeTxManager{}, nopLogger{})
}

func TestExecute_DeliversWithAddons(t *testing.T) {
	reservations := &fakeReservationRepo{reservation: pendingReservation(t)}
	addons := &fakeAddonRepo{addons: []*domain.Addon{
		{ID: 5, Name: "GPS", DailyPrice: decimal.RequireFromString("10")},
	}}
	uc := newTestUseCase(reservations, &fakeUnitRepo{unit: enabledUnit()}, addons)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:        100,
		ReservationID: 42,
		Plate:         "abc123",
		AddonIDs:      []int64{5},
	})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StateDelivered), resp.State)
	assert.Equal(t, "ABC123", resp.AssignedPlate)
	assert.Equal(t, "300.00", resp.BaseTotal)
	assert.Equal(t, "30.00", resp.AddonsTotal)
	assert.Equal(t, "330.00", resp.Total)

	assert.Equal(t, "ABC123", reservations.deliveredPlate)
	assert.True(t, reservations.deliveredAdds.Equal(decimal.RequireFromString("30")))
	assert.Equal(t, []int64{5}, reservations.replacedAddons)

	// Исходная сумма перефиксирована на момент выдачи вместе с услугами
	assert.True(t, reservations.reservation.OriginalTotal.Equal(decimal.RequireFromString("330")))
}

func TestExecute_DuplicateAddonsChargedOnce(t *testing.T) {
	reservations := &fakeReservationRepo{reservation: pendingReservation(t)}
	addons := &fakeAddonRepo{addons: []*domain.Addon{
		{ID: 5, Name: "GPS", DailyPrice: decimal.RequireFromString("10")},
	}}
	uc := newTestUseCase(reservations, &fakeUnitRepo{unit: enabledUnit()}, addons)

	resp, err := uc.Execute(context.Background(), &Request{
		UserID:        100,
		ReservationID: 42,
		Plate:         "ABC123",
		AddonIDs:      []int64{5, 5, 5},
	})
	require.NoError(t, err)

	assert.Equal(t, "30.00", resp.AddonsTotal)
	assert.Equal(t, []int64{5}, reservations.replacedAddons)
}

func TestExecute_NotPending(t *testing.T) {
	res := pendingReservation(t)
	res.State = domain.StateDelivered
	uc := newTestUseCase(&fakeReservationRepo{reservation: res}, &fakeUnitRepo{unit: enabledUnit()}, &fakeAddonRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		UserID:        100,
		ReservationID: 42,
		Plate:         "ABC123",
	})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExecute_UnitBlockedByOverlap(t *testing.T) {
	reservations := &fakeReservationRepo{
		reservation: pendingReservation(t),
		conflicts: []*domain.Reservation{
			{ID: 50, State: domain.StateDelivered, AssignedPlate: ptr.Ptr("ABC123")},
		},
	}
	uc := newTestUseCase(reservations, &fakeUnitRepo{unit: enabledUnit()}, &fakeAddonRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		UserID:        100,
		ReservationID: 42,
		Plate:         "ABC123",
	})
	assert.ErrorIs(t, err, ErrUnitUnavailable)
	assert.Empty(t, reservations.deliveredPlate)
}

func TestExecute_UnitValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(u *domain.VehicleUnit)
	}{
		{"disabled unit", func(u *domain.VehicleUnit) { u.State = domain.UnitDisabled }},
		{"wrong model", func(u *domain.VehicleUnit) { u.ModelID = ptr.Ptr(int64(2)) }},
		{"no model", func(u *domain.VehicleUnit) { u.ModelID = nil }},
		{"wrong branch", func(u *domain.VehicleUnit) { u.BranchID = 2 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			unit := enabledUnit()
			tt.mutate(unit)
			uc := newTestUseCase(&fakeReservationRepo{reservation: pendingReservation(t)}, &fakeUnitRepo{unit: unit}, &fakeAddonRepo{})

			_, err := uc.Execute(context.Background(), &Request{
				UserID:        100,
				ReservationID: 42,
				Plate:         "ABC123",
			})
			assert.ErrorIs(t, err, ErrUnitUnavailable)
		})
	}
}

func TestExecute_DeletedAddonRejected(t *testing.T) {
	addons := &fakeAddonRepo{addons: []*domain.Addon{
		{ID: 5, Name: "GPS", DailyPrice: decimal.RequireFromString("10"), Deleted: true},
	}}
	reservations := &fakeReservationRepo{reservation: pendingReservation(t)}
	uc := newTestUseCase(reservations, &fakeUnitRepo{unit: enabledUnit()}, addons)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:        100,
		ReservationID: 42,
		Plate:         "ABC123",
		AddonIDs:      []int64{5},
	})
	assert.ErrorIs(t, err, ErrAddonNotFound)
	assert.Empty(t, reservations.deliveredPlate)
}

func TestExecute_UnknownAddonRejected(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{reservation: pendingReservation(t)}, &fakeUnitRepo{unit: enabledUnit()}, &fakeAddonRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		UserID:        100,
		ReservationID: 42,
		Plate:         "ABC123",
		AddonIDs:      []int64{9},
	})
	assert.ErrorIs(t, err, ErrAddonNotFound)
}

func TestExecute_NonEmployeeDenied(t *testing.T) {
	uc := NewUseCase(
		&fakeReservationRepo{reservation: pendingReservation(t)},
		&fakeUnitRepo{unit: enabledUnit()},
		&fakeAddonRepo{},
		&fakeUserClient{role: userservice.RoleCustomer},
		fakeTxManager{},
		nopLogger{},
	)

	_, err := uc.Execute(context.Background(), &Request{
		UserID:        7,
		ReservationID: 42,
		Plate:         "ABC123",
	})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_InvalidPlate(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{reservation: pendingReservation(t)}, &fakeUnitRepo{unit: enabledUnit()}, &fakeAddonRepo{})

	_, err := uc.Execute(context.Background(), &Request{
		UserID:        100,
		ReservationID: 42,
		Plate:         "not-a-plate",
	})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
