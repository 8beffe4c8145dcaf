package cancel_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/integrations/userservice"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeReservationRepo struct {
	reservation   *domain.Reservation
	cancelledBase *decimal.Decimal
	cancelledAdds *decimal.Decimal
}

func (f *fakeReservationRepo) GetByID(_ context.Context, _ int64) (*domain.Reservation, error) {
	return f.reservation, nil
}

func (f *fakeReservationRepo) UpdateCancellation(_ context.Context, _ int64, baseTotal, addonsTotal decimal.Decimal) error {
	f.cancelledBase = &baseTotal
	f.cancelledAdds = &addonsTotal
	return nil
}

type fakeModelRepo struct {
	model *domain.VehicleModel
}

func (f *fakeModelRepo) GetByID(_ context.Context, _ int64) (*domain.VehicleModel, error) {
	return f.model, nil
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
		AddonsTotal:   decimal.RequireFromString("30"),
		OriginalTotal: decimal.RequireFromString("330"),
	}
}

func modelWithPolicy(policy domain.CancellationPolicy) *domain.VehicleModel {
	return &domain.VehicleModel{
		ID:                1,
		Brand:             "Toyota",
		Model:             "Corolla",
		DailyPrice:        decimal.RequireFromString("100"),
		Policy:            policy,
		PassengerCapacity: 5,
	}
}

func mustPartial(t *testing.T, percent string) domain.CancellationPolicy {
	t.Helper()
	policy, err := domain.NewPartialRefundPolicy(decimal.RequireFromString(percent))
	require.NoError(t, err)
	return policy
}

func newTestUseCase(reservations *fakeReservationRepo, models *fakeModelRepo, role string) *UseCase {
	return NewUseCase(reservations, models, &fakeUserClient{role: role}, fakeTxManager{}, nopLogger{})
}

func TestExecute_FullRefund(t *testing.T) {
	reservations := &fakeReservationRepo{reservation: pendingReservation(t)}
	uc := newTestUseCase(reservations, &fakeModelRepo{model: modelWithPolicy(domain.NewFullRefundPolicy())}, userservice.RoleCustomer)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 7, ReservationID: 42})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StateCancelled), resp.State)
	assert.Equal(t, "0.00", resp.Total)
	assert.Equal(t, "330.00", resp.OriginalTotal)
	assert.Equal(t, string(domain.PolicyFullRefund), resp.PolicyKind)

	require.NotNil(t, reservations.cancelledBase)
	assert.True(t, reservations.cancelledBase.IsZero())
	assert.True(t, reservations.cancelledAdds.IsZero())
}

func TestExecute_PartialRefund(t *testing.T) {
	reservations := &fakeReservationRepo{reservation: pendingReservation(t)}
	uc := newTestUseCase(reservations, &fakeModelRepo{model: modelWithPolicy(mustPartial(t, "30"))}, userservice.RoleCustomer)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 7, ReservationID: 42})
	require.NoError(t, err)

	// Возврат 30%: клиент платит 70% от каждой составляющей
	assert.Equal(t, "210.00", resp.BaseTotal)
	assert.Equal(t, "21.00", resp.AddonsTotal)
	assert.Equal(t, "231.00", resp.Total)
	assert.Equal(t, "330.00", resp.OriginalTotal)
}

func TestExecute_NoRefund(t *testing.T) {
	reservations := &fakeReservationRepo{reservation: pendingReservation(t)}
	uc := newTestUseCase(reservations, &fakeModelRepo{model: modelWithPolicy(domain.NewNoRefundPolicy())}, userservice.RoleCustomer)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 7, ReservationID: 42})
	require.NoError(t, err)

	assert.Equal(t, "330.00", resp.Total)
}

func TestExecute_ZeroPolicyRejected(t *testing.T) {
	// Модель с несконструированной политикой не должна приводить к отмене
	reservations := &fakeReservationRepo{reservation: pendingReservation(t)}
	uc := newTestUseCase(reservations, &fakeModelRepo{model: modelWithPolicy(domain.CancellationPolicy{})}, userservice.RoleCustomer)

	_, err := uc.Execute(context.Background(), &Request{UserID: 7, ReservationID: 42})
	assert.ErrorIs(t, err, ErrInternal)
	assert.Nil(t, reservations.cancelledBase)
}

func TestExecute_DeliveredRejected(t *testing.T) {
	res := pendingReservation(t)
	res.State = domain.StateDelivered
	reservations := &fakeReservationRepo{reservation: res}
	uc := newTestUseCase(reservations, &fakeModelRepo{model: modelWithPolicy(domain.NewFullRefundPolicy())}, userservice.RoleCustomer)

	_, err := uc.Execute(context.Background(), &Request{UserID: 7, ReservationID: 42})
	assert.ErrorIs(t, err, ErrInvalidTransition)

	// Суммы не тронуты
	assert.Nil(t, reservations.cancelledBase)
}

func TestExecute_StrangerDenied(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{reservation: pendingReservation(t)}, &fakeModelRepo{model: modelWithPolicy(domain.NewFullRefundPolicy())}, userservice.RoleCustomer)

	_, err := uc.Execute(context.Background(), &Request{UserID: 999, ReservationID: 42})
	assert.ErrorIs(t, err, ErrAccessDenied)
}

func TestExecute_EmployeeMayCancel(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{reservation: pendingReservation(t)}, &fakeModelRepo{model: modelWithPolicy(domain.NewFullRefundPolicy())}, userservice.RoleEmployee)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 999, ReservationID: 42})
	require.NoError(t, err)
	assert.Equal(t, string(domain.StateCancelled), resp.State)
}
