package return_reservation

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-RentalService/internal/domain"
	"github.com/m04kA/SMC-RentalService/internal/integrations/userservice"
	"github.com/m04kA/SMC-RentalService/pkg/ptr"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeTxManager struct{}

func (fakeTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedTime struct {
	now time.Time
}

func (f fixedTime) Now() time.Time { return f.now }

type fakeReservationRepo struct {
	reservation *domain.Reservation
	returnedAt  *time.Time
}

func (f *fakeReservationRepo) GetByID(_ context.Context, _ int64) (*domain.Reservation, error) {
	return f.reservation, nil
}

func (f *fakeReservationRepo) UpdateReturn(_ context.Context, _ int64, returnedAt time.Time) error {
	f.returnedAt = &returnedAt
	return nil
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

func deliveredReservation(t *testing.T) *domain.Reservation {
	t.Helper()
	return &domain.Reservation{
		ID:            42,
		CustomerID:    7,
		ModelID:       1,
		BranchID:      1,
		AssignedPlate: ptr.Ptr("ABC123"),
		Period:        mustRange(t, date(2026, 3, 15), date(2026, 3, 17)),
		State:         domain.StateDelivered,
		BaseTotal:     decimal.RequireFromString("300"),
		AddonsTotal:   decimal.RequireFromString("30"),
		OriginalTotal: decimal.RequireFromString("330"),
	}
}

func newTestUseCase(reservations *fakeReservationRepo, role string, now time.Time) *UseCase {
	uc := NewUseCase(reservations, &fakeUserClient{role: role}, fakeTxManager{}, nopLogger{})
	uc.timeProvider = fixedTime{now: now}
	return uc
}

func TestExecute_ReturnsDeliveredReservation(t *testing.T) {
	returnTime := time.Date(2026, 3, 17, 18, 30, 0, 0, domain.RentalLocation)
	reservations := &fakeReservationRepo{reservation: deliveredReservation(t)}
	uc := newTestUseCase(reservations, userservice.RoleEmployee, returnTime)

	resp, err := uc.Execute(context.Background(), &Request{UserID: 100, ReservationID: 42})
	require.NoError(t, err)

	assert.Equal(t, string(domain.StateReturned), resp.State)
	assert.Equal(t, "ABC123", resp.AssignedPlate)
	assert.Equal(t, returnTime, resp.ReturnedAt)
	// Суммы не пересчитываются при возврате
	assert.Equal(t, "330.00", resp.Total)

	require.NotNil(t, reservations.returnedAt)
	assert.Equal(t, returnTime, *reservations.returnedAt)
}

func TestExecute_PendingRejected(t *testing.T) {
	res := deliveredReservation(t)
	res.State = domain.StatePending
	reservations := &fakeReservationRepo{reservation: res}
	uc := newTestUseCase(reservations, userservice.RoleEmployee, time.Now())

	_, err := uc.Execute(context.Background(), &Request{UserID: 100, ReservationID: 42})
	assert.ErrorIs(t, err, ErrInvalidTransition)
	assert.Nil(t, reservations.returnedAt)
}

func TestExecute_ReturnedRejected(t *testing.T) {
	res := deliveredReservation(t)
	res.State = domain.StateReturned
	uc := newTestUseCase(&fakeReservationRepo{reservation: res}, userservice.RoleEmployee, time.Now())

	_, err := uc.Execute(context.Background(), &Request{UserID: 100, ReservationID: 42})
	assert.ErrorIs(t, err, ErrInvalidTransition)
}

func TestExecute_NonEmployeeDenied(t *testing.T) {
	uc := newTestUseCase(&fakeReservationRepo{reservation: deliveredReservation(t)}, userservice.RoleCustomer, time.Now())

	_, err := uc.Execute(context.Background(), &Request{UserID: 7, ReservationID: 42})
	assert.ErrorIs(t, err, ErrAccessDenied)
}
