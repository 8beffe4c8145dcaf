package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCanTransition(t *testing.T) {
	tests := []struct {
		from    ReservationState
		to      ReservationState
		allowed bool
	}{
		{StatePending, StateDelivered, true},
		{StatePending, StateCancelled, true},
		{StateDelivered, StateReturned, true},
		{StateDelivered, StateCancelled, false},
		{StatePending, StateReturned, false},
		{StateCancelled, StateDelivered, false},
		{StateCancelled, StatePending, false},
		{StateReturned, StateCancelled, false},
		{StateReturned, StatePending, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.from)+"->"+string(tt.to), func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

func TestReservationTransition(t *testing.T) {
	t.Run("cancel on delivered leaves state unchanged", func(t *testing.T) {
		r := &Reservation{State: StateDelivered}
		err := r.Transition(StateCancelled)
		require.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, StateDelivered, r.State)
	})

	t.Run("return on pending is rejected", func(t *testing.T) {
		r := &Reservation{State: StatePending}
		err := r.Transition(StateReturned)
		require.ErrorIs(t, err, ErrInvalidTransition)
		assert.Equal(t, StatePending, r.State)
	})

	t.Run("full delivery flow", func(t *testing.T) {
		r := &Reservation{State: StatePending}
		require.NoError(t, r.Transition(StateDelivered))
		require.NoError(t, r.Transition(StateReturned))
		assert.Equal(t, StateReturned, r.State)
	})
}

func TestReservationIsBlocking(t *testing.T) {
	assert.True(t, (&Reservation{State: StatePending}).IsBlocking())
	assert.True(t, (&Reservation{State: StateDelivered}).IsBlocking())
	assert.False(t, (&Reservation{State: StateCancelled}).IsBlocking())
	assert.False(t, (&Reservation{State: StateReturned}).IsBlocking())
}
