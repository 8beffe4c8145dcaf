package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidTransition is returned for any state change the machine does not allow
	ErrInvalidTransition = errors.New("domain: invalid reservation state transition")
)

// ReservationState represents the lifecycle state of a reservation
type ReservationState string

const (
	StatePending   ReservationState = "pending"
	StateDelivered ReservationState = "delivered"
	StateCancelled ReservationState = "cancelled"
	StateReturned  ReservationState = "returned"
)

// allowedTransitions is the full transition graph of the reservation
// state machine. Terminal states map to an empty list; in particular
// delivered -> cancelled is deliberately absent.
var allowedTransitions = map[ReservationState][]ReservationState{
	StatePending:   {StateDelivered, StateCancelled},
	StateDelivered: {StateReturned},
	StateCancelled: {},
	StateReturned:  {},
}

// CanTransition reports whether from -> to is a legal state change
func CanTransition(from, to ReservationState) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// Reservation represents a vehicle rental reservation.
//
// OriginalTotal is set at creation and refreshed once at delivery, when
// addon charges join the bill; it never changes afterwards. BaseTotal and
// AddonsTotal together form the current payable amount and are only
// reduced by defined transitions (cancellation per policy).
type Reservation struct {
	ID         int64
	CustomerID int64
	ModelID    int64
	BranchID   int64

	// AssignedPlate is nil until an operator delivers a physical unit
	AssignedPlate *string

	Period DateRange
	State  ReservationState

	BaseTotal     decimal.Decimal
	AddonsTotal   decimal.Decimal
	OriginalTotal decimal.Decimal

	CreatedAt  time.Time
	ReturnedAt *time.Time
}

// CurrentTotal returns the reservation's current payable amount
func (r *Reservation) CurrentTotal() decimal.Decimal {
	return r.BaseTotal.Add(r.AddonsTotal)
}

// IsBlocking returns true if the reservation occupies inventory
func (r *Reservation) IsBlocking() bool {
	return r.State == StatePending || r.State == StateDelivered
}

// Transition applies a state change, rejecting anything outside the
// transition graph. It only mutates State; monetary and timestamp side
// effects belong to the owning use case.
func (r *Reservation) Transition(to ReservationState) error {
	if !CanTransition(r.State, to) {
		return ErrInvalidTransition
	}
	r.State = to
	return nil
}

// ReservationFilter flexible filter for listing reservations of a branch
type ReservationFilter struct {
	BranchID        int64             // required
	StartDate       *time.Time        // period start (optional)
	EndDate         *time.Time        // period end (optional)
	State           *ReservationState // optional state filter
	IncludeInactive bool              // include cancelled/returned reservations
}
