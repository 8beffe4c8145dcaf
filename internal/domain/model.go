package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidModel is returned for a model violating its own invariants
	ErrInvalidModel = errors.New("domain: invalid vehicle model")
)

// VehicleModel is a rentable make/model definition with pricing and
// cancellation policy, distinct from the physical units that serve it
type VehicleModel struct {
	ID                int64
	Brand             string
	Model             string
	CategoryID        *int64 // nil when the category was deleted
	DailyPrice        decimal.Decimal
	Policy            CancellationPolicy
	PassengerCapacity int
}

// Validate checks the model's own invariants
func (m *VehicleModel) Validate() error {
	if m.Brand == "" || m.Model == "" {
		return ErrInvalidModel
	}
	if !m.DailyPrice.IsPositive() {
		return ErrInvalidModel
	}
	if m.PassengerCapacity <= 0 || m.PassengerCapacity > MaxPassengerCapacity {
		return ErrInvalidModel
	}
	if m.Policy.IsZero() {
		return ErrInvalidPolicy
	}
	return nil
}
