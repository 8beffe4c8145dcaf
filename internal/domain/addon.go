package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidAddon is returned for an addon violating its own invariants
	ErrInvalidAddon = errors.New("domain: invalid addon")
)

// Addon is an optional daily-priced extra service attached to a reservation.
// Addons are soft-deleted only: past reservations reference them for
// historical pricing.
type Addon struct {
	ID         int64
	Name       string
	DailyPrice decimal.Decimal
	Deleted    bool
}

// Validate checks the addon's own invariants
func (a *Addon) Validate() error {
	if a.Name == "" || len(a.Name) > MaxAddonNameLength {
		return ErrInvalidAddon
	}
	if !a.DailyPrice.IsPositive() {
		return ErrInvalidAddon
	}
	return nil
}
