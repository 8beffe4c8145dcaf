package domain

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

var (
	// ErrInvalidPlate is returned for a license plate with an unknown format
	ErrInvalidPlate = errors.New("domain: invalid license plate format")

	// ErrInvalidUnit is returned for a unit violating its own invariants
	ErrInvalidUnit = errors.New("domain: invalid vehicle unit")

	// ErrInvalidUnitTransition is returned for a forbidden unit state change
	ErrInvalidUnitTransition = errors.New("domain: invalid unit state transition")
)

// Legal plate formats: AAA123 (old) and AA123AA (Mercosur)
var (
	plateOldFormat      = regexp.MustCompile(`^[A-Z]{3}[0-9]{3}$`)
	plateMercosurFormat = regexp.MustCompile(`^[A-Z]{2}[0-9]{3}[A-Z]{2}$`)
)

// UnitState represents the operational state of a physical vehicle
type UnitState string

const (
	UnitEnabled        UnitState = "enabled"
	UnitDisabled       UnitState = "disabled"
	UnitDecommissioned UnitState = "decommissioned"
)

// VehicleUnit is one physical vehicle identified by its license plate.
// Only enabled units participate in availability search.
type VehicleUnit struct {
	Plate    string
	ModelID  *int64 // nil for a unit not yet assigned to a model
	BranchID int64
	Year     int
	State    UnitState
}

// NormalizePlate uppercases and trims a raw plate string
func NormalizePlate(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}

// ValidatePlate checks a normalized plate against the two legal formats
func ValidatePlate(plate string) error {
	if plateOldFormat.MatchString(plate) || plateMercosurFormat.MatchString(plate) {
		return nil
	}
	return ErrInvalidPlate
}

// Validate checks the unit's own invariants
func (u *VehicleUnit) Validate() error {
	if err := ValidatePlate(u.Plate); err != nil {
		return err
	}
	if u.BranchID <= 0 {
		return ErrInvalidUnit
	}
	if u.Year < MinVehicleYear || u.Year > time.Now().In(RentalLocation).Year()+1 {
		return ErrInvalidUnit
	}
	switch u.State {
	case UnitEnabled, UnitDisabled, UnitDecommissioned:
		return nil
	default:
		return ErrInvalidUnit
	}
}

// CanLeaveEnabled reports whether the unit may leave the enabled state
// given whether it still has a pending reservation assigned to it
func (u *VehicleUnit) CanLeaveEnabled(hasPendingAssigned bool) bool {
	return !hasPendingAssigned
}
