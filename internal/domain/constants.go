package domain

import "time"

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// RentalLocation is the canonical timezone for all day-boundary math.
// Reservation dates are stored and compared at day granularity in this
// zone, so client-local timezones cannot shift a rental by one day.
var RentalLocation = time.FixedZone("UTC-3", -3*60*60)

// Business validation constants
const (
	MaxRentalDays        = 90
	MaxRefundPercent     = 100 // exclusive upper bound for partial refunds
	MaxPassengerCapacity = 60
	MinVehicleYear       = 1950
	MaxAddonNameLength   = 100
	MaxBranchNameLength  = 100
)

// BlockingStates are the reservation states that occupy inventory and must
// be considered by availability and overlap checks.
var BlockingStates = []ReservationState{
	StatePending,
	StateDelivered,
}
