package domain

import (
	"errors"
	"time"
)

// ErrInvalidDateRange is returned for a malformed rental period
var ErrInvalidDateRange = errors.New("domain: invalid date range")

// DateRange is an inclusive rental period at day granularity.
// Both boundaries are normalized to midnight in the rental timezone.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// NewDateRange builds a normalized range. The end day is part of the
// rental, so Start == End is a one-day rental.
func NewDateRange(start, end time.Time) (DateRange, error) {
	if start.IsZero() || end.IsZero() {
		return DateRange{}, ErrInvalidDateRange
	}

	s := ToRentalDate(start)
	e := ToRentalDate(end)

	if e.Before(s) {
		return DateRange{}, ErrInvalidDateRange
	}

	return DateRange{Start: s, End: e}, nil
}

// Days returns the rental length in whole days, boundaries inclusive
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// Overlaps reports whether two inclusive ranges share at least one day
func (r DateRange) Overlaps(other DateRange) bool {
	return !r.Start.After(other.End) && !r.End.Before(other.Start)
}

// ToRentalDate truncates a timestamp to its day in the rental timezone.
// All day-boundary math must go through this to avoid timezone drift.
func ToRentalDate(t time.Time) time.Time {
	local := t.In(RentalLocation)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, RentalLocation)
}
