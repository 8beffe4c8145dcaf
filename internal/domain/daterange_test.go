package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, RentalLocation)
}

func mustRange(t *testing.T, start, end time.Time) DateRange {
	t.Helper()
	r, err := NewDateRange(start, end)
	require.NoError(t, err)
	return r
}

func TestNewDateRange(t *testing.T) {
	t.Run("end before start is rejected", func(t *testing.T) {
		_, err := NewDateRange(date(2025, 6, 10), date(2025, 6, 9))
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("zero boundaries are rejected", func(t *testing.T) {
		_, err := NewDateRange(time.Time{}, date(2025, 6, 9))
		assert.ErrorIs(t, err, ErrInvalidDateRange)
	})

	t.Run("boundaries are normalized to rental timezone days", func(t *testing.T) {
		// 01:00 UTC on June 10 is still June 9 at UTC-3
		start := time.Date(2025, 6, 10, 1, 0, 0, 0, time.UTC)
		r, err := NewDateRange(start, start)
		require.NoError(t, err)
		assert.Equal(t, date(2025, 6, 9), r.Start)
	})
}

func TestDateRangeDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		days  int
	}{
		{"same day counts as one", date(2025, 6, 10), date(2025, 6, 10), 1},
		{"two days apart counts three", date(2025, 6, 10), date(2025, 6, 12), 3},
		{"full week", date(2025, 6, 1), date(2025, 6, 7), 7},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := mustRange(t, tt.start, tt.end)
			assert.Equal(t, tt.days, r.Days())
		})
	}
}

func TestDateRangeOverlaps(t *testing.T) {
	base := mustRange(t, date(2025, 6, 10), date(2025, 6, 15))

	tests := []struct {
		name     string
		other    DateRange
		overlaps bool
	}{
		{"identical", mustRange(t, date(2025, 6, 10), date(2025, 6, 15)), true},
		{"contained", mustRange(t, date(2025, 6, 11), date(2025, 6, 12)), true},
		{"starts on base end day", mustRange(t, date(2025, 6, 15), date(2025, 6, 20)), true},
		{"ends on base start day", mustRange(t, date(2025, 6, 5), date(2025, 6, 10)), true},
		{"entirely before", mustRange(t, date(2025, 6, 1), date(2025, 6, 9)), false},
		{"entirely after", mustRange(t, date(2025, 6, 16), date(2025, 6, 20)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlaps, base.Overlaps(tt.other))
			assert.Equal(t, tt.overlaps, tt.other.Overlaps(base))
		})
	}
}
