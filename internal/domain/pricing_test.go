package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBaseTotal(t *testing.T) {
	period := mustRange(t, date(2025, 7, 1), date(2025, 7, 3)) // 3 days

	total := BaseTotal(dec("100"), period)
	assert.True(t, dec("300").Equal(total), "want 300, got %s", total)

	sameDay := mustRange(t, date(2025, 7, 1), date(2025, 7, 1))
	assert.True(t, dec("100").Equal(BaseTotal(dec("100"), sameDay)))
}

func TestAddonsTotal(t *testing.T) {
	period := mustRange(t, date(2025, 7, 1), date(2025, 7, 3)) // 3 days

	addons := []*Addon{
		{ID: 1, Name: "GPS", DailyPrice: dec("10")},
		{ID: 2, Name: "Silla infantil", DailyPrice: dec("5.50")},
	}

	total := AddonsTotal(addons, period)
	assert.True(t, dec("46.50").Equal(total), "want 46.50, got %s", total)

	assert.True(t, AddonsTotal(nil, period).IsZero())
}

func TestCurrentTotal(t *testing.T) {
	r := &Reservation{
		BaseTotal:   dec("300"),
		AddonsTotal: dec("30"),
		CreatedAt:   time.Now(),
	}
	assert.True(t, dec("330").Equal(r.CurrentTotal()))
}
