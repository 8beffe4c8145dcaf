package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func TestNewPartialRefundPolicy(t *testing.T) {
	tests := []struct {
		name    string
		percent string
		wantErr bool
	}{
		{"zero percent is legal", "0", false},
		{"thirty percent", "30", false},
		{"just below the bound", "99.99", false},
		{"hundred percent is full refund territory", "100", true},
		{"negative", "-1", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPartialRefundPolicy(dec(tt.percent))
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPolicy)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewCancellationPolicy(t *testing.T) {
	t.Run("percent alongside no_refund is illegal", func(t *testing.T) {
		p := dec("30")
		_, err := NewCancellationPolicy(PolicyNoRefund, &p)
		assert.ErrorIs(t, err, ErrInvalidPolicy)
	})

	t.Run("percent alongside full_refund is illegal", func(t *testing.T) {
		p := dec("30")
		_, err := NewCancellationPolicy(PolicyFullRefund, &p)
		assert.ErrorIs(t, err, ErrInvalidPolicy)
	})

	t.Run("partial without percent is illegal", func(t *testing.T) {
		_, err := NewCancellationPolicy(PolicyPartialRefund, nil)
		assert.ErrorIs(t, err, ErrInvalidPolicy)
	})

	t.Run("unknown kind is rejected", func(t *testing.T) {
		_, err := NewCancellationPolicy(PolicyKind("whatever"), nil)
		assert.ErrorIs(t, err, ErrInvalidPolicy)
	})

	t.Run("zero policy is detectable", func(t *testing.T) {
		var p CancellationPolicy
		assert.True(t, p.IsZero())
		assert.False(t, NewNoRefundPolicy().IsZero())
	})
}

func TestApplyRefund(t *testing.T) {
	tests := []struct {
		name       string
		policy     CancellationPolicy
		base       string
		addons     string
		wantBase   string
		wantAddons string
	}{
		{"full refund zeroes both components", NewFullRefundPolicy(), "300", "45", "0", "0"},
		{"no refund keeps both components", NewNoRefundPolicy(), "500", "0", "500", "0"},
		{"partial 30 keeps 70 percent", mustPartial(t, "30"), "300", "30", "210", "21"},
		{"partial 0 keeps everything", mustPartial(t, "0"), "120", "10", "120", "10"},
		{"partial rounds to cents", mustPartial(t, "33"), "100", "0", "67", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			base, addons, err := tt.policy.ApplyRefund(dec(tt.base), dec(tt.addons))
			require.NoError(t, err)
			assert.True(t, dec(tt.wantBase).Equal(base), "base: want %s, got %s", tt.wantBase, base)
			assert.True(t, dec(tt.wantAddons).Equal(addons), "addons: want %s, got %s", tt.wantAddons, addons)
		})
	}
}

// Refund never increases the payable amount, for any policy kind
func TestApplyRefundMonotonic(t *testing.T) {
	policies := []CancellationPolicy{
		NewFullRefundPolicy(),
		NewNoRefundPolicy(),
		mustPartial(t, "30"),
		mustPartial(t, "99.99"),
	}

	base, addons := dec("333.33"), dec("66.67")
	before := base.Add(addons)

	for _, p := range policies {
		newBase, newAddons, err := p.ApplyRefund(base, addons)
		require.NoError(t, err)
		after := newBase.Add(newAddons)
		assert.True(t, after.LessThanOrEqual(before), "policy %s increased the total", p.Kind())
		assert.False(t, newBase.IsNegative())
		assert.False(t, newAddons.IsNegative())
	}
}

func mustPartial(t *testing.T, percent string) CancellationPolicy {
	t.Helper()
	p, err := NewPartialRefundPolicy(dec(percent))
	require.NoError(t, err)
	return p
}
