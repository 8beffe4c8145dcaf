package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	// ErrInvalidPolicy is returned for a malformed cancellation policy
	// (unknown kind, or a refund percent outside [0, 100))
	ErrInvalidPolicy = errors.New("domain: invalid cancellation policy")
)

// PolicyKind discriminates the cancellation policy variants
type PolicyKind string

const (
	PolicyFullRefund    PolicyKind = "full_refund"
	PolicyPartialRefund PolicyKind = "partial_refund"
	PolicyNoRefund      PolicyKind = "no_refund"
)

// CancellationPolicy is a tagged variant: RefundPercent is meaningful only
// for the partial_refund kind. Construct through the New* functions so a
// percent can never ride along with full_refund or no_refund.
type CancellationPolicy struct {
	kind          PolicyKind
	refundPercent decimal.Decimal
}

// NewFullRefundPolicy returns the policy that refunds the whole amount
func NewFullRefundPolicy() CancellationPolicy {
	return CancellationPolicy{kind: PolicyFullRefund}
}

// NewNoRefundPolicy returns the policy that keeps the whole amount payable
func NewNoRefundPolicy() CancellationPolicy {
	return CancellationPolicy{kind: PolicyNoRefund}
}

// NewPartialRefundPolicy returns a policy refunding percent of the total.
// The percent must lie in [0, 100).
func NewPartialRefundPolicy(percent decimal.Decimal) (CancellationPolicy, error) {
	if percent.IsNegative() || percent.GreaterThanOrEqual(decimal.NewFromInt(MaxRefundPercent)) {
		return CancellationPolicy{}, ErrInvalidPolicy
	}
	return CancellationPolicy{kind: PolicyPartialRefund, refundPercent: percent}, nil
}

// NewCancellationPolicy rebuilds a policy from its stored representation.
// percent must be nil unless kind is partial_refund.
func NewCancellationPolicy(kind PolicyKind, percent *decimal.Decimal) (CancellationPolicy, error) {
	switch kind {
	case PolicyFullRefund:
		if percent != nil {
			return CancellationPolicy{}, ErrInvalidPolicy
		}
		return NewFullRefundPolicy(), nil
	case PolicyNoRefund:
		if percent != nil {
			return CancellationPolicy{}, ErrInvalidPolicy
		}
		return NewNoRefundPolicy(), nil
	case PolicyPartialRefund:
		if percent == nil {
			return CancellationPolicy{}, ErrInvalidPolicy
		}
		return NewPartialRefundPolicy(*percent)
	default:
		return CancellationPolicy{}, ErrInvalidPolicy
	}
}

// Kind returns the policy discriminator
func (p CancellationPolicy) Kind() PolicyKind {
	return p.kind
}

// RefundPercent returns the refund percent for partial_refund policies,
// and ok=false for every other kind.
func (p CancellationPolicy) RefundPercent() (decimal.Decimal, bool) {
	if p.kind != PolicyPartialRefund {
		return decimal.Decimal{}, false
	}
	return p.refundPercent, true
}

// IsZero reports whether the policy was never constructed. A model loaded
// with a zero policy must be rejected by the core.
func (p CancellationPolicy) IsZero() bool {
	return p.kind == ""
}

// ApplyRefund computes the post-cancellation payable amounts from the
// current base and addons totals. The same percentage applies uniformly
// to both components. The result is never negative and never exceeds
// the inputs, which keeps the current total monotonically non-increasing.
func (p CancellationPolicy) ApplyRefund(baseTotal, addonsTotal decimal.Decimal) (newBase, newAddons decimal.Decimal, err error) {
	switch p.kind {
	case PolicyFullRefund:
		return decimal.Zero, decimal.Zero, nil
	case PolicyNoRefund:
		return baseTotal, addonsTotal, nil
	case PolicyPartialRefund:
		keep := decimal.NewFromInt(MaxRefundPercent).
			Sub(p.refundPercent).
			Div(decimal.NewFromInt(MaxRefundPercent))
		return baseTotal.Mul(keep).Round(2), addonsTotal.Mul(keep).Round(2), nil
	default:
		return decimal.Decimal{}, decimal.Decimal{}, ErrInvalidPolicy
	}
}
