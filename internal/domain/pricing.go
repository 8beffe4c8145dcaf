package domain

import "github.com/shopspring/decimal"

// BaseTotal computes the rental base charge: daily rate times the
// inclusive day count of the period
func BaseTotal(dailyPrice decimal.Decimal, period DateRange) decimal.Decimal {
	return dailyPrice.Mul(decimal.NewFromInt(int64(period.Days()))).Round(2)
}

// AddonsTotal computes the charge for a set of addons over the period.
// Each distinct addon contributes once for the full duration; callers are
// expected to pass a deduplicated set.
func AddonsTotal(addons []*Addon, period DateRange) decimal.Decimal {
	days := decimal.NewFromInt(int64(period.Days()))
	total := decimal.Zero
	for _, a := range addons {
		total = total.Add(a.DailyPrice.Mul(days))
	}
	return total.Round(2)
}
