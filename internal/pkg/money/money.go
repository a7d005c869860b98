package money

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// All amounts are integer cents. Percentages are integer basis points
// (10000 bps = 100%). Every division rounds half away from zero so cents
// are never lost asymmetrically.

const (
	// AgencyFeeBps is the fixed agency cut taken off gross sales.
	AgencyFeeBps = 2000 // 20%

	// NetSalesMultiplierBps is the share retained after the agency fee.
	NetSalesMultiplierBps = 10000 - AgencyFeeBps // 80%
)

// ApplyBps returns round(amount × bps / 10000).
func ApplyBps(amountCents, bps int64) int64 {
	return decimal.NewFromInt(amountCents).
		Mul(decimal.NewFromInt(bps)).
		DivRound(decimal.NewFromInt(10000), 0).
		IntPart()
}

// NetSalesCents derives net sales from gross sales after the agency fee.
func NetSalesCents(grossSalesCents int64) int64 {
	return ApplyBps(grossSalesCents, NetSalesMultiplierBps)
}

// CommissionCents returns the chatter commission on net sales.
func CommissionCents(netSalesCents, commissionBps int64) int64 {
	return ApplyBps(netSalesCents, commissionBps)
}

// NetPayCents combines the payroll components. All inputs are already
// integer cents, so no rounding happens here.
func NetPayCents(basePayCents, commissionCents, bonusTotalCents, deductionsCents int64) int64 {
	return basePayCents + commissionCents + bonusTotalCents - deductionsCents
}

// BasePayCents returns round(minutes × hourlyRateCents / 60).
func BasePayCents(workedMinutes int64, hourlyRateCents int64) int64 {
	return decimal.NewFromInt(workedMinutes).
		Mul(decimal.NewFromInt(hourlyRateCents)).
		DivRound(decimal.NewFromInt(60), 0).
		IntPart()
}

// MulRound scales an already-rounded cent amount by a float factor and
// rounds once. Non-finite factors are treated as 1.
func MulRound(amountCents int64, factor float64) int64 {
	if math.IsNaN(factor) || math.IsInf(factor, 0) {
		return amountCents
	}
	return decimal.NewFromInt(amountCents).
		Mul(decimal.NewFromFloat(factor)).
		Round(0).
		IntPart()
}

// WholeDollars returns the amount rounded to whole dollars, for display.
func WholeDollars(amountCents int64) int64 {
	return decimal.NewFromInt(amountCents).
		DivRound(decimal.NewFromInt(100), 0).
		IntPart()
}

// FormatUSD renders cents as a currency string with thousands separators,
// e.g. 123456789 -> "$1,234,567.89".
func FormatUSD(amountCents int64) string {
	neg := amountCents < 0
	if neg {
		amountCents = -amountCents
	}
	dollars := amountCents / 100
	cents := amountCents % 100

	s := fmt.Sprintf("%d", dollars)
	var grouped []byte
	for i := 0; i < len(s); i++ {
		if i > 0 && (len(s)-i)%3 == 0 {
			grouped = append(grouped, ',')
		}
		grouped = append(grouped, s[i])
	}

	sign := ""
	if neg {
		sign = "-"
	}
	return fmt.Sprintf("%s$%s.%02d", sign, grouped, cents)
}
