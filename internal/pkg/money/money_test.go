package money

import (
	"testing"
)

func TestNetSalesCents(t *testing.T) {
	cases := []struct {
		gross int64
		want  int64
	}{
		{10000, 8000}, // $100.00 -> $80.00
		{0, 0},
		{1, 1},     // 0.8 rounds up
		{3, 2},     // 2.4 rounds down
		{333, 266}, // 266.4
		{125, 100},
	}
	for _, c := range cases {
		got := NetSalesCents(c.gross)
		if got != c.want {
			t.Errorf("NetSalesCents(%d) = %d, want %d", c.gross, got, c.want)
		}
	}
}

func TestApplyBps(t *testing.T) {
	cases := []struct {
		amount int64
		bps    int64
		want   int64
	}{
		{333, 250, 8}, // round(8.325) = 8
		{10000, 2000, 2000},
		{1, 5000, 1},   // 0.5 rounds half away from zero
		{-1, 5000, -1}, // symmetric for negatives
		{999, 10000, 999},
		{0, 250, 0},
	}
	for _, c := range cases {
		got := ApplyBps(c.amount, c.bps)
		if got != c.want {
			t.Errorf("ApplyBps(%d, %d) = %d, want %d", c.amount, c.bps, got, c.want)
		}
	}
}

func TestCommissionCents(t *testing.T) {
	if got := CommissionCents(8000, 500); got != 400 {
		t.Errorf("CommissionCents(8000, 500) = %d, want 400", got)
	}
	if got := CommissionCents(12345, 1000); got != 1235 {
		t.Errorf("CommissionCents(12345, 1000) = %d, want 1235", got)
	}
}

func TestNetPayCents(t *testing.T) {
	if got := NetPayCents(100000, 5000, 2500, 1000); got != 106500 {
		t.Errorf("NetPayCents = %d, want 106500", got)
	}
	if got := NetPayCents(100000, 0, 0, 0); got != 100000 {
		t.Errorf("NetPayCents with zero extras = %d, want 100000", got)
	}
}

func TestBasePayCents(t *testing.T) {
	cases := []struct {
		minutes int64
		rate    int64
		want    int64
	}{
		{60, 850, 850},
		{90, 850, 1275},
		{1, 850, 14}, // round(14.16)
		{7, 850, 99}, // round(99.16)
		{0, 850, 0},
	}
	for _, c := range cases {
		got := BasePayCents(c.minutes, c.rate)
		if got != c.want {
			t.Errorf("BasePayCents(%d, %d) = %d, want %d", c.minutes, c.rate, got, c.want)
		}
	}
}

func TestMulRound(t *testing.T) {
	// Multiplier applies to the already-rounded base amount.
	if got := MulRound(8, 2.0); got != 16 {
		t.Errorf("MulRound(8, 2.0) = %d, want 16", got)
	}
	if got := MulRound(100, 1.5); got != 150 {
		t.Errorf("MulRound(100, 1.5) = %d, want 150", got)
	}
	if got := MulRound(3, 0.5); got != 2 {
		t.Errorf("MulRound(3, 0.5) = %d, want 2 (1.5 rounds half away)", got)
	}
}

func TestFormatUSD(t *testing.T) {
	cases := []struct {
		cents int64
		want  string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{123456789, "$1,234,567.89"},
		{100000, "$1,000.00"},
		{-2500, "-$25.00"},
	}
	for _, c := range cases {
		got := FormatUSD(c.cents)
		if got != c.want {
			t.Errorf("FormatUSD(%d) = %q, want %q", c.cents, got, c.want)
		}
	}
}
