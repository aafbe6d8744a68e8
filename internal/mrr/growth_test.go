package mrr

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestGrowth(t *testing.T) {
	cases := []struct {
		prev, cur int64
		want      float64
	}{
		{1000, 1500, 50},
		{2000, 1500, -25},
		{0, 1500, 0},
		{-10, 1500, 0},
		{400, 400, 0},
	}
	for _, tc := range cases {
		if got := Growth(decimal.NewFromInt(tc.prev), decimal.NewFromInt(tc.cur)); got != tc.want {
			t.Fatalf("Growth(%d, %d) = %v, want %v", tc.prev, tc.cur, got, tc.want)
		}
	}
}

func TestSeriesGrowthUsesLastTwoPoints(t *testing.T) {
	points := []RecordDTO{
		{Month: "2025-01", Revenue: decimal.NewFromInt(100)},
		{Month: "2025-02", Revenue: decimal.NewFromInt(1000)},
		{Month: "2025-03", Revenue: decimal.NewFromInt(1500)},
	}
	if got := SeriesGrowth(points); got != 50 {
		t.Fatalf("expected 50, got %v", got)
	}
	if got := SeriesGrowth(points[:1]); got != 0 {
		t.Fatalf("expected 0 for single point, got %v", got)
	}
}

func TestMonthHelpers(t *testing.T) {
	ts := time.Date(2025, 1, 31, 23, 30, 0, 0, time.FixedZone("EST", -5*3600))
	if got := MonthKey(ts); got != "2025-02" {
		t.Fatalf("expected UTC month 2025-02, got %s", got)
	}
	for value, want := range map[string]bool{
		"2025-06": true,
		"2025-13": false,
		"2025-6":  false,
		"25-06":   false,
		"":        false,
	} {
		if got := ValidMonth(value); got != want {
			t.Fatalf("ValidMonth(%q) = %v, want %v", value, got, want)
		}
	}
}
