package investments

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestFormatDollars(t *testing.T) {
	tests := map[string]string{
		"1000":      "1,000",
		"25000":     "25,000",
		"999":       "999",
		"1234567":   "1,234,567",
		"1500.5":    "1,500.5",
		"100000.25": "100,000.25",
	}
	for in, want := range tests {
		if got := formatDollars(decimal.RequireFromString(in)); got != want {
			t.Fatalf("formatDollars(%s) = %q, want %q", in, got, want)
		}
	}
}
