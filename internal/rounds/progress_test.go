package rounds

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestProgress(t *testing.T) {
	tests := []struct {
		name    string
		raised  int64
		seeking int64
		want    float64
	}{
		{"quarter", 25_000, 100_000, 25},
		{"oversubscribed", 150_000, 100_000, 150},
		{"zero seeking", 10, 0, 0},
		{"nothing raised", 0, 50_000, 0},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := Progress(decimal.NewFromInt(tc.raised), decimal.NewFromInt(tc.seeking))
			if got != tc.want {
				t.Fatalf("Progress() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestProgressBarClamps(t *testing.T) {
	if got := ProgressBar(150); got != 100 {
		t.Fatalf("expected 100, got %v", got)
	}
	if got := ProgressBar(-5); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
	if got := ProgressBar(42.5); got != 42.5 {
		t.Fatalf("expected 42.5, got %v", got)
	}
}

func TestDaysLeftAndLabel(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	if got := DaysLeft(now.Add(36*time.Hour), now); got != 2 {
		t.Fatalf("expected partial days to round up to 2, got %d", got)
	}
	if got := DaysLeft(now.Add(24*time.Hour), now); got != 1 {
		t.Fatalf("expected 1, got %d", got)
	}
	if got := DaysLeft(now.Add(-time.Hour), now); got != 0 {
		t.Fatalf("expected 0 for a just-passed deadline, got %d", got)
	}

	if got := DeadlineLabel(0); got != "Expired" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := DeadlineLabel(-3); got != "Expired" {
		t.Fatalf("unexpected label %q", got)
	}
	if got := DeadlineLabel(12); got != "12 days left" {
		t.Fatalf("unexpected label %q", got)
	}
}
