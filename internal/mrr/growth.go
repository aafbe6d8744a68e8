package mrr

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthLayout is the calendar-month key used by MRR rows.
const MonthLayout = "2006-01"

var hundred = decimal.NewFromInt(100)

// Growth is the percentage change from previous to current revenue, or 0
// when there is no positive baseline.
func Growth(previous, current decimal.Decimal) float64 {
	if !previous.IsPositive() {
		return 0
	}
	return current.Sub(previous).Div(previous).Mul(hundred).InexactFloat64()
}

// SeriesGrowth applies Growth to the last two points of a month-ordered series.
func SeriesGrowth(points []RecordDTO) float64 {
	if len(points) < 2 {
		return 0
	}
	return Growth(points[len(points)-2].Revenue, points[len(points)-1].Revenue)
}

// MonthKey formats t as the UTC calendar month key.
func MonthKey(t time.Time) string {
	return t.UTC().Format(MonthLayout)
}

// ValidMonth reports whether value is a YYYY-MM key.
func ValidMonth(value string) bool {
	if len(value) != len(MonthLayout) {
		return false
	}
	_, err := time.Parse(MonthLayout, value)
	return err == nil
}
