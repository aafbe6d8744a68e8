package rounds

import (
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"
)

const dayMillis = 86_400_000

var hundred = decimal.NewFromInt(100)

// Progress is raised as a percentage of seeking. It is not clamped, so an
// oversubscribed round reports more than 100.
func Progress(raised, seeking decimal.Decimal) float64 {
	if !seeking.IsPositive() {
		return 0
	}
	return raised.Div(seeking).Mul(hundred).InexactFloat64()
}

// ProgressBar clamps a progress percentage into [0,100].
func ProgressBar(progress float64) float64 {
	return math.Max(0, math.Min(progress, 100))
}

// DaysLeft counts the whole days until deadline, rounding partial days up.
func DaysLeft(deadline, now time.Time) int {
	ms := deadline.Sub(now).Milliseconds()
	return int(math.Ceil(float64(ms) / dayMillis))
}

// DeadlineLabel renders DaysLeft for display.
func DeadlineLabel(daysLeft int) string {
	if daysLeft <= 0 {
		return "Expired"
	}
	return fmt.Sprintf("%d days left", daysLeft)
}
