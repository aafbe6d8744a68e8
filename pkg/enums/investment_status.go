package enums

import "fmt"

// InvestmentStatus is the confirmation state of an investment.
type InvestmentStatus string

const (
	InvestmentStatusPending   InvestmentStatus = "pending"
	InvestmentStatusConfirmed InvestmentStatus = "confirmed"
)

var validInvestmentStatuses = []InvestmentStatus{
	InvestmentStatusPending,
	InvestmentStatusConfirmed,
}

// String implements fmt.Stringer.
func (i InvestmentStatus) String() string {
	return string(i)
}

// IsValid reports whether the value is a known InvestmentStatus.
func (i InvestmentStatus) IsValid() bool {
	for _, candidate := range validInvestmentStatuses {
		if candidate == i {
			return true
		}
	}
	return false
}

// ParseInvestmentStatus converts raw input into an InvestmentStatus.
func ParseInvestmentStatus(value string) (InvestmentStatus, error) {
	for _, candidate := range validInvestmentStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid investment status %q", value)
}
