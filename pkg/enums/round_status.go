package enums

import "fmt"

// RoundStatus tracks whether an investment round accepts commitments.
type RoundStatus string

const (
	RoundStatusOpen   RoundStatus = "open"
	RoundStatusClosed RoundStatus = "closed"
)

var validRoundStatuses = []RoundStatus{
	RoundStatusOpen,
	RoundStatusClosed,
}

// String implements fmt.Stringer.
func (r RoundStatus) String() string {
	return string(r)
}

// IsValid reports whether the value is a known RoundStatus.
func (r RoundStatus) IsValid() bool {
	for _, candidate := range validRoundStatuses {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseRoundStatus converts raw input into a RoundStatus.
func ParseRoundStatus(value string) (RoundStatus, error) {
	for _, candidate := range validRoundStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid round status %q", value)
}
