package enums

import "fmt"

// PositionStatus tracks whether a position accepts applications.
type PositionStatus string

const (
	PositionStatusOpen   PositionStatus = "open"
	PositionStatusClosed PositionStatus = "closed"
)

var validPositionStatuses = []PositionStatus{
	PositionStatusOpen,
	PositionStatusClosed,
}

// String implements fmt.Stringer.
func (p PositionStatus) String() string {
	return string(p)
}

// IsValid reports whether the value is a known PositionStatus.
func (p PositionStatus) IsValid() bool {
	for _, candidate := range validPositionStatuses {
		if candidate == p {
			return true
		}
	}
	return false
}

// ParsePositionStatus converts raw input into a PositionStatus.
func ParsePositionStatus(value string) (PositionStatus, error) {
	for _, candidate := range validPositionStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid position status %q", value)
}
