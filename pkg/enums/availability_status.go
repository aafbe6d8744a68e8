package enums

import "fmt"

// AvailabilityStatus captures whether a member is open to new work.
type AvailabilityStatus string

const (
	AvailabilityStatusAvailable          AvailabilityStatus = "available"
	AvailabilityStatusLookingForProjects AvailabilityStatus = "looking_for_projects"
	AvailabilityStatusBusy               AvailabilityStatus = "busy"
	AvailabilityStatusNotAvailable       AvailabilityStatus = "not_available"
)

var validAvailabilityStatuses = []AvailabilityStatus{
	AvailabilityStatusAvailable,
	AvailabilityStatusLookingForProjects,
	AvailabilityStatusBusy,
	AvailabilityStatusNotAvailable,
}

// String implements fmt.Stringer.
func (a AvailabilityStatus) String() string {
	return string(a)
}

// IsValid reports whether the value is a known AvailabilityStatus.
func (a AvailabilityStatus) IsValid() bool {
	for _, candidate := range validAvailabilityStatuses {
		if candidate == a {
			return true
		}
	}
	return false
}

// ParseAvailabilityStatus converts raw input into an AvailabilityStatus.
func ParseAvailabilityStatus(value string) (AvailabilityStatus, error) {
	for _, candidate := range validAvailabilityStatuses {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid availability status %q", value)
}
