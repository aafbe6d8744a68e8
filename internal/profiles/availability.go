package profiles

import "github.com/cofoundr/cofoundr-backend/pkg/enums"

// AvailabilityLabel returns the display copy for an availability status.
func AvailabilityLabel(status enums.AvailabilityStatus) string {
	switch status {
	case enums.AvailabilityStatusAvailable:
		return "Available for opportunities"
	case enums.AvailabilityStatusLookingForProjects:
		return "Looking for projects"
	case enums.AvailabilityStatusBusy:
		return "Currently busy"
	case enums.AvailabilityStatusNotAvailable:
		return "Not available"
	default:
		return "Not set"
	}
}

// AvailabilityColor returns the badge classes for an availability status.
func AvailabilityColor(status enums.AvailabilityStatus) string {
	switch status {
	case enums.AvailabilityStatusAvailable:
		return "bg-green-100 text-green-800"
	case enums.AvailabilityStatusLookingForProjects:
		return "bg-blue-100 text-blue-800"
	case enums.AvailabilityStatusBusy:
		return "bg-yellow-100 text-yellow-800"
	default:
		return "bg-gray-100 text-gray-800"
	}
}
