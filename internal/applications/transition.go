package applications

import (
	"github.com/cofoundr/cofoundr-backend/pkg/enums"
	pkgerrors "github.com/cofoundr/cofoundr-backend/pkg/errors"
)

// Transition checks a review decision against the application's current
// status. It reports whether the status changes; repeating the current
// terminal status is a successful no-op.
func Transition(current, target enums.ApplicationStatus) (bool, error) {
	if target != enums.ApplicationStatusAccepted && target != enums.ApplicationStatusRejected {
		return false, pkgerrors.New(pkgerrors.CodeValidation, "status must be accepted or rejected")
	}
	if current == target {
		return false, nil
	}
	if current != enums.ApplicationStatusPending {
		return false, pkgerrors.New(pkgerrors.CodeStateConflict, "application has already been "+string(current))
	}
	return true, nil
}
