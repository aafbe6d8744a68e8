package applications

import (
	"testing"

	"github.com/cofoundr/cofoundr-backend/pkg/enums"
	pkgerrors "github.com/cofoundr/cofoundr-backend/pkg/errors"
)

func TestTransition(t *testing.T) {
	cases := []struct {
		name    string
		current enums.ApplicationStatus
		target  enums.ApplicationStatus
		changed bool
		code    pkgerrors.Code
	}{
		{name: "accept pending", current: enums.ApplicationStatusPending, target: enums.ApplicationStatusAccepted, changed: true},
		{name: "reject pending", current: enums.ApplicationStatusPending, target: enums.ApplicationStatusRejected, changed: true},
		{name: "repeat accept", current: enums.ApplicationStatusAccepted, target: enums.ApplicationStatusAccepted},
		{name: "repeat reject", current: enums.ApplicationStatusRejected, target: enums.ApplicationStatusRejected},
		{name: "reject accepted", current: enums.ApplicationStatusAccepted, target: enums.ApplicationStatusRejected, code: pkgerrors.CodeStateConflict},
		{name: "accept rejected", current: enums.ApplicationStatusRejected, target: enums.ApplicationStatusAccepted, code: pkgerrors.CodeStateConflict},
		{name: "back to pending", current: enums.ApplicationStatusAccepted, target: enums.ApplicationStatusPending, code: pkgerrors.CodeValidation},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			changed, err := Transition(tc.current, tc.target)
			if tc.code != "" {
				if !pkgerrors.IsCode(err, tc.code) {
					t.Fatalf("expected %s, got %v", tc.code, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if changed != tc.changed {
				t.Fatalf("expected changed=%v, got %v", tc.changed, changed)
			}
		})
	}
}
