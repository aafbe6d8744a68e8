package profiles

import (
	"math"
	"unicode/utf8"

	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
)

// Completion summarizes how much of a profile is filled in.
type Completion struct {
	Percentage      int      `json:"percentage"`
	CompletedFields []string `json:"completed_fields"`
	MissingFields   []string `json:"missing_fields"`
}

type completionCheck struct {
	label string
	done  func(p *models.Profile) bool
}

var completionChecks = []completionCheck{
	{"Name", func(p *models.Profile) bool { return present(p.Name) }},
	{"Bio", func(p *models.Profile) bool { return longerThan(p.Bio, 10) }},
	{"Profile Picture", func(p *models.Profile) bool { return present(p.AvatarURL) }},
	{"Skills (at least 3)", func(p *models.Profile) bool { return len(p.Skills) >= 3 }},
	{"Experience", func(p *models.Profile) bool { return longerThan(p.Experience, 20) }},
	{"Professional Summary", func(p *models.Profile) bool { return longerThan(p.ProfessionalSummary, 20) }},
	{"Location", func(p *models.Profile) bool { return present(p.Location) }},
	{"Availability Status", func(p *models.Profile) bool {
		return p.AvailabilityStatus != nil && *p.AvailabilityStatus != ""
	}},
	{"At least one social link", func(p *models.Profile) bool { return p.SocialLinks.HasAny() }},
}

// CompletionFieldCount is the number of predicates a profile is scored on.
var CompletionFieldCount = len(completionChecks)

// ComputeCompletion scores the profile against the fixed, ordered checklist.
// A nil profile scores zero with every field missing.
func ComputeCompletion(p *models.Profile) Completion {
	out := Completion{
		CompletedFields: []string{},
		MissingFields:   []string{},
	}
	for _, check := range completionChecks {
		if p != nil && check.done(p) {
			out.CompletedFields = append(out.CompletedFields, check.label)
			continue
		}
		out.MissingFields = append(out.MissingFields, check.label)
	}
	out.Percentage = int(math.Round(100 * float64(len(out.CompletedFields)) / float64(len(completionChecks))))
	return out
}

func present(s string) bool {
	return s != ""
}

func longerThan(s string, n int) bool {
	return utf8.RuneCountInString(s) > n
}
