package profiles

import (
	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
	"github.com/cofoundr/cofoundr-backend/pkg/enums"
)

// SkillWithProficiency pairs a listed skill with its self-assessed level.
type SkillWithProficiency struct {
	Skill       string                 `json:"skill"`
	Proficiency enums.SkillProficiency `json:"proficiency"`
}

// FormatSkills returns the profile's skills in listed order. Skills without a
// recorded level default to intermediate.
func FormatSkills(p *models.Profile) []SkillWithProficiency {
	if p == nil {
		return []SkillWithProficiency{}
	}
	out := make([]SkillWithProficiency, 0, len(p.Skills))
	for _, skill := range p.Skills {
		level, ok := p.SkillProficiencies[skill]
		if !ok || !level.IsValid() {
			level = enums.SkillProficiencyIntermediate
		}
		out = append(out, SkillWithProficiency{Skill: skill, Proficiency: level})
	}
	return out
}
