package enums

import "fmt"

// SkillProficiency grades how strong a listed skill is.
type SkillProficiency string

const (
	SkillProficiencyBeginner     SkillProficiency = "beginner"
	SkillProficiencyIntermediate SkillProficiency = "intermediate"
	SkillProficiencyAdvanced     SkillProficiency = "advanced"
	SkillProficiencyExpert       SkillProficiency = "expert"
)

var validSkillProficiencies = []SkillProficiency{
	SkillProficiencyBeginner,
	SkillProficiencyIntermediate,
	SkillProficiencyAdvanced,
	SkillProficiencyExpert,
}

// String implements fmt.Stringer.
func (s SkillProficiency) String() string {
	return string(s)
}

// IsValid reports whether the value is a known SkillProficiency.
func (s SkillProficiency) IsValid() bool {
	for _, candidate := range validSkillProficiencies {
		if candidate == s {
			return true
		}
	}
	return false
}

// ParseSkillProficiency converts raw input into a SkillProficiency.
func ParseSkillProficiency(value string) (SkillProficiency, error) {
	for _, candidate := range validSkillProficiencies {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid skill proficiency %q", value)
}
