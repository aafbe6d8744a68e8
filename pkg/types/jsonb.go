package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cofoundr/cofoundr-backend/pkg/enums"
)

// StringList is an ordered list of strings persisted as JSONB.
type StringList []string

// Value marshals the list into JSON for Postgres.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	buf, err := json.Marshal([]string(l))
	if err != nil {
		return nil, err
	}
	return string(buf), nil
}

// Scan decodes JSONB into the list.
func (l *StringList) Scan(value interface{}) error {
	raw, err := jsonBytes("string list", value)
	if err != nil {
		return err
	}
	if raw == nil {
		*l = nil
		return nil
	}
	var result []string
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*l = result
	return nil
}

// SkillProficiencies maps a skill name to its proficiency level.
type SkillProficiencies map[string]enums.SkillProficiency

func (p SkillProficiencies) Value() (driver.Value, error) {
	if p == nil {
		return "{}", nil
	}
	buf, err := json.Marshal(map[string]enums.SkillProficiency(p))
	if err != nil {
		return nil, err
	}
	return string(buf), nil
}

func (p *SkillProficiencies) Scan(value interface{}) error {
	raw, err := jsonBytes("skill proficiencies", value)
	if err != nil {
		return err
	}
	if raw == nil {
		*p = nil
		return nil
	}
	result := make(SkillProficiencies)
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*p = result
	return nil
}

// SocialLinks holds the public profile links a member chose to share.
type SocialLinks struct {
	LinkedIn  string `json:"linkedin,omitempty"`
	GitHub    string `json:"github,omitempty"`
	Twitter   string `json:"twitter,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
	Website   string `json:"website,omitempty"`
}

// Links returns the links keyed by network, skipping blanks.
func (s SocialLinks) Links() map[string]string {
	out := map[string]string{}
	for k, v := range map[string]string{
		"linkedin":  s.LinkedIn,
		"github":    s.GitHub,
		"twitter":   s.Twitter,
		"portfolio": s.Portfolio,
		"website":   s.Website,
	} {
		if strings.TrimSpace(v) != "" {
			out[k] = v
		}
	}
	return out
}

// HasAny reports whether at least one link is set.
func (s SocialLinks) HasAny() bool {
	return len(s.Links()) > 0
}

func (s SocialLinks) Value() (driver.Value, error) {
	buf, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return string(buf), nil
}

func (s *SocialLinks) Scan(value interface{}) error {
	raw, err := jsonBytes("social links", value)
	if err != nil {
		return err
	}
	if raw == nil {
		*s = SocialLinks{}
		return nil
	}
	var result SocialLinks
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*s = result
	return nil
}

func jsonBytes(kind string, value interface{}) ([]byte, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case string:
		return []byte(v), nil
	case []byte:
		return v, nil
	default:
		return nil, fmt.Errorf("%s: unsupported scan type %T", kind, value)
	}
}
