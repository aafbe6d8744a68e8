package enums

import "fmt"

// UserType tags a profile as a founder or an investor.
type UserType string

const (
	UserTypeFounder  UserType = "founder"
	UserTypeInvestor UserType = "investor"
)

var validUserTypes = []UserType{
	UserTypeFounder,
	UserTypeInvestor,
}

// String implements fmt.Stringer.
func (u UserType) String() string {
	return string(u)
}

// IsValid reports whether the value is a known UserType.
func (u UserType) IsValid() bool {
	for _, candidate := range validUserTypes {
		if candidate == u {
			return true
		}
	}
	return false
}

// ParseUserType converts raw input into an UserType.
func ParseUserType(value string) (UserType, error) {
	for _, candidate := range validUserTypes {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user type %q", value)
}
