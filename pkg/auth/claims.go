package auth

import (
	"fmt"
	"strings"

	"github.com/cofoundr/cofoundr-backend/pkg/enums"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// UserMetadata mirrors the provider's user_metadata claim.
type UserMetadata struct {
	Name     string         `json:"name,omitempty"`
	UserType enums.UserType `json:"user_type,omitempty"`
}

// AccessTokenPayload captures the data available when minting a JWT.
type AccessTokenPayload struct {
	UserID   uuid.UUID
	Email    string
	Name     string
	UserType enums.UserType
	JTI      string
}

// AccessTokenClaims represents the provider-issued JWT presented by clients.
type AccessTokenClaims struct {
	Email        string       `json:"email"`
	Role         string       `json:"role,omitempty"`
	UserMetadata UserMetadata `json:"user_metadata"`
	jwt.RegisteredClaims
}

// UserID parses the subject claim.
func (c *AccessTokenClaims) UserID() (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(c.Subject))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid subject: %w", err)
	}
	return id, nil
}

// HookClaims is carried by auth provider event callbacks.
type HookClaims struct {
	jwt.RegisteredClaims
}
