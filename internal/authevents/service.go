// Package authevents applies identity lifecycle callbacks from the auth
// provider to profiles and cached sessions.
package authevents

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/cofoundr/cofoundr-backend/internal/profiles"
	"github.com/cofoundr/cofoundr-backend/pkg/auth"
	"github.com/cofoundr/cofoundr-backend/pkg/auth/session"
	pkgerrors "github.com/cofoundr/cofoundr-backend/pkg/errors"
	"github.com/cofoundr/cofoundr-backend/pkg/logger"
)

const (
	TypeUserCreated   = "user.created"
	TypeUserUpdated   = "user.updated"
	TypeUserSignedOut = "user.signed_out"

	OutcomeProcessed = "processed"
	OutcomeIgnored   = "ignored"
)

// Event is the callback body posted by the auth provider.
type Event struct {
	Type    string `json:"type"`
	User    User   `json:"user"`
	TokenID string `json:"token_id,omitempty"`
}

// User is the identity an event refers to.
type User struct {
	ID           string            `json:"id"`
	Email        string            `json:"email"`
	UserMetadata auth.UserMetadata `json:"user_metadata"`
}

type profileCreator interface {
	CreateFromSignup(ctx context.Context, input profiles.SignupInput) (*profiles.ProfileDTO, error)
}

type sessionLifecycle interface {
	Refresh(ctx context.Context, userID uuid.UUID) (session.Context, error)
	Teardown(ctx context.Context, userID uuid.UUID, tokenID string) error
}

// Service dispatches auth provider events.
type Service struct {
	profiles profileCreator
	sessions sessionLifecycle
	logg     *logger.Logger
}

// NewService builds the auth event dispatcher.
func NewService(profiles profileCreator, sessions sessionLifecycle, logg *logger.Logger) (*Service, error) {
	if profiles == nil {
		return nil, fmt.Errorf("profile service required")
	}
	if sessions == nil {
		return nil, fmt.Errorf("session manager required")
	}
	return &Service{profiles: profiles, sessions: sessions, logg: logg}, nil
}

// Handle applies one event and reports whether it changed anything.
func (s *Service) Handle(ctx context.Context, event Event) (string, error) {
	eventType := strings.TrimSpace(event.Type)
	switch eventType {
	case TypeUserCreated, TypeUserUpdated, TypeUserSignedOut:
	default:
		if s.logg != nil {
			s.logg.Warn(s.logg.WithField(ctx, "event_type", eventType), "ignoring unknown auth event")
		}
		return OutcomeIgnored, nil
	}

	userID, err := uuid.Parse(strings.TrimSpace(event.User.ID))
	if err != nil {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid user id")
	}
	ctx = s.withUser(ctx, userID, eventType)

	switch eventType {
	case TypeUserCreated:
		_, err = s.profiles.CreateFromSignup(ctx, profiles.SignupInput{
			ID:       userID,
			Email:    event.User.Email,
			Name:     event.User.UserMetadata.Name,
			UserType: event.User.UserMetadata.UserType,
		})
		if err != nil {
			return "", err
		}
	case TypeUserUpdated:
		if _, err := s.sessions.Refresh(ctx, userID); err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "refresh session")
		}
	case TypeUserSignedOut:
		if err := s.sessions.Teardown(ctx, userID, event.TokenID); err != nil {
			return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "teardown session")
		}
	}

	if s.logg != nil {
		s.logg.Info(ctx, "auth event processed")
	}
	return OutcomeProcessed, nil
}

func (s *Service) withUser(ctx context.Context, userID uuid.UUID, eventType string) context.Context {
	if s.logg == nil {
		return ctx
	}
	ctx = s.logg.WithUserID(ctx, userID.String())
	return s.logg.WithField(ctx, "event_type", eventType)
}
