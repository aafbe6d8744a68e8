package authevents

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/cofoundr/cofoundr-backend/internal/profiles"
	"github.com/cofoundr/cofoundr-backend/pkg/auth"
	"github.com/cofoundr/cofoundr-backend/pkg/auth/session"
	"github.com/cofoundr/cofoundr-backend/pkg/enums"
	pkgerrors "github.com/cofoundr/cofoundr-backend/pkg/errors"
)

type stubProfiles struct {
	created []profiles.SignupInput
}

func (s *stubProfiles) CreateFromSignup(ctx context.Context, input profiles.SignupInput) (*profiles.ProfileDTO, error) {
	s.created = append(s.created, input)
	return &profiles.ProfileDTO{ID: input.ID}, nil
}

type stubSessions struct {
	refreshed []uuid.UUID
	revoked   []string
}

func (s *stubSessions) Refresh(ctx context.Context, userID uuid.UUID) (session.Context, error) {
	s.refreshed = append(s.refreshed, userID)
	return session.Context{UserID: userID}, nil
}

func (s *stubSessions) Teardown(ctx context.Context, userID uuid.UUID, tokenID string) error {
	s.revoked = append(s.revoked, tokenID)
	return nil
}

func TestHandleDispatchesByType(t *testing.T) {
	p := &stubProfiles{}
	sessions := &stubSessions{}
	svc, err := NewService(p, sessions, nil)
	require.NoError(t, err)
	ctx := context.Background()
	userID := uuid.New()

	outcome, err := svc.Handle(ctx, Event{
		Type: TypeUserCreated,
		User: User{ID: userID.String(), Email: "ada@example.com", UserMetadata: auth.UserMetadata{Name: "Ada", UserType: enums.UserTypeInvestor}},
	})
	require.NoError(t, err)
	require.Equal(t, OutcomeProcessed, outcome)
	require.Len(t, p.created, 1)
	require.Equal(t, enums.UserTypeInvestor, p.created[0].UserType)

	_, err = svc.Handle(ctx, Event{Type: TypeUserUpdated, User: User{ID: userID.String()}})
	require.NoError(t, err)
	require.Equal(t, []uuid.UUID{userID}, sessions.refreshed)

	_, err = svc.Handle(ctx, Event{Type: TypeUserSignedOut, User: User{ID: userID.String()}, TokenID: "jti-1"})
	require.NoError(t, err)
	require.Equal(t, []string{"jti-1"}, sessions.revoked)
}

func TestHandleIgnoresUnknownTypes(t *testing.T) {
	p := &stubProfiles{}
	svc, err := NewService(p, &stubSessions{}, nil)
	require.NoError(t, err)

	outcome, err := svc.Handle(context.Background(), Event{Type: "user.deleted", User: User{ID: "not-a-uuid"}})
	require.NoError(t, err)
	require.Equal(t, OutcomeIgnored, outcome)
	require.Empty(t, p.created)
}

func TestHandleRejectsBadUserID(t *testing.T) {
	svc, err := NewService(&stubProfiles{}, &stubSessions{}, nil)
	require.NoError(t, err)

	_, err = svc.Handle(context.Background(), Event{Type: TypeUserCreated, User: User{ID: "nope"}})
	require.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation), "got %v", err)
}
