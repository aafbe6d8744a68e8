package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/cofoundr/cofoundr-backend/internal/rounds"
	pkgerrors "github.com/cofoundr/cofoundr-backend/pkg/errors"
)

type stubRoundService struct {
	openFilter rounds.OpenFilter
	created    rounds.CreateRoundInput
	createErr  error
}

func (s *stubRoundService) List(ctx context.Context, projectID *uuid.UUID) ([]rounds.RoundDTO, error) {
	return []rounds.RoundDTO{}, nil
}

func (s *stubRoundService) ListOpen(ctx context.Context, filter rounds.OpenFilter) ([]rounds.RoundDTO, error) {
	s.openFilter = filter
	return []rounds.RoundDTO{}, nil
}

func (s *stubRoundService) Get(ctx context.Context, id uuid.UUID) (*rounds.RoundDTO, error) {
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "investment round not found")
}

func (s *stubRoundService) Create(ctx context.Context, actorID uuid.UUID, input rounds.CreateRoundInput) (*rounds.RoundDTO, error) {
	s.created = input
	if s.createErr != nil {
		return nil, s.createErr
	}
	return &rounds.RoundDTO{ID: uuid.New(), ProjectID: input.ProjectID, RoundName: input.RoundName}, nil
}

func (s *stubRoundService) Update(ctx context.Context, actorID, id uuid.UUID, input rounds.UpdateRoundInput) (*rounds.RoundDTO, error) {
	return &rounds.RoundDTO{ID: id}, nil
}

func (s *stubRoundService) CloseExpired(ctx context.Context) (int64, error) {
	return 0, nil
}

func TestRoundListOpenParsesFilters(t *testing.T) {
	svc := &stubRoundService{}
	req := httptest.NewRequest(http.MethodGet, "/api/v1/rounds/open?category=%20fintech%20&min_amount=100000&max_amount=2500000", nil)
	rec := httptest.NewRecorder()

	RoundListOpen(svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Equal(t, "fintech", svc.openFilter.Category)
	require.True(t, svc.openFilter.MinAmount.Equal(decimal.NewFromInt(100000)))
	require.True(t, svc.openFilter.MaxAmount.Equal(decimal.NewFromInt(2500000)))
}

func TestRoundListOpenRejectsBadAmount(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/rounds/open?min_amount=lots", nil)
	rec := httptest.NewRecorder()

	RoundListOpen(&stubRoundService{}, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestRoundGetNotFound(t *testing.T) {
	req := withURLParam(httptest.NewRequest(http.MethodGet, "/api/v1/rounds/x", nil), "id", uuid.NewString())
	rec := httptest.NewRecorder()

	RoundGet(&stubRoundService{}, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Contains(t, rec.Body.String(), "investment round not found")
}

func TestRoundCreateDecodesBody(t *testing.T) {
	svc := &stubRoundService{}
	projectID := uuid.New()
	body := `{"round_name":"Seed","amount_seeking":"500000","valuation":4000000,"equity_offered":12.5,` +
		`"min_investment":1000,"max_investment":"25000","deadline":"2030-01-01T00:00:00Z"}`
	req := authedRequest(http.MethodPost, "/api/v1/projects/x/rounds", uuid.New())
	req.Body = httpBody(body)
	req = withURLParam(req, "id", projectID.String())
	rec := httptest.NewRecorder()

	RoundCreate(svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Equal(t, projectID, svc.created.ProjectID)
	require.Equal(t, "Seed", svc.created.RoundName)
	require.True(t, svc.created.EquityOffered.Equal(decimal.RequireFromString("12.5")))
	require.Equal(t, 2030, svc.created.Deadline.Year())
}

func TestRoundCreateRequiresSession(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/projects/x/rounds", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()

	RoundCreate(&stubRoundService{}, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}
