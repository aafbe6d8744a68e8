package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/cofoundr/cofoundr-backend/internal/investments"
	"github.com/cofoundr/cofoundr-backend/pkg/enums"
	pkgerrors "github.com/cofoundr/cofoundr-backend/pkg/errors"
)

type stubInvestmentService struct {
	created    investments.CreateInvestmentInput
	listFilter investments.ListFilter
	status     enums.InvestmentStatus
	err        error
}

func (s *stubInvestmentService) Create(ctx context.Context, actorID uuid.UUID, input investments.CreateInvestmentInput) (*investments.InvestmentDTO, error) {
	s.created = input
	if s.err != nil {
		return nil, s.err
	}
	return &investments.InvestmentDTO{ID: uuid.New(), RoundID: input.RoundID, InvestorID: actorID, AmountInvested: input.Amount}, nil
}

func (s *stubInvestmentService) List(ctx context.Context, actorID uuid.UUID, filter investments.ListFilter) ([]investments.InvestmentDTO, error) {
	s.listFilter = filter
	return []investments.InvestmentDTO{}, nil
}

func (s *stubInvestmentService) UpdateStatus(ctx context.Context, actorID, id uuid.UUID, target enums.InvestmentStatus) (*investments.InvestmentDTO, error) {
	s.status = target
	return &investments.InvestmentDTO{ID: id, Status: target}, nil
}

func (s *stubInvestmentService) Portfolio(ctx context.Context, investorID uuid.UUID) (*investments.Portfolio, error) {
	return &investments.Portfolio{Investments: []investments.InvestmentDTO{}, TotalInvested: decimal.NewFromInt(30000), PortfolioCount: 2}, nil
}

func TestInvestmentCreate(t *testing.T) {
	svc := &stubInvestmentService{}
	roundID := uuid.New()
	req := authedRequest(http.MethodPost, "/api/v1/rounds/x/investments", uuid.New())
	req.Body = httpBody(`{"amount_invested":"5000","notes":"excited"}`)
	req = withURLParam(req, "id", roundID.String())
	rec := httptest.NewRecorder()

	InvestmentCreate(svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Equal(t, roundID, svc.created.RoundID)
	require.True(t, svc.created.Amount.Equal(decimal.NewFromInt(5000)))
}

func TestInvestmentCreateClosedRound(t *testing.T) {
	svc := &stubInvestmentService{err: pkgerrors.New(pkgerrors.CodeStateConflict, "this investment round is closed")}
	req := authedRequest(http.MethodPost, "/api/v1/rounds/x/investments", uuid.New())
	req.Body = httpBody(`{"amount_invested":5000}`)
	req = withURLParam(req, "id", uuid.NewString())
	rec := httptest.NewRecorder()

	InvestmentCreate(svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	require.Contains(t, rec.Body.String(), "this investment round is closed")
}

func TestInvestmentListPassesFilters(t *testing.T) {
	svc := &stubInvestmentService{}
	roundID := uuid.New()
	req := authedRequest(http.MethodGet, "/api/v1/investments?round_id="+roundID.String(), uuid.New())
	rec := httptest.NewRecorder()

	InvestmentList(svc, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, svc.listFilter.RoundID)
	require.Equal(t, roundID, *svc.listFilter.RoundID)
	require.Nil(t, svc.listFilter.InvestorID)
}

func TestInvestmentUpdateStatusRequiresStatus(t *testing.T) {
	req := authedRequest(http.MethodPatch, "/api/v1/investments/x/status", uuid.New())
	req.Body = httpBody(`{}`)
	req = withURLParam(req, "id", uuid.NewString())
	rec := httptest.NewRecorder()

	InvestmentUpdateStatus(&stubInvestmentService{}, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestPortfolio(t *testing.T) {
	req := authedRequest(http.MethodGet, "/api/v1/me/portfolio", uuid.New())
	rec := httptest.NewRecorder()

	Portfolio(&stubInvestmentService{}, nil).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data struct {
			TotalInvested  string `json:"totalInvested"`
			PortfolioCount int    `json:"portfolioCount"`
		} `json:"data"`
	}
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&envelope))
	require.Equal(t, "30000", envelope.Data.TotalInvested)
	require.Equal(t, 2, envelope.Data.PortfolioCount)
}
