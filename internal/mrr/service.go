package mrr

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cofoundr/cofoundr-backend/internal/projects"
	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
	pkgerrors "github.com/cofoundr/cofoundr-backend/pkg/errors"
)

const unknownProjectTitle = "Unknown Project"

type mrrRepository interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]models.MRRRecord, error)
	ListByProjects(ctx context.Context, ids []uuid.UUID) ([]models.MRRRecord, error)
	Upsert(ctx context.Context, record *models.MRRRecord) error
	UpsertWithTx(tx *gorm.DB, record *models.MRRRecord) error
}

// MembershipSource lists the projects a user belongs to.
type MembershipSource interface {
	ProjectIDsForUser(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

// ProjectSource resolves projects for titles and ownership checks.
type ProjectSource interface {
	projects.Lookup
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]models.Project, error)
}

// SubscriptionSource reads the active Stripe subscriptions of a project.
type SubscriptionSource interface {
	ListActiveByProjectWithTx(tx *gorm.DB, projectID uuid.UUID) ([]models.StripeSubscription, error)
}

// Service exposes revenue tracking operations.
type Service interface {
	ListByProject(ctx context.Context, projectID uuid.UUID) ([]RecordDTO, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]ProjectSeries, error)
	Dashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error)
	AddRecord(ctx context.Context, actorID uuid.UUID, input AddRecordInput) (*RecordDTO, error)
	RecomputeFromSubscriptions(tx *gorm.DB, projectID uuid.UUID, now time.Time) (*RecordDTO, error)
}

// AddRecordInput is a manually reported month of revenue.
type AddRecordInput struct {
	ProjectID               uuid.UUID
	Month                   string
	Revenue                 decimal.Decimal
	StripeSubscriptionCount int
}

// ServiceParams wires the MRR service.
type ServiceParams struct {
	Repo          mrrRepository
	Members       MembershipSource
	Projects      ProjectSource
	Subscriptions SubscriptionSource
}

type service struct {
	repo          mrrRepository
	members       MembershipSource
	projects      ProjectSource
	subscriptions SubscriptionSource
}

// NewService builds an MRR service.
func NewService(params ServiceParams) (Service, error) {
	switch {
	case params.Repo == nil:
		return nil, fmt.Errorf("mrr repository required")
	case params.Members == nil:
		return nil, fmt.Errorf("membership source required")
	case params.Projects == nil:
		return nil, fmt.Errorf("project source required")
	case params.Subscriptions == nil:
		return nil, fmt.Errorf("subscription source required")
	}
	return &service{
		repo:          params.Repo,
		members:       params.Members,
		projects:      params.Projects,
		subscriptions: params.Subscriptions,
	}, nil
}

func (s *service) ListByProject(ctx context.Context, projectID uuid.UUID) ([]RecordDTO, error) {
	rows, err := s.repo.ListByProject(ctx, projectID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list project mrr")
	}
	return FromModels(rows), nil
}

func (s *service) ListByUser(ctx context.Context, userID uuid.UUID) ([]ProjectSeries, error) {
	ids, err := s.members.ProjectIDsForUser(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list user projects")
	}
	if len(ids) == 0 {
		return []ProjectSeries{}, nil
	}

	found, err := s.projects.FindByIDs(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load projects")
	}
	titles := make(map[uuid.UUID]string, len(found))
	for _, p := range found {
		titles[p.ID] = p.Title
	}

	rows, err := s.repo.ListByProjects(ctx, ids)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list user mrr")
	}
	byProject := make(map[uuid.UUID][]RecordDTO, len(ids))
	for i := range rows {
		byProject[rows[i].ProjectID] = append(byProject[rows[i].ProjectID], FromModel(&rows[i]))
	}

	out := make([]ProjectSeries, 0, len(ids))
	for _, id := range ids {
		title, ok := titles[id]
		if !ok || title == "" {
			title = unknownProjectTitle
		}
		data := byProject[id]
		if data == nil {
			data = []RecordDTO{}
		}
		out = append(out, ProjectSeries{ProjectID: id, ProjectTitle: title, Data: data})
	}
	return out, nil
}

func (s *service) Dashboard(ctx context.Context, userID uuid.UUID) (*Dashboard, error) {
	series, err := s.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	dash := &Dashboard{Projects: series, TotalCurrent: decimal.Zero, TotalPrevious: decimal.Zero}
	for _, p := range series {
		n := len(p.Data)
		if n > 0 {
			dash.TotalCurrent = dash.TotalCurrent.Add(p.Data[n-1].Revenue)
		}
		if n > 1 {
			dash.TotalPrevious = dash.TotalPrevious.Add(p.Data[n-2].Revenue)
		}
	}
	dash.Growth = Growth(dash.TotalPrevious, dash.TotalCurrent)
	return dash, nil
}

func (s *service) AddRecord(ctx context.Context, actorID uuid.UUID, input AddRecordInput) (*RecordDTO, error) {
	details := map[string]string{}
	if !ValidMonth(input.Month) {
		details["month"] = "Month must use the YYYY-MM format"
	}
	if input.Revenue.IsNegative() {
		details["revenue"] = "Revenue cannot be negative"
	}
	if input.StripeSubscriptionCount < 0 {
		details["stripe_subscription_count"] = "Subscription count cannot be negative"
	}
	if len(details) > 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "validation failed").WithDetails(details)
	}
	if _, err := projects.AuthorizeOwner(ctx, s.projects, actorID, input.ProjectID); err != nil {
		return nil, err
	}

	record := &models.MRRRecord{
		ProjectID:               input.ProjectID,
		Month:                   input.Month,
		Revenue:                 input.Revenue,
		StripeSubscriptionCount: input.StripeSubscriptionCount,
	}
	if err := s.repo.Upsert(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save mrr record")
	}
	dto := FromModel(record)
	return &dto, nil
}

// RecomputeFromSubscriptions rewrites the current month's row as the sum of
// the project's active subscriptions, converted from cents and rounded to
// whole dollars.
func (s *service) RecomputeFromSubscriptions(tx *gorm.DB, projectID uuid.UUID, now time.Time) (*RecordDTO, error) {
	active, err := s.subscriptions.ListActiveByProjectWithTx(tx, projectID)
	if err != nil {
		return nil, err
	}
	var cents int64
	for _, sub := range active {
		cents += sub.AmountCents
	}

	record := &models.MRRRecord{
		ProjectID:               projectID,
		Month:                   MonthKey(now),
		Revenue:                 decimal.NewFromInt(cents).Div(hundred).Round(0),
		StripeSubscriptionCount: len(active),
	}
	if err := s.repo.UpsertWithTx(tx, record); err != nil {
		return nil, err
	}
	dto := FromModel(record)
	return &dto, nil
}
