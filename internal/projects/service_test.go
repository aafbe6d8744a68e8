package projects

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
	pkgerrors "github.com/cofoundr/cofoundr-backend/pkg/errors"
	"github.com/cofoundr/cofoundr-backend/pkg/pagination"
)

type stubProjectRepo struct {
	projects   map[uuid.UUID]*models.Project
	listRows   []models.Project
	listCursor *pagination.Cursor
	findErr    error
	deleted    []uuid.UUID
}

func newStubProjectRepo(projects ...*models.Project) *stubProjectRepo {
	repo := &stubProjectRepo{projects: map[uuid.UUID]*models.Project{}}
	for _, p := range projects {
		repo.projects[p.ID] = p
	}
	return repo
}

func (s *stubProjectRepo) List(ctx context.Context, filter ListFilter, limit int, cursor *pagination.Cursor) ([]models.Project, error) {
	s.listCursor = cursor
	return s.listRows, nil
}

func (s *stubProjectRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	p, ok := s.projects[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *p
	return &clone, nil
}

func (s *stubProjectRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.Project, error) {
	var out []models.Project
	for _, p := range s.projects {
		if p.OwnerID == ownerID {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (s *stubProjectRepo) Create(ctx context.Context, project *models.Project) error {
	project.ID = uuid.New()
	clone := *project
	s.projects[project.ID] = &clone
	return nil
}

func (s *stubProjectRepo) CreateWithTx(tx *gorm.DB, project *models.Project) error {
	return s.Create(context.Background(), project)
}

func (s *stubProjectRepo) Update(ctx context.Context, project *models.Project) error {
	clone := *project
	s.projects[project.ID] = &clone
	return nil
}

func (s *stubProjectRepo) Delete(ctx context.Context, id uuid.UUID) error {
	s.deleted = append(s.deleted, id)
	delete(s.projects, id)
	return nil
}

func requireCode(t *testing.T, err error, code pkgerrors.Code) {
	t.Helper()
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != code {
		t.Fatalf("expected %s, got %v", code, err)
	}
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestServiceCreateValidates(t *testing.T) {
	svc, _ := NewService(newStubProjectRepo())
	_, err := svc.Create(context.Background(), uuid.New(), CreateProjectInput{Title: "ab", Description: "short"})
	requireCode(t, err, pkgerrors.CodeValidation)

	details, ok := pkgerrors.As(err).Details().(map[string]string)
	if !ok {
		t.Fatalf("expected map details, got %T", pkgerrors.As(err).Details())
	}
	for _, field := range []string{"title", "description", "category"} {
		if details[field] == "" {
			t.Fatalf("expected %s detail, got %v", field, details)
		}
	}
}

func TestServiceCreateAssignsOwnerAndNormalizesWebsite(t *testing.T) {
	repo := newStubProjectRepo()
	svc, _ := NewService(repo)
	owner := uuid.New()

	dto, err := svc.Create(context.Background(), owner, CreateProjectInput{
		Title:       "  Solar Grid  ",
		Description: "Community owned solar microgrids",
		Category:    "energy",
		Website:     "solargrid.io",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.OwnerID != owner {
		t.Fatalf("expected owner %s, got %s", owner, dto.OwnerID)
	}
	if dto.Title != "Solar Grid" {
		t.Fatalf("expected trimmed title, got %q", dto.Title)
	}
	if dto.Website != "https://solargrid.io" {
		t.Fatalf("expected https website, got %q", dto.Website)
	}
}

func TestServiceUpdateRequiresOwner(t *testing.T) {
	project := &models.Project{ID: uuid.New(), OwnerID: uuid.New(), Title: "Solar Grid", Description: "Community solar", Category: "energy"}
	svc, _ := NewService(newStubProjectRepo(project))

	title := "Hijacked"
	_, err := svc.Update(context.Background(), uuid.New(), project.ID, UpdateProjectInput{Title: &title})
	requireCode(t, err, pkgerrors.CodeForbidden)

	_, err = svc.Update(context.Background(), project.OwnerID, uuid.New(), UpdateProjectInput{Title: &title})
	requireCode(t, err, pkgerrors.CodeNotFound)
}

func TestServiceUpdateAppliesFields(t *testing.T) {
	project := &models.Project{ID: uuid.New(), OwnerID: uuid.New(), Title: "Solar Grid", Description: "Community solar", Category: "energy"}
	repo := newStubProjectRepo(project)
	svc, _ := NewService(repo)

	category := "climate"
	dto, err := svc.Update(context.Background(), project.OwnerID, project.ID, UpdateProjectInput{Category: &category})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.Category != "climate" || repo.projects[project.ID].Category != "climate" {
		t.Fatalf("expected category persisted, got %q", dto.Category)
	}
	if dto.Title != "Solar Grid" {
		t.Fatalf("expected untouched title, got %q", dto.Title)
	}
}

func TestServiceDeleteRequiresOwner(t *testing.T) {
	project := &models.Project{ID: uuid.New(), OwnerID: uuid.New()}
	repo := newStubProjectRepo(project)
	svc, _ := NewService(repo)

	requireCode(t, svc.Delete(context.Background(), uuid.New(), project.ID), pkgerrors.CodeForbidden)
	if len(repo.deleted) != 0 {
		t.Fatal("expected no delete for non-owner")
	}
	if err := svc.Delete(context.Background(), project.OwnerID, project.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(repo.deleted) != 1 {
		t.Fatalf("expected one delete, got %d", len(repo.deleted))
	}
}

func TestServiceGetMapsErrors(t *testing.T) {
	repo := newStubProjectRepo()
	svc, _ := NewService(repo)

	_, err := svc.Get(context.Background(), uuid.New())
	requireCode(t, err, pkgerrors.CodeNotFound)

	repo.findErr = errors.New("connection reset")
	_, err = svc.Get(context.Background(), uuid.New())
	requireCode(t, err, pkgerrors.CodeDependency)
}

func TestServiceListBuildsNextCursor(t *testing.T) {
	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	repo := newStubProjectRepo()
	for i := 0; i < 3; i++ {
		repo.listRows = append(repo.listRows, models.Project{ID: uuid.New(), CreatedAt: base.Add(-time.Duration(i) * time.Hour)})
	}
	svc, _ := NewService(repo)

	page, err := svc.List(context.Background(), ListFilter{}, pagination.Params{Limit: 2})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(page.Items))
	}
	cursor, err := pagination.ParseCursor(page.NextCursor)
	if err != nil || cursor == nil {
		t.Fatalf("expected parseable cursor, got %v", err)
	}
	if cursor.ID != repo.listRows[1].ID {
		t.Fatalf("expected cursor at second row, got %s", cursor.ID)
	}

	if _, err := svc.List(context.Background(), ListFilter{}, pagination.Params{Cursor: "%%%"}); err == nil {
		t.Fatal("expected invalid cursor error")
	} else {
		requireCode(t, err, pkgerrors.CodeValidation)
	}
}

type stubSeeder struct {
	details   map[string]string
	createErr error
	projectID uuid.UUID
	seeded    []PositionSeed
}

func (s *stubSeeder) ValidateSeeds(seeds []PositionSeed) map[string]string {
	return s.details
}

func (s *stubSeeder) CreateSeedsWithTx(tx *gorm.DB, projectID uuid.UUID, seeds []PositionSeed) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.projectID = projectID
	s.seeded = append(s.seeded, seeds...)
	return nil
}

type stubTx struct {
	calls int
}

func (s *stubTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	s.calls++
	return fn(nil)
}

func validProjectInput(seeds ...PositionSeed) CreateProjectInput {
	return CreateProjectInput{
		Title:       "Solar Grid",
		Description: "Community owned solar microgrids",
		Category:    "energy",
		Positions:   seeds,
	}
}

func TestNewServiceRequiresSeederAndTxTogether(t *testing.T) {
	if _, err := NewService(newStubProjectRepo(), WithPositionSeeder(&stubSeeder{}, nil)); err == nil {
		t.Fatal("expected error for seeder without transaction runner")
	}
}

func TestServiceCreateSeedsPositionsInOneTransaction(t *testing.T) {
	repo := newStubProjectRepo()
	seeder := &stubSeeder{}
	tx := &stubTx{}
	svc, err := NewService(repo, WithPositionSeeder(seeder, tx))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Create(context.Background(), uuid.New(), validProjectInput(
		PositionSeed{Title: "CTO"},
		PositionSeed{Title: "Head of Sales"},
	))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if tx.calls != 1 {
		t.Fatalf("expected one transaction, got %d", tx.calls)
	}
	if seeder.projectID != dto.ID {
		t.Fatalf("expected positions for project %s, got %s", dto.ID, seeder.projectID)
	}
	if len(seeder.seeded) != 2 {
		t.Fatalf("expected 2 seeded positions, got %d", len(seeder.seeded))
	}
}

func TestServiceCreateWithoutPositionsSkipsTransaction(t *testing.T) {
	tx := &stubTx{}
	svc, _ := NewService(newStubProjectRepo(), WithPositionSeeder(&stubSeeder{}, tx))

	if _, err := svc.Create(context.Background(), uuid.New(), validProjectInput()); err != nil {
		t.Fatalf("create: %v", err)
	}
	if tx.calls != 0 {
		t.Fatalf("expected no transaction, got %d", tx.calls)
	}
}

func TestServiceCreateMergesPositionValidation(t *testing.T) {
	repo := newStubProjectRepo()
	seeder := &stubSeeder{details: map[string]string{"positions[1].title": "Title must be between 2 and 200 characters"}}
	tx := &stubTx{}
	svc, _ := NewService(repo, WithPositionSeeder(seeder, tx))

	input := validProjectInput(PositionSeed{Title: "CTO"}, PositionSeed{Title: "x"})
	input.Title = "ab"
	_, err := svc.Create(context.Background(), uuid.New(), input)
	requireCode(t, err, pkgerrors.CodeValidation)

	details := pkgerrors.As(err).Details().(map[string]string)
	if details["title"] == "" || details["positions[1].title"] == "" {
		t.Fatalf("expected project and position details, got %v", details)
	}
	if tx.calls != 0 || len(repo.projects) != 0 {
		t.Fatal("expected nothing written on validation failure")
	}
}

func TestServiceCreateCapsSeededPositions(t *testing.T) {
	svc, _ := NewService(newStubProjectRepo(), WithPositionSeeder(&stubSeeder{}, &stubTx{}))

	seeds := make([]PositionSeed, MaxSeededPositions+1)
	for i := range seeds {
		seeds[i] = PositionSeed{Title: "Engineer"}
	}
	_, err := svc.Create(context.Background(), uuid.New(), validProjectInput(seeds...))
	requireCode(t, err, pkgerrors.CodeValidation)
	if pkgerrors.As(err).Details().(map[string]string)["positions"] == "" {
		t.Fatal("expected positions detail")
	}
}

func TestServiceCreateSeedFailureIsDependency(t *testing.T) {
	svc, _ := NewService(newStubProjectRepo(), WithPositionSeeder(&stubSeeder{createErr: errors.New("boom")}, &stubTx{}))

	_, err := svc.Create(context.Background(), uuid.New(), validProjectInput(PositionSeed{Title: "CTO"}))
	requireCode(t, err, pkgerrors.CodeDependency)
}

func TestServiceCreatePositionsWithoutSeederIsInternal(t *testing.T) {
	svc, _ := NewService(newStubProjectRepo())

	_, err := svc.Create(context.Background(), uuid.New(), validProjectInput(PositionSeed{Title: "CTO"}))
	requireCode(t, err, pkgerrors.CodeInternal)
}
