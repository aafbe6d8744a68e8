package positions

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cofoundr/cofoundr-backend/internal/projects"
	"github.com/cofoundr/cofoundr-backend/pkg/db/models"
	"github.com/cofoundr/cofoundr-backend/pkg/enums"
)

type seedWriter interface {
	CreateWithTx(tx *gorm.DB, positions []models.Position) error
}

// Seeder opens the positions listed with a new project.
type Seeder struct {
	repo seedWriter
}

var _ projects.PositionSeeder = (*Seeder)(nil)

// NewSeeder builds a seeder backed by the position repository.
func NewSeeder(repo seedWriter) (*Seeder, error) {
	if repo == nil {
		return nil, fmt.Errorf("position repository required")
	}
	return &Seeder{repo: repo}, nil
}

// ValidateSeeds applies the single-position rules to every seed.
func (s *Seeder) ValidateSeeds(seeds []projects.PositionSeed) map[string]string {
	details := map[string]string{}
	for i, seed := range seeds {
		for field, msg := range positionDetails(seedModel(uuid.Nil, seed)) {
			details[fmt.Sprintf("positions[%d].%s", i, field)] = msg
		}
	}
	return details
}

// CreateSeedsWithTx writes the seeds as open positions of projectID.
func (s *Seeder) CreateSeedsWithTx(tx *gorm.DB, projectID uuid.UUID, seeds []projects.PositionSeed) error {
	rows := make([]models.Position, 0, len(seeds))
	for _, seed := range seeds {
		rows = append(rows, *seedModel(projectID, seed))
	}
	return s.repo.CreateWithTx(tx, rows)
}

func seedModel(projectID uuid.UUID, seed projects.PositionSeed) *models.Position {
	return &models.Position{
		ProjectID:    projectID,
		Title:        strings.TrimSpace(seed.Title),
		Description:  strings.TrimSpace(seed.Description),
		Requirements: strings.TrimSpace(seed.Requirements),
		Status:       enums.PositionStatusOpen,
	}
}
