package enrollment

import (
	"context"
	"fmt"

	"github.com/momsgrove/grove-api/internal/domain/entities"
	"github.com/momsgrove/grove-api/internal/domain/repositories"
)

// Matcher finds catalog pathways for summary focus areas
type Matcher struct {
	pathways repositories.PathwayRepository
}

// NewMatcher creates a Matcher
func NewMatcher(pathways repositories.PathwayRepository) *Matcher {
	return &Matcher{pathways: pathways}
}

// Match returns the pathways whose category is one of the focus area
// categories. No categories means no catalog lookup.
func (m *Matcher) Match(ctx context.Context, areas []entities.FocusArea) ([]entities.SkillPathway, error) {
	categories := entities.Summary{FocusAreas: areas}.Categories()
	if len(categories) == 0 {
		return []entities.SkillPathway{}, nil
	}

	pathways, err := m.pathways.FindByCategories(ctx, categories)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrPathwayLookupFailed, err)
	}
	if pathways == nil {
		pathways = []entities.SkillPathway{}
	}
	return pathways, nil
}
