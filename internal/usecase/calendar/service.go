package calendar

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/momsgrove/grove-api/internal/domain/entities"
	"github.com/momsgrove/grove-api/internal/domain/repositories"
)

const upcomingLimit = 20

// Service reads and creates school calendar events
type Service struct {
	events   repositories.EventRepository
	students repositories.StudentRepository
	now      func() time.Time
}

// NewService creates a new calendar service. Parents are not attached to a
// school, so their calendar is resolved through their children.
func NewService(events repositories.EventRepository, students repositories.StudentRepository) *Service {
	return &Service{events: events, students: students, now: time.Now}
}

// CreateInput is a new calendar event
type CreateInput struct {
	Title       string
	Description string
	StartTime   time.Time
	EndTime     *time.Time
	Audience    []string
}

// MonthWindow returns [first of the month, first of the next month) for t
func MonthWindow(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

// List returns the events in [start, end) visible to the caller.
// Zero bounds default to the current month.
func (s *Service) List(ctx context.Context, principal *entities.Principal, start, end time.Time) ([]*entities.SchoolEvent, error) {
	schools, err := s.schoolsOf(ctx, principal)
	if err != nil {
		return nil, err
	}

	if start.IsZero() {
		start, _ = MonthWindow(s.now().UTC())
	}
	if end.IsZero() {
		end = start.AddDate(0, 1, 0)
	}
	if !end.After(start) {
		return nil, entities.ErrInvalidEventWindow
	}

	var events []*entities.SchoolEvent
	for _, schoolID := range schools {
		found, err := s.events.ListBetween(ctx, schoolID, start, end)
		if err != nil {
			return nil, fmt.Errorf("failed to list events: %w", err)
		}
		events = append(events, found...)
	}
	return visible(merge(events, len(schools), 0), principal.Role), nil
}

// Upcoming returns the next events visible to the caller
func (s *Service) Upcoming(ctx context.Context, principal *entities.Principal) ([]*entities.SchoolEvent, error) {
	schools, err := s.schoolsOf(ctx, principal)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	var events []*entities.SchoolEvent
	for _, schoolID := range schools {
		found, err := s.events.ListFrom(ctx, schoolID, now, upcomingLimit)
		if err != nil {
			return nil, fmt.Errorf("failed to list upcoming events: %w", err)
		}
		events = append(events, found...)
	}
	return visible(merge(events, len(schools), upcomingLimit), principal.Role), nil
}

// schoolsOf returns the schools whose calendar the caller reads. A parent
// sees the schools of their children; everyone else sees their own school.
func (s *Service) schoolsOf(ctx context.Context, principal *entities.Principal) ([]uuid.UUID, error) {
	if !principal.HasRole(entities.RoleParent) {
		schoolID, err := principal.School()
		if err != nil {
			return nil, err
		}
		return []uuid.UUID{schoolID}, nil
	}

	children, err := s.students.ListByParent(ctx, principal.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to list children: %w", err)
	}
	seen := make(map[uuid.UUID]struct{}, len(children))
	schools := make([]uuid.UUID, 0, len(children))
	for _, child := range children {
		if _, ok := seen[child.SchoolID]; ok {
			continue
		}
		seen[child.SchoolID] = struct{}{}
		schools = append(schools, child.SchoolID)
	}
	return schools, nil
}

// merge orders events gathered from several schools by start time and caps
// them at limit when limit is positive
func merge(events []*entities.SchoolEvent, schools, limit int) []*entities.SchoolEvent {
	if schools > 1 {
		sort.SliceStable(events, func(i, j int) bool {
			return events[i].StartTime.Before(events[j].StartTime)
		})
	}
	if limit > 0 && len(events) > limit {
		events = events[:limit]
	}
	return events
}

// Create stores a new event for the school
func (s *Service) Create(ctx context.Context, schoolID uuid.UUID, input CreateInput) (*entities.SchoolEvent, error) {
	audience := make([]string, 0, len(input.Audience))
	for _, a := range input.Audience {
		audience = append(audience, strings.ToLower(strings.TrimSpace(a)))
	}
	if len(audience) == 0 {
		audience = append(audience, entities.AudienceAll)
	}

	event := &entities.SchoolEvent{
		ID:          uuid.New(),
		SchoolID:    schoolID,
		Title:       strings.TrimSpace(input.Title),
		Description: input.Description,
		StartTime:   input.StartTime.UTC(),
		EndTime:     input.EndTime,
		Audience:    datatypes.JSONSlice[string](audience),
		CreatedAt:   s.now().UTC(),
	}
	if event.EndTime != nil {
		end := event.EndTime.UTC()
		event.EndTime = &end
	}

	if err := event.Validate(); err != nil {
		return nil, err
	}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

func visible(events []*entities.SchoolEvent, role entities.Role) []*entities.SchoolEvent {
	out := make([]*entities.SchoolEvent, 0, len(events))
	for _, e := range events {
		if e.VisibleTo(role) {
			out = append(out, e)
		}
	}
	return out
}
