// Package curriculum drives the teacher's planner: which pathway step each
// child works on next, and how activity outcomes move them along.
package curriculum

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/momsgrove/grove-api/internal/domain/entities"
	"github.com/momsgrove/grove-api/internal/domain/repositories"
)

// Service reads the priority list and records activity outcomes
type Service struct {
	pathways repositories.PathwayRepository
	students repositories.StudentRepository
	logger   *zap.Logger
}

// NewService creates a new curriculum service
func NewService(pathways repositories.PathwayRepository, students repositories.StudentRepository, logger *zap.Logger) *Service {
	return &Service{pathways: pathways, students: students, logger: logger}
}

// PriorityActions returns the school's open assignments grouped by pathway
// and step, optionally narrowed to one class
func (s *Service) PriorityActions(ctx context.Context, schoolID uuid.UUID, class string) ([]entities.PriorityActionItem, error) {
	items, err := s.pathways.ListPriorityActions(ctx, schoolID, class)
	if err != nil {
		return nil, fmt.Errorf("failed to list priority actions: %w", err)
	}
	return items, nil
}

// RecordOutcomes applies a batch of activity outcomes. Every student must
// belong to the school, and each (student, pathway) pair may appear once.
// Either every assignment moves or none does.
func (s *Service) RecordOutcomes(ctx context.Context, schoolID uuid.UUID, updates []entities.ProgressUpdate) ([]entities.PathwayAssignment, error) {
	if len(updates) == 0 {
		return nil, fmt.Errorf("%w: no updates", entities.ErrInvalidRequest)
	}

	type pair struct{ student, pathway uuid.UUID }
	seen := make(map[pair]struct{}, len(updates))
	checked := make(map[uuid.UUID]struct{}, len(updates))
	for _, u := range updates {
		if !u.Outcome.IsValid() {
			return nil, fmt.Errorf("%w: %q", entities.ErrInvalidOutcome, u.Outcome)
		}
		key := pair{u.StudentID, u.PathwayID}
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("%w: duplicate update for student %s on pathway %s",
				entities.ErrInvalidRequest, u.StudentID, u.PathwayID)
		}
		seen[key] = struct{}{}

		if _, ok := checked[u.StudentID]; ok {
			continue
		}
		if err := s.checkStudent(ctx, schoolID, u.StudentID); err != nil {
			return nil, err
		}
		checked[u.StudentID] = struct{}{}
	}

	updated, err := s.pathways.ApplyProgress(ctx, updates)
	if err != nil {
		if errors.Is(err, entities.ErrAssignmentNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to update pathway progress: %w", err)
	}

	if s.logger != nil {
		for _, pa := range updated {
			s.logger.Info("curriculum.progress.updated",
				zap.String("student_id", pa.StudentID.String()),
				zap.String("pathway_id", pa.PathwayID.String()),
				zap.Int("current_step", pa.CurrentStep),
				zap.String("status", string(pa.Status)),
			)
		}
	}
	return updated, nil
}

func (s *Service) checkStudent(ctx context.Context, schoolID, studentID uuid.UUID) error {
	st, err := s.students.FindByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, entities.ErrStudentNotFound) {
			return entities.ErrStudentNotFound
		}
		return fmt.Errorf("failed to find student: %w", err)
	}
	if st.SchoolID != schoolID {
		return entities.ErrStudentNotFound
	}
	return nil
}
