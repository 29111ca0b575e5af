package student

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/momsgrove/grove-api/internal/domain/entities"
	"github.com/momsgrove/grove-api/internal/domain/repositories"
)

// Service reads students, teachers and the pathway catalog for dashboards
type Service struct {
	students repositories.StudentRepository
	pathways repositories.PathwayRepository
	users    repositories.UserRepository
}

// NewService creates a new student service
func NewService(
	students repositories.StudentRepository,
	pathways repositories.PathwayRepository,
	users repositories.UserRepository,
) *Service {
	return &Service{students: students, pathways: pathways, users: users}
}

// Detail is a student with their assigned pathways
type Detail struct {
	Student  *entities.Student
	Progress []entities.PathwayProgress
}

// List returns the students visible to the caller. Staff see the active
// students of their school, parents see their own children.
func (s *Service) List(ctx context.Context, principal *entities.Principal, class string) ([]*entities.Student, error) {
	if principal.HasRole(entities.RoleParent) {
		return s.students.ListByParent(ctx, principal.UserID)
	}

	schoolID, err := principal.School()
	if err != nil {
		return nil, err
	}
	students, err := s.students.ListActiveBySchool(ctx, schoolID, class)
	if err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

// Get returns one student the caller may see, with pathway progress
func (s *Service) Get(ctx context.Context, principal *entities.Principal, id uuid.UUID) (*Detail, error) {
	st, err := s.students.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, entities.ErrStudentNotFound) {
			return nil, entities.ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to find student: %w", err)
	}

	if !canSee(principal, st) {
		return nil, entities.ErrStudentNotFound
	}

	progress, err := s.pathways.ListProgressByStudent(ctx, st.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load pathway progress: %w", err)
	}

	return &Detail{Student: st, Progress: progress}, nil
}

func canSee(principal *entities.Principal, st *entities.Student) bool {
	if principal.HasRole(entities.RoleParent) {
		return st.ParentID != nil && *st.ParentID == principal.UserID
	}
	schoolID, err := principal.School()
	return err == nil && schoolID == st.SchoolID
}

// Teachers lists the teachers of a school ordered by name
func (s *Service) Teachers(ctx context.Context, schoolID uuid.UUID) ([]*entities.User, error) {
	teachers, err := s.users.ListBySchoolAndRole(ctx, schoolID, entities.RoleTeacher)
	if err != nil {
		return nil, fmt.Errorf("failed to list teachers: %w", err)
	}
	return teachers, nil
}

// Pathways returns the whole skill pathway catalog
func (s *Service) Pathways(ctx context.Context) ([]entities.SkillPathway, error) {
	pathways, err := s.pathways.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list pathways: %w", err)
	}
	return pathways, nil
}
