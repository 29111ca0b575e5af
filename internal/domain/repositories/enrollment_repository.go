package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/momsgrove/grove-api/internal/domain/entities"
)

// EnrollmentRepository persists intake assessments and their outcome
type EnrollmentRepository interface {
	// CreateEnrollment stores the student and the pending assessment in one transaction
	CreateEnrollment(ctx context.Context, student *entities.Student, assessment *entities.Assessment) error

	// FindAssessmentByID returns entities.ErrAssessmentNotFound when the id does not resolve
	FindAssessmentByID(ctx context.Context, id uuid.UUID) (*entities.Assessment, error)

	// AssignPathways attaches the summary to the assessment and inserts the
	// assignment rows atomically. Either everything is written or nothing is.
	AssignPathways(ctx context.Context, assessmentID uuid.UUID, summary entities.Summary, assignments []entities.PathwayAssignment) error
}

// PathwayRepository reads the skill pathway catalog and student progress
type PathwayRepository interface {
	// FindByCategories returns pathways whose problem_category is in categories, ordered by name
	FindByCategories(ctx context.Context, categories []string) ([]entities.SkillPathway, error)

	// List returns the whole catalog ordered by name
	List(ctx context.Context) ([]entities.SkillPathway, error)

	// Create adds a catalog entry
	Create(ctx context.Context, pathway *entities.SkillPathway) error

	// ListProgressByStudent returns the student's assignments joined with pathway names
	ListProgressByStudent(ctx context.Context, studentID uuid.UUID) ([]entities.PathwayProgress, error)

	// ListPriorityActions returns the open assignments of the school's active
	// students, ordered by pathway name, step and child name. An empty class
	// means every class.
	ListPriorityActions(ctx context.Context, schoolID uuid.UUID, class string) ([]entities.PriorityActionItem, error)

	// ApplyProgress advances the matching assignments in one transaction.
	// A missing assignment rolls back the whole batch.
	ApplyProgress(ctx context.Context, updates []entities.ProgressUpdate) ([]entities.PathwayAssignment, error)
}

// StudentRepository defines the interface for student data access
type StudentRepository interface {
	Create(ctx context.Context, student *entities.Student) error
	FindByID(ctx context.Context, id uuid.UUID) (*entities.Student, error)

	// ListActiveBySchool returns active students ordered by child_name. An empty class matches all.
	ListActiveBySchool(ctx context.Context, schoolID uuid.UUID, class string) ([]*entities.Student, error)

	// ListByParent returns the children linked to a parent account
	ListByParent(ctx context.Context, parentID uuid.UUID) ([]*entities.Student, error)
}
