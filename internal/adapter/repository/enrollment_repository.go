package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/momsgrove/grove-api/internal/domain/entities"
)

// EnrollmentRepository implements the enrollment repository interface using GORM
type EnrollmentRepository struct {
	db *gorm.DB
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *gorm.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

// CreateEnrollment inserts the student and the assessment in one transaction
func (r *EnrollmentRepository) CreateEnrollment(ctx context.Context, student *entities.Student, assessment *entities.Assessment) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(student).Error; err != nil {
			return fmt.Errorf("failed to create student: %w", err)
		}
		assessment.StudentID = student.ID
		if err := tx.Create(assessment).Error; err != nil {
			return fmt.Errorf("failed to create assessment: %w", err)
		}
		return nil
	})
}

// FindAssessmentByID finds an assessment by ID
func (r *EnrollmentRepository) FindAssessmentByID(ctx context.Context, id uuid.UUID) (*entities.Assessment, error) {
	var assessment entities.Assessment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&assessment).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrAssessmentNotFound
		}
		return nil, fmt.Errorf("failed to find assessment: %w", err)
	}
	return &assessment, nil
}

type assignPathwayParam struct {
	StudentID uuid.UUID `json:"student_id"`
	PathwayID uuid.UUID `json:"pathway_id"`
}

// AssignPathways calls update_assessment_and_assign_pathways, which updates
// the assessment and inserts the progress rows inside a single transaction.
func (r *EnrollmentRepository) AssignPathways(ctx context.Context, assessmentID uuid.UUID, summary entities.Summary, assignments []entities.PathwayAssignment) error {
	summaryJSON, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}

	params := make([]assignPathwayParam, 0, len(assignments))
	for _, a := range assignments {
		params = append(params, assignPathwayParam{StudentID: a.StudentID, PathwayID: a.PathwayID})
	}
	pathwaysJSON, err := json.Marshal(params)
	if err != nil {
		return fmt.Errorf("failed to encode pathways: %w", err)
	}

	if err := r.db.WithContext(ctx).
		Exec("SELECT update_assessment_and_assign_pathways(?, ?::jsonb, ?::jsonb)",
			assessmentID, string(summaryJSON), string(pathwaysJSON)).Error; err != nil {
		return fmt.Errorf("failed to assign pathways: %w", err)
	}
	return nil
}

// PathwayRepository implements the pathway repository interface using GORM
type PathwayRepository struct {
	db *gorm.DB
}

// NewPathwayRepository creates a new pathway repository
func NewPathwayRepository(db *gorm.DB) *PathwayRepository {
	return &PathwayRepository{db: db}
}

// Create adds a catalog entry
func (r *PathwayRepository) Create(ctx context.Context, pathway *entities.SkillPathway) error {
	if err := r.db.WithContext(ctx).Create(pathway).Error; err != nil {
		return fmt.Errorf("failed to create pathway: %w", err)
	}
	return nil
}

// FindByCategories selects pathways with problem_category IN categories
func (r *PathwayRepository) FindByCategories(ctx context.Context, categories []string) ([]entities.SkillPathway, error) {
	var pathways []entities.SkillPathway
	if err := r.db.WithContext(ctx).
		Select("id", "pathway_name", "problem_category").
		Where("problem_category IN ?", categories).
		Order("pathway_name ASC").
		Find(&pathways).Error; err != nil {
		return nil, fmt.Errorf("failed to find pathways by category: %w", err)
	}
	return pathways, nil
}

// List returns the catalog
func (r *PathwayRepository) List(ctx context.Context) ([]entities.SkillPathway, error) {
	var pathways []entities.SkillPathway
	if err := r.db.WithContext(ctx).Order("pathway_name ASC").Find(&pathways).Error; err != nil {
		return nil, fmt.Errorf("failed to list pathways: %w", err)
	}
	return pathways, nil
}

// ListProgressByStudent joins progress rows with their pathway
func (r *PathwayRepository) ListProgressByStudent(ctx context.Context, studentID uuid.UUID) ([]entities.PathwayProgress, error) {
	var progress []entities.PathwayProgress
	if err := r.db.WithContext(ctx).
		Table("student_pathway_progress AS spp").
		Select("spp.*, sp.pathway_name, sp.problem_category").
		Joins("JOIN skill_pathways sp ON sp.id = spp.pathway_id").
		Where("spp.student_id = ?", studentID).
		Order("sp.pathway_name ASC, spp.started_at ASC").
		Scan(&progress).Error; err != nil {
		return nil, fmt.Errorf("failed to list pathway progress: %w", err)
	}
	return progress, nil
}

// ListPriorityActions joins open progress rows with their pathway and student
func (r *PathwayRepository) ListPriorityActions(ctx context.Context, schoolID uuid.UUID, class string) ([]entities.PriorityActionItem, error) {
	query := r.db.WithContext(ctx).
		Table("student_pathway_progress AS spp").
		Select("spp.id AS assignment_id, s.school_id, spp.student_id, s.child_name, s.class, "+
			"spp.pathway_id, sp.pathway_name, sp.problem_category, sp.goal_description, spp.current_step, spp.status").
		Joins("JOIN skill_pathways sp ON sp.id = spp.pathway_id").
		Joins("JOIN students s ON s.id = spp.student_id").
		Where("s.school_id = ? AND s.status = ? AND spp.status <> ?",
			schoolID, entities.StudentStatusActive, entities.PathwayStatusCompleted)
	if class != "" {
		query = query.Where("s.class = ?", class)
	}

	var items []entities.PriorityActionItem
	if err := query.
		Order("sp.pathway_name ASC, spp.current_step ASC, s.child_name ASC").
		Scan(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list priority actions: %w", err)
	}
	return items, nil
}

// ApplyProgress locks each assignment, advances it and writes it back
func (r *PathwayRepository) ApplyProgress(ctx context.Context, updates []entities.ProgressUpdate) ([]entities.PathwayAssignment, error) {
	updated := make([]entities.PathwayAssignment, 0, len(updates))
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, u := range updates {
			var pa entities.PathwayAssignment
			if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
				Where("student_id = ? AND pathway_id = ?", u.StudentID, u.PathwayID).
				First(&pa).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fmt.Errorf("%w: student %s, pathway %s", entities.ErrAssignmentNotFound, u.StudentID, u.PathwayID)
				}
				return fmt.Errorf("failed to find pathway assignment: %w", err)
			}

			pa.Advance(u.Outcome)
			if err := tx.Model(&pa).Updates(map[string]interface{}{
				"current_step": pa.CurrentStep,
				"status":       pa.Status,
			}).Error; err != nil {
				return fmt.Errorf("failed to update pathway assignment: %w", err)
			}
			updated = append(updated, pa)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// StudentRepository implements the student repository interface using GORM
type StudentRepository struct {
	db *gorm.DB
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *gorm.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// Create creates a student
func (r *StudentRepository) Create(ctx context.Context, student *entities.Student) error {
	if err := r.db.WithContext(ctx).Create(student).Error; err != nil {
		return fmt.Errorf("failed to create student: %w", err)
	}
	return nil
}

// FindByID finds a student by ID
func (r *StudentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Student, error) {
	var student entities.Student
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&student).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entities.ErrStudentNotFound
		}
		return nil, fmt.Errorf("failed to find student: %w", err)
	}
	return &student, nil
}

// ListActiveBySchool lists active students, optionally filtered by class
func (r *StudentRepository) ListActiveBySchool(ctx context.Context, schoolID uuid.UUID, class string) ([]*entities.Student, error) {
	query := r.db.WithContext(ctx).
		Where("school_id = ? AND status = ?", schoolID, entities.StudentStatusActive)
	if class != "" {
		query = query.Where("class = ?", class)
	}

	var students []*entities.Student
	if err := query.Order("child_name ASC").Find(&students).Error; err != nil {
		return nil, fmt.Errorf("failed to list students: %w", err)
	}
	return students, nil
}

// ListByParent lists the children of a parent
func (r *StudentRepository) ListByParent(ctx context.Context, parentID uuid.UUID) ([]*entities.Student, error) {
	var students []*entities.Student
	if err := r.db.WithContext(ctx).
		Where("parent_id = ?", parentID).
		Order("child_name ASC").
		Find(&students).Error; err != nil {
		return nil, fmt.Errorf("failed to list students by parent: %w", err)
	}
	return students, nil
}
