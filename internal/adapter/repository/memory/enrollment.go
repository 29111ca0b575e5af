package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/momsgrove/grove-api/internal/domain/entities"
)

type studentRepository struct {
	db *DB
}

func (r *studentRepository) Create(ctx context.Context, student *entities.Student) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if student.ID == uuid.Nil {
		student.ID = uuid.New()
	}
	stored := *student
	stored.ParentID = cloneID(student.ParentID)
	r.db.students[student.ID] = stored
	return nil
}

func (r *studentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entities.Student, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	s, ok := r.db.students[id]
	if !ok {
		return nil, entities.ErrStudentNotFound
	}
	return &s, nil
}

func (r *studentRepository) ListActiveBySchool(ctx context.Context, schoolID uuid.UUID, class string) ([]*entities.Student, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]*entities.Student, 0)
	for _, s := range r.db.students {
		if s.SchoolID != schoolID || !s.IsActive() {
			continue
		}
		if class != "" && s.Class != class {
			continue
		}
		s := s
		out = append(out, &s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChildName < out[j].ChildName })
	return out, nil
}

func (r *studentRepository) ListByParent(ctx context.Context, parentID uuid.UUID) ([]*entities.Student, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]*entities.Student, 0)
	for _, s := range r.db.students {
		if s.ParentID != nil && *s.ParentID == parentID {
			s := s
			out = append(out, &s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ChildName < out[j].ChildName })
	return out, nil
}

type enrollmentRepository struct {
	db *DB
}

func (r *enrollmentRepository) CreateEnrollment(ctx context.Context, student *entities.Student, assessment *entities.Assessment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if student.ID == uuid.Nil {
		student.ID = uuid.New()
	}
	if assessment.ID == uuid.Nil {
		assessment.ID = uuid.New()
	}
	assessment.StudentID = student.ID

	storedStudent := *student
	storedStudent.ParentID = cloneID(student.ParentID)
	storedAssessment := *assessment
	storedAssessment.AssessmentData = cloneJSON(assessment.AssessmentData)

	r.db.students[student.ID] = storedStudent
	r.db.assessments[assessment.ID] = storedAssessment
	return nil
}

func (r *enrollmentRepository) FindAssessmentByID(ctx context.Context, id uuid.UUID) (*entities.Assessment, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	a, ok := r.db.assessments[id]
	if !ok {
		return nil, entities.ErrAssessmentNotFound
	}
	a.AssessmentData = cloneJSON(a.AssessmentData)
	a.AISummary = cloneJSON(a.AISummary)
	return &a, nil
}

// AssignPathways validates every row first and only then writes, so a
// failure leaves the assessment and the progress table untouched.
func (r *enrollmentRepository) AssignPathways(ctx context.Context, assessmentID uuid.UUID, summary entities.Summary, assignments []entities.PathwayAssignment) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	raw, err := json.Marshal(summary)
	if err != nil {
		return fmt.Errorf("failed to encode summary: %w", err)
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	assessment, ok := r.db.assessments[assessmentID]
	if !ok {
		return entities.ErrAssessmentNotFound
	}

	staged := make([]entities.PathwayAssignment, 0, len(assignments))
	for _, pa := range assignments {
		if _, ok := r.db.pathways[pa.PathwayID]; !ok {
			return fmt.Errorf("pathway %s does not exist", pa.PathwayID)
		}
		if _, ok := r.db.students[pa.StudentID]; !ok {
			return fmt.Errorf("student %s does not exist", pa.StudentID)
		}
		if pa.ID == uuid.Nil {
			pa.ID = uuid.New()
		}
		if _, dup := r.db.progress[pa.ID]; dup {
			return fmt.Errorf("assignment %s already exists", pa.ID)
		}
		staged = append(staged, pa)
	}

	now := time.Now().UTC()
	assessment.AISummary = datatypes.JSON(raw)
	assessment.AIStatus = entities.AIStatusCompleted
	assessment.ProcessedAt = &now
	r.db.assessments[assessmentID] = assessment

	for _, pa := range staged {
		r.db.progress[pa.ID] = pa
	}
	return nil
}

type pathwayRepository struct {
	db *DB
}

func (r *pathwayRepository) Create(ctx context.Context, pathway *entities.SkillPathway) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if pathway.ID == uuid.Nil {
		pathway.ID = uuid.New()
	}
	r.db.pathways[pathway.ID] = *pathway
	return nil
}

func (r *pathwayRepository) FindByCategories(ctx context.Context, categories []string) ([]entities.SkillPathway, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	set := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		set[c] = struct{}{}
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]entities.SkillPathway, 0)
	for _, p := range r.db.pathways {
		if _, ok := set[p.ProblemCategory]; ok {
			out = append(out, p)
		}
	}
	sortPathways(out)
	return out, nil
}

func (r *pathwayRepository) List(ctx context.Context) ([]entities.SkillPathway, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]entities.SkillPathway, 0, len(r.db.pathways))
	for _, p := range r.db.pathways {
		out = append(out, p)
	}
	sortPathways(out)
	return out, nil
}

func (r *pathwayRepository) ListProgressByStudent(ctx context.Context, studentID uuid.UUID) ([]entities.PathwayProgress, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]entities.PathwayProgress, 0)
	for _, pa := range r.db.progress {
		if pa.StudentID != studentID {
			continue
		}
		p := r.db.pathways[pa.PathwayID]
		out = append(out, entities.PathwayProgress{
			PathwayAssignment: pa,
			PathwayName:       p.PathwayName,
			ProblemCategory:   p.ProblemCategory,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PathwayName != out[j].PathwayName {
			return out[i].PathwayName < out[j].PathwayName
		}
		return out[i].StartedAt.Before(out[j].StartedAt)
	})
	return out, nil
}

func (r *pathwayRepository) ListPriorityActions(ctx context.Context, schoolID uuid.UUID, class string) ([]entities.PriorityActionItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	out := make([]entities.PriorityActionItem, 0)
	for _, pa := range r.db.progress {
		if pa.Status == entities.PathwayStatusCompleted {
			continue
		}
		st, ok := r.db.students[pa.StudentID]
		if !ok || st.SchoolID != schoolID || !st.IsActive() {
			continue
		}
		if class != "" && st.Class != class {
			continue
		}
		p, ok := r.db.pathways[pa.PathwayID]
		if !ok {
			continue
		}
		out = append(out, entities.PriorityActionItem{
			AssignmentID:    pa.ID,
			SchoolID:        st.SchoolID,
			StudentID:       st.ID,
			ChildName:       st.ChildName,
			Class:           st.Class,
			PathwayID:       p.ID,
			PathwayName:     p.PathwayName,
			ProblemCategory: p.ProblemCategory,
			GoalDescription: p.GoalDescription,
			CurrentStep:     pa.CurrentStep,
			Status:          pa.Status,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PathwayName != out[j].PathwayName {
			return out[i].PathwayName < out[j].PathwayName
		}
		if out[i].CurrentStep != out[j].CurrentStep {
			return out[i].CurrentStep < out[j].CurrentStep
		}
		if out[i].ChildName != out[j].ChildName {
			return out[i].ChildName < out[j].ChildName
		}
		return out[i].AssignmentID.String() < out[j].AssignmentID.String()
	})
	return out, nil
}

// ApplyProgress stages every change on copies and writes them only when the
// whole batch resolved.
func (r *pathwayRepository) ApplyProgress(ctx context.Context, updates []entities.ProgressUpdate) ([]entities.PathwayAssignment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	staged := make(map[uuid.UUID]entities.PathwayAssignment, len(updates))
	updated := make([]entities.PathwayAssignment, 0, len(updates))
	for _, u := range updates {
		pa, ok := r.findAssignment(staged, u.StudentID, u.PathwayID)
		if !ok {
			return nil, fmt.Errorf("%w: student %s, pathway %s", entities.ErrAssignmentNotFound, u.StudentID, u.PathwayID)
		}
		pa.Advance(u.Outcome)
		staged[pa.ID] = pa
		updated = append(updated, pa)
	}

	for id, pa := range staged {
		r.db.progress[id] = pa
	}
	return updated, nil
}

// findAssignment prefers a staged copy over the stored row. Callers hold the lock.
func (r *pathwayRepository) findAssignment(staged map[uuid.UUID]entities.PathwayAssignment, studentID, pathwayID uuid.UUID) (entities.PathwayAssignment, bool) {
	for _, pa := range staged {
		if pa.StudentID == studentID && pa.PathwayID == pathwayID {
			return pa, true
		}
	}
	for _, pa := range r.db.progress {
		if pa.StudentID == studentID && pa.PathwayID == pathwayID {
			return pa, true
		}
	}
	return entities.PathwayAssignment{}, false
}

func sortPathways(ps []entities.SkillPathway) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].PathwayName != ps[j].PathwayName {
			return ps[i].PathwayName < ps[j].PathwayName
		}
		return ps[i].ID.String() < ps[j].ID.String()
	})
}
