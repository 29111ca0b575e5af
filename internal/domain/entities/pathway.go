package entities

import (
	"time"

	"github.com/google/uuid"
)

// SkillPathway is a catalog entry of developmental activities for one category
type SkillPathway struct {
	ID                           uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	PathwayName                  string    `json:"pathway_name" gorm:"type:varchar(255);not null"`
	ProblemCategory              string    `json:"problem_category" gorm:"type:varchar(100);not null;index"`
	GoalDescription              string    `json:"goal_description" gorm:"type:text"`
	ParentHomeActivitySuggestion string    `json:"parent_home_activity_suggestion" gorm:"type:text"`
}

// TableName overrides the default table name
func (SkillPathway) TableName() string {
	return "skill_pathways"
}

// PathwayStatus defines progress states of an assigned pathway
type PathwayStatus string

const (
	PathwayStatusNotStarted PathwayStatus = "not_started"
	PathwayStatusInProgress PathwayStatus = "in_progress"
	PathwayStatusCompleted  PathwayStatus = "completed"
)

// PathwayAssignment links a student to a recommended pathway
type PathwayAssignment struct {
	ID          uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	StudentID   uuid.UUID     `json:"student_id" gorm:"type:uuid;not null;index"`
	PathwayID   uuid.UUID     `json:"pathway_id" gorm:"type:uuid;not null;index"`
	CurrentStep int           `json:"current_step" gorm:"default:1;not null"`
	Status      PathwayStatus `json:"status" gorm:"type:varchar(20);default:'not_started';not null"`
	StartedAt   time.Time     `json:"started_at" gorm:"not null"`
}

// TableName overrides the default table name
func (PathwayAssignment) TableName() string {
	return "student_pathway_progress"
}

// NewPathwayAssignment creates an assignment at step one
func NewPathwayAssignment(studentID, pathwayID uuid.UUID) PathwayAssignment {
	return PathwayAssignment{
		ID:          uuid.New(),
		StudentID:   studentID,
		PathwayID:   pathwayID,
		CurrentStep: 1,
		Status:      PathwayStatusNotStarted,
		StartedAt:   time.Now().UTC(),
	}
}

// PathwayProgress is an assignment joined with its catalog entry
type PathwayProgress struct {
	PathwayAssignment
	PathwayName     string `json:"pathway_name"`
	ProblemCategory string `json:"problem_category"`
}

// PathwayFinalStep is the last step of every pathway. Mastering it completes
// the assignment.
const PathwayFinalStep = 5

// ProgressOutcome is how a child did on a planned activity
type ProgressOutcome string

const (
	OutcomeMastered   ProgressOutcome = "mastered"
	OutcomePracticing ProgressOutcome = "practicing"
	OutcomeStruggling ProgressOutcome = "struggling"
)

// IsValid checks if the outcome is known
func (o ProgressOutcome) IsValid() bool {
	switch o {
	case OutcomeMastered, OutcomePracticing, OutcomeStruggling:
		return true
	}
	return false
}

// Advance applies an activity outcome. Mastery moves the child one step up,
// any other outcome only marks the pathway as started. Completed assignments
// do not change.
func (a *PathwayAssignment) Advance(outcome ProgressOutcome) {
	if a.Status == PathwayStatusCompleted {
		return
	}
	if outcome != OutcomeMastered {
		a.Status = PathwayStatusInProgress
		return
	}
	if a.CurrentStep >= PathwayFinalStep {
		a.CurrentStep = PathwayFinalStep
		a.Status = PathwayStatusCompleted
		return
	}
	a.CurrentStep++
	a.Status = PathwayStatusInProgress
}

// ProgressUpdate records one activity outcome for a student on a pathway
type ProgressUpdate struct {
	StudentID uuid.UUID
	PathwayID uuid.UUID
	Outcome   ProgressOutcome
}

// PriorityActionItem is one open pathway assignment on the teacher's planner
type PriorityActionItem struct {
	AssignmentID    uuid.UUID     `json:"assignment_id"`
	SchoolID        uuid.UUID     `json:"school_id"`
	StudentID       uuid.UUID     `json:"student_id"`
	ChildName       string        `json:"child_name"`
	Class           string        `json:"class"`
	PathwayID       uuid.UUID     `json:"pathway_id"`
	PathwayName     string        `json:"pathway_name"`
	ProblemCategory string        `json:"problem_category"`
	GoalDescription string        `json:"goal_description"`
	CurrentStep     int           `json:"current_step"`
	Status          PathwayStatus `json:"status"`
}
