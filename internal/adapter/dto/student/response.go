package student

import "time"

// StudentResponse represents a student
type StudentResponse struct {
	ID             string     `json:"id"`
	ChildName      string     `json:"child_name"`
	Class          string     `json:"class,omitempty"`
	Gender         string     `json:"gender,omitempty"`
	DateOfBirth    *time.Time `json:"date_of_birth,omitempty"`
	ParentID       string     `json:"parent_id,omitempty"`
	Status         string     `json:"status"`
	EnrollmentDate time.Time  `json:"enrollment_date"`
}

// ProgressResponse is an assigned pathway with its progress
type ProgressResponse struct {
	PathwayID       string    `json:"pathway_id"`
	PathwayName     string    `json:"pathway_name"`
	ProblemCategory string    `json:"problem_category"`
	CurrentStep     int       `json:"current_step"`
	Status          string    `json:"status"`
	StartedAt       time.Time `json:"started_at"`
}

// StudentDetailResponse is a student with their pathway progress
type StudentDetailResponse struct {
	StudentResponse
	Pathways []ProgressResponse `json:"pathways"`
}

// TeacherResponse represents a teacher of the school
type TeacherResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// PathwayResponse is a skill pathway catalog entry
type PathwayResponse struct {
	ID                           string `json:"id"`
	PathwayName                  string `json:"pathway_name"`
	ProblemCategory              string `json:"problem_category"`
	GoalDescription              string `json:"goal_description,omitempty"`
	ParentHomeActivitySuggestion string `json:"parent_home_activity_suggestion,omitempty"`
}
