package enrollment

import (
	"encoding/json"
	"time"
)

// EnrollResponse identifies the records created by an enrollment
type EnrollResponse struct {
	AssessmentID string `json:"assessment_id"`
	StudentID    string `json:"student_id"`
}

// PathwayResponse is a recommended pathway
type PathwayResponse struct {
	ID              string `json:"id"`
	PathwayName     string `json:"pathway_name"`
	ProblemCategory string `json:"problem_category"`
}

// FocusAreaResponse is a flagged developmental area
type FocusAreaResponse struct {
	Category string `json:"category"`
	Reason   string `json:"reason"`
}

// SummaryResponse is the generated child profile
type SummaryResponse struct {
	FocusAreas []FocusAreaResponse `json:"focus_areas"`
	Strengths  []string            `json:"strengths"`
	Interests  string              `json:"interests"`
}

// ProcessResponse is returned by POST /v1/enrollments/process
type ProcessResponse struct {
	Summary             SummaryResponse   `json:"summary"`
	RecommendedPathways []PathwayResponse `json:"recommendedPathways"`
}

// AssessmentResponse is a stored assessment
type AssessmentResponse struct {
	ID              string           `json:"id"`
	StudentID       string           `json:"student_id"`
	FacilitatorName string           `json:"facilitator_name,omitempty"`
	ChildName       string           `json:"child_name"`
	Class           string           `json:"class,omitempty"`
	Gender          string           `json:"gender,omitempty"`
	DateOfBirth     *time.Time       `json:"date_of_birth,omitempty"`
	AssessmentData  json.RawMessage  `json:"assessment_data"`
	AIStatus        string           `json:"ai_status"`
	AISummary       *SummaryResponse `json:"ai_summary"`
	SubmittedAt     time.Time        `json:"submitted_at"`
	ProcessedAt     *time.Time       `json:"processed_at,omitempty"`
}
