package enrollment

import "encoding/json"

// EnrollRequest is the enrollment form submitted by an admin
type EnrollRequest struct {
	FacilitatorName string          `json:"facilitator_name" validate:"max=255"`
	ChildName       string          `json:"child_name" validate:"required,notblank,max=255"`
	DateOfBirth     string          `json:"date_of_birth" validate:"omitempty,datetime=2006-01-02"`
	Gender          string          `json:"gender" validate:"max=20"`
	Class           string          `json:"class" validate:"max=100"`
	ParentID        string          `json:"parent_id" validate:"omitempty,uuid"`
	AssessmentData  json.RawMessage `json:"assessment_data" validate:"required"`
}

// ProcessRequest asks for an assessment to be summarized and matched.
// The id is checked by the handler so that a missing value maps to
// ASSESSMENT_ID_REQUIRED rather than a generic validation error.
type ProcessRequest struct {
	AssessmentID string `json:"assessment_id"`
}
