package entities

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AIStatus tracks whether an assessment has been summarized
type AIStatus string

const (
	AIStatusPending   AIStatus = "pending"
	AIStatusCompleted AIStatus = "completed"
)

// Assessment is the intake questionnaire submitted for a new student
type Assessment struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SchoolID        uuid.UUID      `json:"school_id" gorm:"type:uuid;not null;index"`
	StudentID       uuid.UUID      `json:"student_id" gorm:"type:uuid;not null;index"`
	FacilitatorName string         `json:"facilitator_name" gorm:"type:varchar(255)"`
	ChildName       string         `json:"child_name" gorm:"type:varchar(255);not null"`
	Class           string         `json:"class" gorm:"type:varchar(100)"`
	DateOfBirth     *time.Time     `json:"date_of_birth,omitempty" gorm:"type:date"`
	Gender          string         `json:"gender" gorm:"type:varchar(20)"`
	AssessmentData  datatypes.JSON `json:"assessment_data" gorm:"type:jsonb;not null;default:'{}'"`
	AIStatus        AIStatus       `json:"ai_status" gorm:"column:ai_status;type:varchar(20);default:'pending';not null"`
	AISummary       datatypes.JSON `json:"ai_summary" gorm:"column:ai_summary;type:jsonb"`
	SubmittedAt     time.Time      `json:"submitted_at" gorm:"not null"`
	ProcessedAt     *time.Time     `json:"processed_at,omitempty"`
}

// TableName overrides the default table name
func (Assessment) TableName() string {
	return "student_assessments"
}

// NewAssessment creates a pending assessment for a freshly enrolled student
func NewAssessment(student *Student, facilitatorName string, answers json.RawMessage) *Assessment {
	data := datatypes.JSON(answers)
	if len(data) == 0 {
		data = datatypes.JSON(`{}`)
	}
	return &Assessment{
		ID:              uuid.New(),
		SchoolID:        student.SchoolID,
		StudentID:       student.ID,
		FacilitatorName: facilitatorName,
		ChildName:       student.ChildName,
		Class:           student.Class,
		DateOfBirth:     student.DateOfBirth,
		Gender:          student.Gender,
		AssessmentData:  data,
		AIStatus:        AIStatusPending,
		SubmittedAt:     time.Now().UTC(),
	}
}

// Answers decodes the stored answer set
func (a *Assessment) Answers() AnswerSet {
	return DecodeAnswerSet(a.AssessmentData)
}

// Summary decodes the stored summary. It returns nil while the assessment is pending.
func (a *Assessment) Summary() (*Summary, error) {
	if len(a.AISummary) == 0 || string(a.AISummary) == "null" {
		return nil, nil
	}
	var s Summary
	if err := json.Unmarshal(a.AISummary, &s); err != nil {
		return nil, fmt.Errorf("failed to decode ai_summary: %w", err)
	}
	s = s.Normalize()
	return &s, nil
}

// IsProcessed reports whether a summary has been attached
func (a *Assessment) IsProcessed() bool {
	return a.AIStatus == AIStatusCompleted
}

// AnswerSet is the questionnaire content the summarizer reads.
// Fields it does not interpret are kept in Other.
type AnswerSet struct {
	Concerns        []string                   `json:"concerns"`
	CognitiveSkills string                     `json:"cognitive_skills"`
	Interests       string                     `json:"interests"`
	Other           map[string]json.RawMessage `json:"-"`
}

// DecodeAnswerSet reads an answer set from raw JSON.
// Missing or mistyped fields decode to zero values; it never fails.
func DecodeAnswerSet(raw []byte) AnswerSet {
	set := AnswerSet{Concerns: []string{}}

	var fields map[string]json.RawMessage
	if len(raw) == 0 || json.Unmarshal(raw, &fields) != nil {
		return set
	}

	for key, value := range fields {
		switch key {
		case "concerns":
			set.Concerns = decodeStringList(value)
		case "cognitive_skills":
			set.CognitiveSkills = decodeString(value)
		case "interests":
			set.Interests = decodeString(value)
		default:
			if set.Other == nil {
				set.Other = make(map[string]json.RawMessage)
			}
			set.Other[key] = value
		}
	}
	return set
}

// MarshalJSON writes the interpreted fields together with the kept ones
func (a AnswerSet) MarshalJSON() ([]byte, error) {
	out := make(map[string]interface{}, len(a.Other)+3)
	for k, v := range a.Other {
		out[k] = v
	}
	concerns := a.Concerns
	if concerns == nil {
		concerns = []string{}
	}
	out["concerns"] = concerns
	out["cognitive_skills"] = a.CognitiveSkills
	out["interests"] = a.Interests
	return json.Marshal(out)
}

func decodeString(raw json.RawMessage) string {
	var s string
	if json.Unmarshal(raw, &s) != nil {
		return ""
	}
	return s
}

// decodeStringList accepts a list of strings, a single string, or a mixed list
func decodeStringList(raw json.RawMessage) []string {
	var list []string
	if json.Unmarshal(raw, &list) == nil {
		if list == nil {
			return []string{}
		}
		return list
	}

	var single string
	if json.Unmarshal(raw, &single) == nil {
		if single == "" {
			return []string{}
		}
		return []string{single}
	}

	var mixed []interface{}
	out := []string{}
	if json.Unmarshal(raw, &mixed) == nil {
		for _, item := range mixed {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}
