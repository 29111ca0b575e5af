package entities

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AlertType classifies a Co-Pilot alert
type AlertType string

const (
	AlertStudentAtRisk        AlertType = "STUDENT_AT_RISK"
	AlertStudentStruggling    AlertType = "STUDENT_STRUGGLING"
	AlertStudentDisengaged    AlertType = "STUDENT_DISENGAGED"
	AlertTeacherSupportNeeded AlertType = "TEACHER_SUPPORT_NEEDED"
	AlertPositiveHighlight    AlertType = "POSITIVE_HIGHLIGHT"
)

// AlertStatus tracks whether an admin has looked at an alert
type AlertStatus string

const (
	AlertStatusNew       AlertStatus = "new"
	AlertStatusViewed    AlertStatus = "viewed"
	AlertStatusDismissed AlertStatus = "dismissed"
)

// IsSettable reports whether a client may move an alert into this status
func (s AlertStatus) IsSettable() bool {
	return s == AlertStatusViewed || s == AlertStatusDismissed
}

// AIAlert is one entry of the Co-Pilot feed
type AIAlert struct {
	ID        uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SchoolID  uuid.UUID      `json:"school_id" gorm:"type:uuid;not null;index"`
	AlertType AlertType      `json:"alert_type" gorm:"type:varchar(50);not null"`
	Details   datatypes.JSON `json:"details" gorm:"type:jsonb;not null;default:'{}'"`
	Status    AlertStatus    `json:"status" gorm:"type:varchar(20);default:'new';not null"`
	CreatedAt time.Time      `json:"created_at" gorm:"autoCreateTime"`
}

// TableName overrides the default table name
func (AIAlert) TableName() string {
	return "ai_alerts"
}

// NewAIAlert creates a new alert with the given details
func NewAIAlert(schoolID uuid.UUID, alertType AlertType, details map[string]interface{}) (*AIAlert, error) {
	raw, err := json.Marshal(details)
	if err != nil {
		return nil, fmt.Errorf("failed to encode alert details: %w", err)
	}
	return &AIAlert{
		ID:        uuid.New(),
		SchoolID:  schoolID,
		AlertType: alertType,
		Details:   datatypes.JSON(raw),
		Status:    AlertStatusNew,
		CreatedAt: time.Now().UTC(),
	}, nil
}

func (a *AIAlert) detail(key string) string {
	var m map[string]interface{}
	if json.Unmarshal(a.Details, &m) != nil {
		return ""
	}
	if v, ok := m[key]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return ""
}

// Title renders the headline shown on the dashboard card
func (a *AIAlert) Title() string {
	switch a.AlertType {
	case AlertStudentAtRisk:
		return "Student At Risk: " + a.detail("student_name")
	case AlertStudentStruggling:
		return "Student Struggling: " + a.detail("student_name")
	case AlertStudentDisengaged:
		return "Low Engagement: " + a.detail("student_name")
	case AlertTeacherSupportNeeded:
		return "Teacher Support: " + a.detail("teacher_name")
	case AlertPositiveHighlight:
		return "Great Progress: " + a.detail("student_name")
	default:
		return "AI Insight"
	}
}

// Description renders the body text shown under the title
func (a *AIAlert) Description() string {
	switch a.AlertType {
	case AlertStudentStruggling:
		return fmt.Sprintf("%s consecutive struggling logs in %s. %s",
			a.detail("consecutive_struggles"), a.detail("pathway_name"), a.detail("recommendation"))
	case AlertPositiveHighlight:
		return a.detail("highlight")
	case AlertTeacherSupportNeeded:
		return fmt.Sprintf("%s. %s", a.detail("issue"), a.detail("suggestion"))
	default:
		return string(a.Details)
	}
}
