package entities

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AudienceAll makes an event visible to every role
const AudienceAll = "all"

// SchoolEvent is a calendar entry
type SchoolEvent struct {
	ID          uuid.UUID                   `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SchoolID    uuid.UUID                   `json:"school_id" gorm:"type:uuid;not null;index"`
	Title       string                      `json:"title" gorm:"type:varchar(255);not null"`
	Description string                      `json:"description,omitempty" gorm:"type:text"`
	StartTime   time.Time                   `json:"start_time" gorm:"not null;index"`
	EndTime     *time.Time                  `json:"end_time,omitempty"`
	Audience    datatypes.JSONSlice[string] `json:"audience" gorm:"type:jsonb;not null"`
	CreatedAt   time.Time                   `json:"created_at" gorm:"autoCreateTime"`
}

// TableName overrides the default table name
func (SchoolEvent) TableName() string {
	return "school_events"
}

// VisibleTo reports whether a member with the given role should see the event
func (e *SchoolEvent) VisibleTo(role Role) bool {
	for _, a := range e.Audience {
		if a == AudienceAll || a == string(role) {
			return true
		}
	}
	return false
}

// Validate checks the time window and audience values
func (e *SchoolEvent) Validate() error {
	if e.EndTime != nil && e.EndTime.Before(e.StartTime) {
		return ErrInvalidEventWindow
	}
	if len(e.Audience) == 0 {
		return ErrInvalidAudience
	}
	for _, a := range e.Audience {
		if a != AudienceAll && !Role(a).IsValid() {
			return ErrInvalidAudience
		}
	}
	return nil
}
