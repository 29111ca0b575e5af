package entities

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// StudentStatus defines student lifecycle states
type StudentStatus string

const (
	StudentStatusActive    StudentStatus = "active"
	StudentStatusWithdrawn StudentStatus = "withdrawn"
	StudentStatusGraduated StudentStatus = "graduated"
)

// Student represents an enrolled child
type Student struct {
	ID             uuid.UUID     `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SchoolID       uuid.UUID     `json:"school_id" gorm:"type:uuid;not null;index"`
	ParentID       *uuid.UUID    `json:"parent_id,omitempty" gorm:"type:uuid;index"`
	ChildName      string        `json:"child_name" gorm:"type:varchar(255);not null"`
	DateOfBirth    *time.Time    `json:"date_of_birth,omitempty" gorm:"type:date"`
	Gender         string        `json:"gender" gorm:"type:varchar(20)"`
	Class          string        `json:"class" gorm:"type:varchar(100);index"`
	Status         StudentStatus `json:"status" gorm:"type:varchar(20);default:'active';not null"`
	EnrollmentDate time.Time     `json:"enrollment_date" gorm:"type:date;not null"`
	CreatedAt      time.Time     `json:"created_at" gorm:"autoCreateTime"`
}

// TableName overrides the default table name
func (Student) TableName() string {
	return "students"
}

// NewStudent creates an active student enrolled today
func NewStudent(schoolID uuid.UUID, childName, gender, class string, dateOfBirth *time.Time) *Student {
	now := time.Now().UTC()
	return &Student{
		ID:             uuid.New(),
		SchoolID:       schoolID,
		ChildName:      strings.TrimSpace(childName),
		DateOfBirth:    dateOfBirth,
		Gender:         gender,
		Class:          class,
		Status:         StudentStatusActive,
		EnrollmentDate: now.Truncate(24 * time.Hour),
		CreatedAt:      now,
	}
}

// IsActive checks if the student is currently enrolled
func (s *Student) IsActive() bool {
	return s.Status == StudentStatusActive
}
