package entities

import (
	"time"

	"github.com/google/uuid"
)

// School owns students, staff, modules and records
type School struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
}

// TableName overrides the default table name
func (School) TableName() string {
	return "schools"
}

// NewSchool creates a school
func NewSchool(name string) *School {
	return &School{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
}
