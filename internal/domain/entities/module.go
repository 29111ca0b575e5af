package entities

import (
	"time"

	"github.com/google/uuid"
)

// Module identifiers gated by entitlement checks
const (
	ModuleAICopilot       = "ai_copilot"
	ModuleFinancials      = "financials"
	ModuleCurriculum      = "curriculum_planner"
	ModuleCommunications  = "communications"
	ModuleComplianceVault = "compliance"
)

// GroveModule is a purchasable feature of the dashboard
type GroveModule struct {
	ID          string `json:"id" gorm:"type:varchar(50);primary_key"`
	ModuleName  string `json:"module_name" gorm:"type:varchar(255);not null"`
	Description string `json:"description" gorm:"type:text"`
}

// TableName overrides the default table name
func (GroveModule) TableName() string {
	return "modules"
}

// SchoolUnlockedModule records that a school activated a module
type SchoolUnlockedModule struct {
	SchoolID   uuid.UUID `json:"school_id" gorm:"type:uuid;primaryKey"`
	ModuleID   string    `json:"module_id" gorm:"type:varchar(50);primaryKey"`
	UnlockedAt time.Time `json:"unlocked_at" gorm:"not null"`
}

// TableName overrides the default table name
func (SchoolUnlockedModule) TableName() string {
	return "school_unlocked_modules"
}
