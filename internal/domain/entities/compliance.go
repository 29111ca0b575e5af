package entities

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// ComplianceStatus is the review state of a compliance record
type ComplianceStatus string

const (
	ComplianceCompliant    ComplianceStatus = "Compliant"
	CompliancePending      ComplianceStatus = "Pending"
	ComplianceNonCompliant ComplianceStatus = "Non-Compliant"
)

// ExpiringSoonDays is the window in which a record is flagged before it expires
const ExpiringSoonDays = 30

// IsValid checks if the status is known
func (s ComplianceStatus) IsValid() bool {
	switch s {
	case ComplianceCompliant, CompliancePending, ComplianceNonCompliant:
		return true
	}
	return false
}

// ComplianceRecord is a licence, certificate or inspection document
type ComplianceRecord struct {
	ID          uuid.UUID        `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SchoolID    uuid.UUID        `json:"school_id" gorm:"type:uuid;not null;index"`
	RecordType  string           `json:"record_type" gorm:"type:varchar(255);not null"`
	Status      ComplianceStatus `json:"status" gorm:"type:varchar(20);not null"`
	ExpiryDate  *time.Time       `json:"expiry_date,omitempty" gorm:"type:date"`
	ObjectKey   *string          `json:"-" gorm:"type:varchar(500)"`
	ContentType string           `json:"content_type,omitempty" gorm:"type:varchar(100)"`
	CreatedAt   time.Time        `json:"created_at" gorm:"autoCreateTime"`
}

// TableName overrides the default table name
func (ComplianceRecord) TableName() string {
	return "compliance_records"
}

// DaysUntilExpiry returns the whole days left, rounded up. ok is false without an expiry date.
func (r *ComplianceRecord) DaysUntilExpiry(now time.Time) (days int, ok bool) {
	if r.ExpiryDate == nil {
		return 0, false
	}
	d := r.ExpiryDate.Sub(now).Hours() / 24
	return int(math.Ceil(d)), true
}

// IsExpired reports whether the expiry date has passed
func (r *ComplianceRecord) IsExpired(now time.Time) bool {
	return r.ExpiryDate != nil && r.ExpiryDate.Before(now)
}

// IsExpiringSoon reports whether the record expires within ExpiringSoonDays
func (r *ComplianceRecord) IsExpiringSoon(now time.Time) bool {
	days, ok := r.DaysUntilExpiry(now)
	return ok && days > 0 && days <= ExpiringSoonDays
}

// HasDocument reports whether a file was uploaded for the record
func (r *ComplianceRecord) HasDocument() bool {
	return r.ObjectKey != nil && *r.ObjectKey != ""
}
