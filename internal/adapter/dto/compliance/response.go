package compliance

import "time"

// RecordResponse is a compliance record with its expiry flags
type RecordResponse struct {
	ID              string     `json:"id"`
	RecordType      string     `json:"record_type"`
	Status          string     `json:"status"`
	ExpiryDate      *time.Time `json:"expiry_date,omitempty"`
	Expired         bool       `json:"expired"`
	ExpiringSoon    bool       `json:"expiring_soon"`
	DaysUntilExpiry *int       `json:"days_until_expiry,omitempty"`
	ContentType     string     `json:"content_type,omitempty"`
	DocumentURL     string     `json:"document_url,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}
