package compliance

// CreateRecordRequest holds the multipart form fields of a new record.
// The document itself is read from the "file" part.
type CreateRecordRequest struct {
	RecordType string `form:"record_type" validate:"required,notblank,max=255"`
	Status     string `form:"status" validate:"required,oneof=Compliant Pending Non-Compliant"`
	ExpiryDate string `form:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
}
