package copilot

// UpdateAlertRequest changes the status of an alert
type UpdateAlertRequest struct {
	Status string `json:"status" validate:"required,oneof=viewed dismissed"`
}
