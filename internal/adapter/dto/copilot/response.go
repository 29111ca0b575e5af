package copilot

import "time"

// AlertResponse is an alert as shown on the Co-Pilot feed
type AlertResponse struct {
	ID          string                 `json:"id"`
	AlertType   string                 `json:"alert_type"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Details     map[string]interface{} `json:"details"`
	Status      string                 `json:"status"`
	CreatedAt   time.Time              `json:"created_at"`
}
