package calendar

import "time"

// ListEventsRequest represents the calendar window query.
// Values are RFC 3339 timestamps or plain dates.
type ListEventsRequest struct {
	Start string `query:"start"`
	End   string `query:"end"`
}

// CreateEventRequest represents a new calendar event
type CreateEventRequest struct {
	Title       string     `json:"title" validate:"required,notblank,max=255"`
	Description string     `json:"description"`
	StartTime   time.Time  `json:"start_time" validate:"required"`
	EndTime     *time.Time `json:"end_time,omitempty"`
	Audience    []string   `json:"audience" validate:"omitempty,dive,audience"`
}
