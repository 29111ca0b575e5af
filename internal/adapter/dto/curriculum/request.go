package curriculum

// PriorityActionsRequest represents query parameters for the planner
type PriorityActionsRequest struct {
	Class string `query:"class" validate:"max=100"`
}

// ProgressUpdateRequest is one activity outcome
type ProgressUpdateRequest struct {
	StudentID string `json:"student_id" validate:"required,uuid"`
	PathwayID string `json:"pathway_id" validate:"required,uuid"`
	Outcome   string `json:"outcome" validate:"required,oneof=mastered practicing struggling"`
}

// UpdateProgressRequest is a batch of outcomes applied together
type UpdateProgressRequest struct {
	Updates []ProgressUpdateRequest `json:"updates" validate:"required,min=1,max=200,dive"`
}
