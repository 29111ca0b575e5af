package curriculum

// PriorityActionResponse is one row of the teacher's planner
type PriorityActionResponse struct {
	AssignmentID    string `json:"assignment_id"`
	StudentID       string `json:"student_id"`
	ChildName       string `json:"child_name"`
	Class           string `json:"class"`
	PathwayID       string `json:"pathway_id"`
	PathwayName     string `json:"pathway_name"`
	ProblemCategory string `json:"problem_category"`
	GoalDescription string `json:"goal_description"`
	StepLevel       int    `json:"step_level"`
	Status          string `json:"status"`
}

// ProgressResponse is an assignment after an update
type ProgressResponse struct {
	ID          string `json:"id"`
	StudentID   string `json:"student_id"`
	PathwayID   string `json:"pathway_id"`
	CurrentStep int    `json:"current_step"`
	Status      string `json:"status"`
}
