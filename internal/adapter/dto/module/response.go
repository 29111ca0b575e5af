package module

// ModuleResponse represents a Grove module
type ModuleResponse struct {
	ID          string `json:"id"`
	ModuleName  string `json:"module_name"`
	Description string `json:"description,omitempty"`
}

// ActivateResponse confirms a module unlock
type ActivateResponse struct {
	ModuleID string `json:"module_id"`
	Unlocked bool   `json:"unlocked"`
}
