package common

// ErrorResponse is the body written for every failed request
type ErrorResponse struct {
	Code    string            `json:"code"`
	Error   string            `json:"error"`
	Info    string            `json:"info,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// SuccessResponse wraps the data of a successful request
type SuccessResponse struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// HealthResponse is returned by GET /health
type HealthResponse struct {
	Status      string `json:"status"`
	Environment string `json:"environment"`
	Store       string `json:"store"`
}
