package student

// ListStudentsRequest represents query parameters for listing students
type ListStudentsRequest struct {
	Class string `query:"class" validate:"max=100"`
}
