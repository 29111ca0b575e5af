package finance

// RecordTransactionRequest represents a new fee or expense
type RecordTransactionRequest struct {
	StudentID       string  `json:"student_id" validate:"omitempty,uuid"`
	TransactionType string  `json:"transaction_type" validate:"required,oneof=FEE EXPENSE"`
	Amount          float64 `json:"amount" validate:"required,gt=0"`
	Status          string  `json:"status" validate:"required,oneof=PAID DUE OVERDUE"`
	DueDate         string  `json:"due_date" validate:"omitempty,datetime=2006-01-02"`
	Description     string  `json:"description" validate:"max=1000"`
}
