package finance

import "time"

// TransactionResponse represents a financial transaction
type TransactionResponse struct {
	ID              string     `json:"id"`
	StudentID       string     `json:"student_id,omitempty"`
	TransactionType string     `json:"transaction_type"`
	Amount          float64    `json:"amount"`
	Status          string     `json:"status"`
	DueDate         *time.Time `json:"due_date,omitempty"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
	Description     string     `json:"description,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// StudentBalanceResponse is the fee rollup of one student
type StudentBalanceResponse struct {
	StudentID    string  `json:"student_id"`
	ChildName    string  `json:"child_name"`
	TotalFees    float64 `json:"total_fees"`
	TotalPaid    float64 `json:"total_paid"`
	TotalDue     float64 `json:"total_due"`
	TotalOverdue float64 `json:"total_overdue"`
}

// TotalsResponse are the school-wide finance figures
type TotalsResponse struct {
	FeesCollected float64 `json:"fees_collected"`
	Outstanding   float64 `json:"outstanding"`
	Overdue       float64 `json:"overdue"`
	Expenses      float64 `json:"expenses"`
}

// SummaryResponse is the finance dashboard payload
type SummaryResponse struct {
	Students []StudentBalanceResponse `json:"students"`
	Totals   TotalsResponse           `json:"totals"`
}
