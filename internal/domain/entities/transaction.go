package entities

import (
	"time"

	"github.com/google/uuid"
)

// TransactionType separates income from spending
type TransactionType string

const (
	TransactionFee     TransactionType = "FEE"
	TransactionExpense TransactionType = "EXPENSE"
)

// TransactionStatus is the payment state of a transaction
type TransactionStatus string

const (
	TransactionPaid    TransactionStatus = "PAID"
	TransactionDue     TransactionStatus = "DUE"
	TransactionOverdue TransactionStatus = "OVERDUE"
)

// FinancialTransaction is a fee charged to a student or a school expense
type FinancialTransaction struct {
	ID              uuid.UUID         `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	SchoolID        uuid.UUID         `json:"school_id" gorm:"type:uuid;not null;index"`
	StudentID       *uuid.UUID        `json:"student_id,omitempty" gorm:"type:uuid;index"`
	TransactionType TransactionType   `json:"transaction_type" gorm:"type:varchar(20);not null"`
	Amount          float64           `json:"amount" gorm:"type:numeric(12,2);not null"`
	Status          TransactionStatus `json:"status" gorm:"type:varchar(20);not null"`
	DueDate         *time.Time        `json:"due_date,omitempty" gorm:"type:date"`
	PaidAt          *time.Time        `json:"paid_at,omitempty"`
	Description     string            `json:"description" gorm:"type:text"`
	CreatedAt       time.Time         `json:"created_at" gorm:"autoCreateTime"`
}

// TableName overrides the default table name
func (FinancialTransaction) TableName() string {
	return "financial_transactions"
}
