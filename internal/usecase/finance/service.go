package finance

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/momsgrove/grove-api/internal/domain/entities"
	"github.com/momsgrove/grove-api/internal/domain/repositories"
)

// Service reads and records school transactions
type Service struct {
	transactions repositories.TransactionRepository
	students     repositories.StudentRepository
}

// NewService creates a new finance service
func NewService(transactions repositories.TransactionRepository, students repositories.StudentRepository) *Service {
	return &Service{transactions: transactions, students: students}
}

// StudentBalance is the fee rollup of one student
type StudentBalance struct {
	StudentID    uuid.UUID
	ChildName    string
	TotalFees    float64
	TotalPaid    float64
	TotalDue     float64
	TotalOverdue float64
}

// Totals are the school-wide figures shown on the finance dashboard
type Totals struct {
	FeesCollected float64
	Outstanding   float64
	Overdue       float64
	Expenses      float64
}

// Summary is the finance dashboard payload
type Summary struct {
	Students []StudentBalance
	Totals   Totals
}

// RecordInput is a new transaction
type RecordInput struct {
	StudentID       *uuid.UUID
	TransactionType entities.TransactionType
	Amount          float64
	Status          entities.TransactionStatus
	DueDate         *time.Time
	Description     string
}

// Transactions lists the school's transactions newest first
func (s *Service) Transactions(ctx context.Context, schoolID uuid.UUID) ([]*entities.FinancialTransaction, error) {
	txs, err := s.transactions.ListBySchool(ctx, schoolID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return txs, nil
}

// Record stores a fee or an expense. Paid transactions get a paid_at stamp.
func (s *Service) Record(ctx context.Context, schoolID uuid.UUID, input RecordInput) (*entities.FinancialTransaction, error) {
	if input.Amount <= 0 || math.IsInf(input.Amount, 0) || math.IsNaN(input.Amount) {
		return nil, fmt.Errorf("%w: amount must be positive", entities.ErrInvalidRequest)
	}
	switch input.TransactionType {
	case entities.TransactionFee, entities.TransactionExpense:
	default:
		return nil, fmt.Errorf("%w: unknown transaction type %q", entities.ErrInvalidRequest, input.TransactionType)
	}
	switch input.Status {
	case entities.TransactionPaid, entities.TransactionDue, entities.TransactionOverdue:
	default:
		return nil, fmt.Errorf("%w: unknown transaction status %q", entities.ErrInvalidRequest, input.Status)
	}

	if input.StudentID != nil {
		st, err := s.students.FindByID(ctx, *input.StudentID)
		if err != nil && !errors.Is(err, entities.ErrStudentNotFound) {
			return nil, fmt.Errorf("failed to find student: %w", err)
		}
		if err != nil || st.SchoolID != schoolID {
			return nil, entities.ErrStudentNotFound
		}
	}

	now := time.Now().UTC()
	tx := &entities.FinancialTransaction{
		ID:              uuid.New(),
		SchoolID:        schoolID,
		StudentID:       input.StudentID,
		TransactionType: input.TransactionType,
		Amount:          round2(input.Amount),
		Status:          input.Status,
		DueDate:         input.DueDate,
		Description:     strings.TrimSpace(input.Description),
		CreatedAt:       now,
	}
	if tx.Status == entities.TransactionPaid {
		tx.PaidAt = &now
	}

	if err := s.transactions.Create(ctx, tx); err != nil {
		return nil, fmt.Errorf("failed to record transaction: %w", err)
	}
	return tx, nil
}

// Summarize computes the per-student fee rollup and school totals
func (s *Service) Summarize(ctx context.Context, schoolID uuid.UUID) (*Summary, error) {
	txs, err := s.Transactions(ctx, schoolID)
	if err != nil {
		return nil, err
	}

	balances := make(map[uuid.UUID]*StudentBalance)
	var totals Totals

	for _, tx := range txs {
		if tx.Status == entities.TransactionOverdue {
			totals.Overdue += tx.Amount
		}

		if tx.TransactionType == entities.TransactionExpense {
			totals.Expenses += tx.Amount
			continue
		}

		if tx.Status == entities.TransactionPaid {
			totals.FeesCollected += tx.Amount
		} else {
			totals.Outstanding += tx.Amount
		}

		if tx.StudentID == nil {
			continue
		}
		b, ok := balances[*tx.StudentID]
		if !ok {
			b = &StudentBalance{StudentID: *tx.StudentID}
			balances[*tx.StudentID] = b
		}
		b.TotalFees += tx.Amount
		switch tx.Status {
		case entities.TransactionPaid:
			b.TotalPaid += tx.Amount
		case entities.TransactionDue:
			b.TotalDue += tx.Amount
		case entities.TransactionOverdue:
			b.TotalOverdue += tx.Amount
		}
	}

	out := make([]StudentBalance, 0, len(balances))
	for id, b := range balances {
		st, err := s.students.FindByID(ctx, id)
		if err != nil && !errors.Is(err, entities.ErrStudentNotFound) {
			return nil, fmt.Errorf("failed to find student: %w", err)
		}
		if st != nil {
			b.ChildName = st.ChildName
		}
		b.TotalFees = round2(b.TotalFees)
		b.TotalPaid = round2(b.TotalPaid)
		b.TotalDue = round2(b.TotalDue)
		b.TotalOverdue = round2(b.TotalOverdue)
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].ChildName != out[j].ChildName {
			return out[i].ChildName < out[j].ChildName
		}
		return out[i].StudentID.String() < out[j].StudentID.String()
	})

	totals.FeesCollected = round2(totals.FeesCollected)
	totals.Outstanding = round2(totals.Outstanding)
	totals.Overdue = round2(totals.Overdue)
	totals.Expenses = round2(totals.Expenses)

	return &Summary{Students: out, Totals: totals}, nil
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
