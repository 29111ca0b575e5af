package finance

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momsgrove/grove-api/internal/adapter/repository/memory"
	"github.com/momsgrove/grove-api/internal/domain/entities"
	"github.com/momsgrove/grove-api/internal/domain/repositories"
)

type failingStudents struct {
	repositories.StudentRepository
}

func (failingStudents) FindByID(context.Context, uuid.UUID) (*entities.Student, error) {
	return nil, errors.New("connection reset by peer")
}

func TestSummarize(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRegistry(memory.NewDB())
	svc := NewService(repos.Transactions, repos.Students)
	schoolID := uuid.New()

	zuri := entities.NewStudent(schoolID, "Zuri", "female", "Sunflowers", nil)
	amani := entities.NewStudent(schoolID, "Amani", "male", "Daisies", nil)
	require.NoError(t, repos.Students.Create(ctx, zuri))
	require.NoError(t, repos.Students.Create(ctx, amani))

	record := func(student *entities.Student, typ entities.TransactionType, amount float64, status entities.TransactionStatus) {
		in := RecordInput{TransactionType: typ, Amount: amount, Status: status, Description: "term 1"}
		if student != nil {
			in.StudentID = &student.ID
		}
		_, err := svc.Record(ctx, schoolID, in)
		require.NoError(t, err)
	}

	record(zuri, entities.TransactionFee, 15000, entities.TransactionPaid)
	record(zuri, entities.TransactionFee, 5000.10, entities.TransactionDue)
	record(amani, entities.TransactionFee, 15000, entities.TransactionOverdue)
	record(amani, entities.TransactionFee, 2500.20, entities.TransactionPaid)
	record(nil, entities.TransactionExpense, 7000, entities.TransactionPaid)
	record(nil, entities.TransactionExpense, 300, entities.TransactionOverdue)

	got, err := svc.Summarize(ctx, schoolID)
	require.NoError(t, err)

	require.Len(t, got.Students, 2)
	assert.Equal(t, StudentBalance{
		StudentID: amani.ID, ChildName: "Amani",
		TotalFees: 17500.2, TotalPaid: 2500.2, TotalOverdue: 15000,
	}, got.Students[0])
	assert.Equal(t, StudentBalance{
		StudentID: zuri.ID, ChildName: "Zuri",
		TotalFees: 20000.1, TotalPaid: 15000, TotalDue: 5000.1,
	}, got.Students[1])

	assert.Equal(t, Totals{
		FeesCollected: 17500.2,
		Outstanding:   20000.1,
		Overdue:       15300,
		Expenses:      7300,
	}, got.Totals)
}

func TestRecord(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRegistry(memory.NewDB())
	svc := NewService(repos.Transactions, repos.Students)
	schoolID := uuid.New()

	t.Run("paid gets a timestamp", func(t *testing.T) {
		tx, err := svc.Record(ctx, schoolID, RecordInput{
			TransactionType: entities.TransactionExpense, Amount: 99.999, Status: entities.TransactionPaid,
		})
		require.NoError(t, err)
		assert.NotNil(t, tx.PaidAt)
		assert.Equal(t, 100.0, tx.Amount)
	})

	t.Run("rejects bad input", func(t *testing.T) {
		for _, in := range []RecordInput{
			{TransactionType: entities.TransactionFee, Amount: 0, Status: entities.TransactionDue},
			{TransactionType: "REFUND", Amount: 10, Status: entities.TransactionDue},
			{TransactionType: entities.TransactionFee, Amount: 10, Status: "LATE"},
		} {
			_, err := svc.Record(ctx, schoolID, in)
			assert.ErrorIs(t, err, entities.ErrInvalidRequest)
		}
	})

	t.Run("student must belong to the school", func(t *testing.T) {
		other := entities.NewStudent(uuid.New(), "Chege", "male", "Daisies", nil)
		require.NoError(t, repos.Students.Create(ctx, other))

		_, err := svc.Record(ctx, schoolID, RecordInput{
			StudentID: &other.ID, TransactionType: entities.TransactionFee, Amount: 10, Status: entities.TransactionDue,
		})
		assert.ErrorIs(t, err, entities.ErrStudentNotFound)
	})
}

func TestRecord_StudentLookupFailure(t *testing.T) {
	repos := memory.NewRegistry(memory.NewDB())
	svc := NewService(repos.Transactions, failingStudents{repos.Students})
	studentID := uuid.New()

	_, err := svc.Record(context.Background(), uuid.New(), RecordInput{
		StudentID: &studentID, TransactionType: entities.TransactionFee, Amount: 10, Status: entities.TransactionDue,
	})
	require.Error(t, err)
	assert.NotErrorIs(t, err, entities.ErrStudentNotFound)
	assert.Contains(t, err.Error(), "connection reset by peer")
}
