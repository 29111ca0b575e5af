package curriculum

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/momsgrove/grove-api/internal/adapter/repository/memory"
	"github.com/momsgrove/grove-api/internal/domain/entities"
	"github.com/momsgrove/grove-api/internal/domain/repositories"
)

type fixture struct {
	repos    *repositories.Registry
	svc      *Service
	schoolID uuid.UUID
	language entities.SkillPathway
	motor    entities.SkillPathway
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := memory.NewRegistry(memory.NewDB())
	f := &fixture{
		repos:    repos,
		svc:      NewService(repos.Pathways, repos.Students, zap.NewNop()),
		schoolID: uuid.New(),
		language: entities.SkillPathway{PathwayName: "Storytime Talkers", ProblemCategory: entities.CategoryLanguage},
		motor:    entities.SkillPathway{PathwayName: "Busy Hands", ProblemCategory: entities.CategoryMotor},
	}
	require.NoError(t, repos.Pathways.Create(context.Background(), &f.language))
	require.NoError(t, repos.Pathways.Create(context.Background(), &f.motor))
	return f
}

// enroll adds a student to schoolID with one assignment per pathway
func (f *fixture) enroll(t *testing.T, schoolID uuid.UUID, name, class string, pathways ...entities.SkillPathway) *entities.Student {
	t.Helper()
	ctx := context.Background()
	st := entities.NewStudent(schoolID, name, "female", class, nil)
	assessment := entities.NewAssessment(st, "", nil)
	require.NoError(t, f.repos.Enrollments.CreateEnrollment(ctx, st, assessment))

	assignments := make([]entities.PathwayAssignment, 0, len(pathways))
	for _, p := range pathways {
		assignments = append(assignments, entities.NewPathwayAssignment(st.ID, p.ID))
	}
	require.NoError(t, f.repos.Enrollments.AssignPathways(ctx, assessment.ID, entities.NewSummary(), assignments))
	return st
}

func TestPriorityActions(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)

	zuri := f.enroll(t, f.schoolID, "Zuri", "Sunflowers", f.language, f.motor)
	amani := f.enroll(t, f.schoolID, "Amani", "Daisies", f.language)
	f.enroll(t, uuid.New(), "Chege", "Daisies", f.language)

	_, err := f.svc.RecordOutcomes(ctx, f.schoolID, []entities.ProgressUpdate{
		{StudentID: zuri.ID, PathwayID: f.language.ID, Outcome: entities.OutcomeMastered},
	})
	require.NoError(t, err)

	t.Run("ordered by pathway, step and name", func(t *testing.T) {
		got, err := f.svc.PriorityActions(ctx, f.schoolID, "")
		require.NoError(t, err)
		require.Len(t, got, 3)

		assert.Equal(t, "Busy Hands", got[0].PathwayName)
		assert.Equal(t, zuri.ID, got[0].StudentID)

		assert.Equal(t, "Storytime Talkers", got[1].PathwayName)
		assert.Equal(t, amani.ID, got[1].StudentID)
		assert.Equal(t, 1, got[1].CurrentStep)
		assert.Equal(t, entities.PathwayStatusNotStarted, got[1].Status)

		assert.Equal(t, zuri.ID, got[2].StudentID)
		assert.Equal(t, 2, got[2].CurrentStep)
		assert.Equal(t, entities.PathwayStatusInProgress, got[2].Status)
		assert.Equal(t, "Sunflowers", got[2].Class)
	})

	t.Run("class filter", func(t *testing.T) {
		got, err := f.svc.PriorityActions(ctx, f.schoolID, "Daisies")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, "Amani", got[0].ChildName)
	})

	t.Run("completed pathways drop off", func(t *testing.T) {
		for i := 0; i < entities.PathwayFinalStep; i++ {
			_, err := f.svc.RecordOutcomes(ctx, f.schoolID, []entities.ProgressUpdate{
				{StudentID: amani.ID, PathwayID: f.language.ID, Outcome: entities.OutcomeMastered},
			})
			require.NoError(t, err)
		}

		progress, err := f.repos.Pathways.ListProgressByStudent(ctx, amani.ID)
		require.NoError(t, err)
		require.Len(t, progress, 1)
		assert.Equal(t, entities.PathwayStatusCompleted, progress[0].Status)
		assert.Equal(t, entities.PathwayFinalStep, progress[0].CurrentStep)

		got, err := f.svc.PriorityActions(ctx, f.schoolID, "Daisies")
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}

func TestRecordOutcomes(t *testing.T) {
	ctx := context.Background()

	t.Run("practice starts a pathway without moving it", func(t *testing.T) {
		f := newFixture(t)
		zuri := f.enroll(t, f.schoolID, "Zuri", "Sunflowers", f.language, f.motor)

		got, err := f.svc.RecordOutcomes(ctx, f.schoolID, []entities.ProgressUpdate{
			{StudentID: zuri.ID, PathwayID: f.language.ID, Outcome: entities.OutcomePracticing},
			{StudentID: zuri.ID, PathwayID: f.motor.ID, Outcome: entities.OutcomeStruggling},
		})
		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, pa := range got {
			assert.Equal(t, 1, pa.CurrentStep)
			assert.Equal(t, entities.PathwayStatusInProgress, pa.Status)
		}
	})

	t.Run("a missing assignment rolls back the batch", func(t *testing.T) {
		f := newFixture(t)
		zuri := f.enroll(t, f.schoolID, "Zuri", "Sunflowers", f.language)

		_, err := f.svc.RecordOutcomes(ctx, f.schoolID, []entities.ProgressUpdate{
			{StudentID: zuri.ID, PathwayID: f.language.ID, Outcome: entities.OutcomeMastered},
			{StudentID: zuri.ID, PathwayID: f.motor.ID, Outcome: entities.OutcomeMastered},
		})
		assert.ErrorIs(t, err, entities.ErrAssignmentNotFound)

		progress, err := f.repos.Pathways.ListProgressByStudent(ctx, zuri.ID)
		require.NoError(t, err)
		require.Len(t, progress, 1)
		assert.Equal(t, 1, progress[0].CurrentStep)
		assert.Equal(t, entities.PathwayStatusNotStarted, progress[0].Status)
	})

	t.Run("rejects bad batches", func(t *testing.T) {
		f := newFixture(t)
		zuri := f.enroll(t, f.schoolID, "Zuri", "Sunflowers", f.language)
		chege := f.enroll(t, uuid.New(), "Chege", "Daisies", f.language)

		_, err := f.svc.RecordOutcomes(ctx, f.schoolID, nil)
		assert.ErrorIs(t, err, entities.ErrInvalidRequest)

		_, err = f.svc.RecordOutcomes(ctx, f.schoolID, []entities.ProgressUpdate{
			{StudentID: zuri.ID, PathwayID: f.language.ID, Outcome: "bored"},
		})
		assert.ErrorIs(t, err, entities.ErrInvalidOutcome)

		_, err = f.svc.RecordOutcomes(ctx, f.schoolID, []entities.ProgressUpdate{
			{StudentID: zuri.ID, PathwayID: f.language.ID, Outcome: entities.OutcomeMastered},
			{StudentID: zuri.ID, PathwayID: f.language.ID, Outcome: entities.OutcomeMastered},
		})
		assert.ErrorIs(t, err, entities.ErrInvalidRequest)

		_, err = f.svc.RecordOutcomes(ctx, f.schoolID, []entities.ProgressUpdate{
			{StudentID: chege.ID, PathwayID: f.language.ID, Outcome: entities.OutcomeMastered},
		})
		assert.ErrorIs(t, err, entities.ErrStudentNotFound)

		progress, err := f.repos.Pathways.ListProgressByStudent(ctx, chege.ID)
		require.NoError(t, err)
		assert.Equal(t, 1, progress[0].CurrentStep)
	})

	t.Run("student lookup failure is not a 404", func(t *testing.T) {
		f := newFixture(t)
		svc := NewService(f.repos.Pathways, failingStudents{f.repos.Students}, nil)

		_, err := svc.RecordOutcomes(ctx, f.schoolID, []entities.ProgressUpdate{
			{StudentID: uuid.New(), PathwayID: f.language.ID, Outcome: entities.OutcomeMastered},
		})
		require.Error(t, err)
		assert.NotErrorIs(t, err, entities.ErrStudentNotFound)
	})
}

type failingStudents struct {
	repositories.StudentRepository
}

func (failingStudents) FindByID(context.Context, uuid.UUID) (*entities.Student, error) {
	return nil, errors.New("connection reset by peer")
}

func TestAdvance(t *testing.T) {
	pa := entities.NewPathwayAssignment(uuid.New(), uuid.New())

	pa.Advance(entities.OutcomeStruggling)
	assert.Equal(t, 1, pa.CurrentStep)
	assert.Equal(t, entities.PathwayStatusInProgress, pa.Status)

	for step := 2; step <= entities.PathwayFinalStep; step++ {
		pa.Advance(entities.OutcomeMastered)
		assert.Equal(t, step, pa.CurrentStep)
		assert.Equal(t, entities.PathwayStatusInProgress, pa.Status)
	}

	pa.Advance(entities.OutcomeMastered)
	assert.Equal(t, entities.PathwayFinalStep, pa.CurrentStep)
	assert.Equal(t, entities.PathwayStatusCompleted, pa.Status)

	pa.Advance(entities.OutcomePracticing)
	assert.Equal(t, entities.PathwayStatusCompleted, pa.Status)
}
