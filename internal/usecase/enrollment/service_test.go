package enrollment

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
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
	db       *memory.DB
	repos    *repositories.Registry
	schoolID uuid.UUID
	language entities.SkillPathway
	social   entities.SkillPathway
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := memory.NewDB()
	repos := memory.NewRegistry(db)
	ctx := context.Background()

	school := entities.NewSchool("Acacia Grove")
	require.NoError(t, repos.Schools.Create(ctx, school))

	f := &fixture{db: db, repos: repos, schoolID: school.ID}
	f.language = entities.SkillPathway{PathwayName: "Storytime Talkers", ProblemCategory: entities.CategoryLanguage}
	f.social = entities.SkillPathway{PathwayName: "Sharing Circle", ProblemCategory: entities.CategorySocial}
	require.NoError(t, repos.Pathways.Create(ctx, &f.language))
	require.NoError(t, repos.Pathways.Create(ctx, &f.social))
	return f
}

func (f *fixture) enroll(t *testing.T, svc Service, answers string) *EnrollResult {
	t.Helper()
	res, err := svc.Enroll(context.Background(), f.schoolID, EnrollInput{
		FacilitatorName: "Ms. Wanjiru",
		ChildName:       "Amani",
		Gender:          "female",
		Class:           "Sunflowers",
		AssessmentData:  json.RawMessage(answers),
	})
	require.NoError(t, err)
	return res
}

type countingPathways struct {
	repositories.PathwayRepository
	calls atomic.Int32
}

func (c *countingPathways) FindByCategories(ctx context.Context, categories []string) ([]entities.SkillPathway, error) {
	c.calls.Add(1)
	return c.PathwayRepository.FindByCategories(ctx, categories)
}

type failingAssign struct {
	repositories.EnrollmentRepository
}

func (failingAssign) AssignPathways(context.Context, uuid.UUID, entities.Summary, []entities.PathwayAssignment) error {
	return errors.New("connection reset by peer")
}

func TestProcess_SpeechDelay(t *testing.T) {
	f := newFixture(t)
	svc := NewService(f.repos.Enrollments, f.repos.Pathways, nil, zap.NewNop())
	enrolled := f.enroll(t, svc, `{"concerns":["Speech Delay"],"cognitive_skills":"Above Average","interests":"Dinosaurs"}`)

	res, err := svc.Process(context.Background(), f.schoolID, enrolled.AssessmentID)
	require.NoError(t, err)

	require.Len(t, res.Summary.FocusAreas, 1)
	assert.Equal(t, entities.CategoryLanguage, res.Summary.FocusAreas[0].Category)
	assert.Equal(t, []string{cognitiveStrength}, res.Summary.Strengths)
	assert.Equal(t, "Dinosaurs", res.Summary.Interests)

	require.Len(t, res.RecommendedPathways, 1)
	assert.Equal(t, f.language.ID, res.RecommendedPathways[0].ID)

	assignments := f.db.PathwayAssignments()
	require.Len(t, assignments, 1)
	assert.Equal(t, enrolled.StudentID, assignments[0].StudentID)
	assert.Equal(t, f.language.ID, assignments[0].PathwayID)
	assert.Equal(t, 1, assignments[0].CurrentStep)
	assert.Equal(t, entities.PathwayStatusNotStarted, assignments[0].Status)

	stored, err := svc.Get(context.Background(), f.schoolID, enrolled.AssessmentID)
	require.NoError(t, err)
	assert.True(t, stored.IsProcessed())
	assert.NotNil(t, stored.ProcessedAt)
	summary, err := stored.Summary()
	require.NoError(t, err)
	require.NotNil(t, summary)
	assert.Equal(t, res.Summary, *summary)
}

func TestProcess_NoConcernsSkipsLookup(t *testing.T) {
	f := newFixture(t)
	pathways := &countingPathways{PathwayRepository: f.repos.Pathways}
	svc := NewService(f.repos.Enrollments, pathways, nil, nil)
	enrolled := f.enroll(t, svc, `{"concerns":[]}`)

	res, err := svc.Process(context.Background(), f.schoolID, enrolled.AssessmentID)
	require.NoError(t, err)

	assert.Equal(t, []entities.FocusArea{}, res.Summary.FocusAreas)
	assert.Equal(t, []string{}, res.Summary.Strengths)
	assert.Equal(t, entities.InterestsNotSpecified, res.Summary.Interests)
	assert.Empty(t, res.RecommendedPathways)
	assert.NotNil(t, res.RecommendedPathways)
	assert.Zero(t, pathways.calls.Load())
	assert.Empty(t, f.db.PathwayAssignments())

	stored, err := svc.Get(context.Background(), f.schoolID, enrolled.AssessmentID)
	require.NoError(t, err)
	assert.True(t, stored.IsProcessed())
}

func TestProcess_NotFound(t *testing.T) {
	f := newFixture(t)
	svc := NewService(f.repos.Enrollments, f.repos.Pathways, nil, nil)

	_, err := svc.Process(context.Background(), f.schoolID, uuid.New())
	assert.ErrorIs(t, err, entities.ErrAssessmentNotFound)
	assert.Empty(t, f.db.PathwayAssignments())
}

func TestProcess_MissingReference(t *testing.T) {
	f := newFixture(t)
	svc := NewService(f.repos.Enrollments, f.repos.Pathways, nil, nil)

	_, err := svc.Process(context.Background(), f.schoolID, uuid.Nil)
	assert.ErrorIs(t, err, entities.ErrMissingAssessmentID)
}

func TestProcess_OtherSchoolIsNotFound(t *testing.T) {
	f := newFixture(t)
	svc := NewService(f.repos.Enrollments, f.repos.Pathways, nil, nil)
	enrolled := f.enroll(t, svc, `{"concerns":["Speech Delay"]}`)

	_, err := svc.Process(context.Background(), uuid.New(), enrolled.AssessmentID)
	assert.ErrorIs(t, err, entities.ErrAssessmentNotFound)
	assert.Empty(t, f.db.PathwayAssignments())
}

func TestProcess_PersistFailureLeavesRecordPending(t *testing.T) {
	f := newFixture(t)
	svc := NewService(failingAssign{f.repos.Enrollments}, f.repos.Pathways, nil, nil)
	enrolled := f.enroll(t, svc, `{"concerns":["Speech Delay","Shyness"]}`)

	_, err := svc.Process(context.Background(), f.schoolID, enrolled.AssessmentID)
	require.Error(t, err)
	assert.ErrorIs(t, err, entities.ErrPersistFailed)
	assert.Contains(t, err.Error(), "connection reset by peer")

	stored, err := f.repos.Enrollments.FindAssessmentByID(context.Background(), enrolled.AssessmentID)
	require.NoError(t, err)
	assert.False(t, stored.IsProcessed())
	summary, err := stored.Summary()
	require.NoError(t, err)
	assert.Nil(t, summary)
	assert.Empty(t, f.db.PathwayAssignments())
}

func TestProcess_StoreRejectsAssignmentAtomically(t *testing.T) {
	f := newFixture(t)
	svc := NewService(f.repos.Enrollments, f.repos.Pathways, nil, nil)
	enrolled := f.enroll(t, svc, `{"concerns":["Speech Delay"]}`)

	// a catalog row the store cannot resolve makes the whole write fail
	err := f.repos.Enrollments.AssignPathways(context.Background(), enrolled.AssessmentID,
		entities.NewSummary(), []entities.PathwayAssignment{
			entities.NewPathwayAssignment(enrolled.StudentID, f.language.ID),
			entities.NewPathwayAssignment(enrolled.StudentID, uuid.New()),
		})
	require.Error(t, err)

	stored, err := f.repos.Enrollments.FindAssessmentByID(context.Background(), enrolled.AssessmentID)
	require.NoError(t, err)
	assert.False(t, stored.IsProcessed())
	assert.Empty(t, f.db.PathwayAssignments())
}

func TestProcess_RerunAddsAssignments(t *testing.T) {
	f := newFixture(t)
	svc := NewService(f.repos.Enrollments, f.repos.Pathways, nil, nil)
	enrolled := f.enroll(t, svc, `{"concerns":["Speech Delay"]}`)

	first, err := svc.Process(context.Background(), f.schoolID, enrolled.AssessmentID)
	require.NoError(t, err)
	second, err := svc.Process(context.Background(), f.schoolID, enrolled.AssessmentID)
	require.NoError(t, err)

	assert.Equal(t, first.Summary, second.Summary)
	assert.Len(t, f.db.PathwayAssignments(), 2)
}

func TestProcess_SummarizerFailure(t *testing.T) {
	f := newFixture(t)
	llm := NewLLMSummarizer(&fakeCompleter{err: errors.New("timeout")}, nil)
	svc := NewService(f.repos.Enrollments, f.repos.Pathways, llm, nil)
	enrolled := f.enroll(t, svc, `{"concerns":["Speech Delay"]}`)

	_, err := svc.Process(context.Background(), f.schoolID, enrolled.AssessmentID)
	assert.ErrorIs(t, err, entities.ErrSummaryGeneration)
	assert.Empty(t, f.db.PathwayAssignments())
}

func TestEnroll(t *testing.T) {
	f := newFixture(t)
	svc := NewService(f.repos.Enrollments, f.repos.Pathways, nil, nil)

	t.Run("creates student and pending assessment", func(t *testing.T) {
		res := f.enroll(t, svc, `{"concerns":["Shyness"],"favourite_colour":"green"}`)

		student, err := f.repos.Students.FindByID(context.Background(), res.StudentID)
		require.NoError(t, err)
		assert.True(t, student.IsActive())
		assert.Equal(t, f.schoolID, student.SchoolID)

		assessment, err := svc.Get(context.Background(), f.schoolID, res.AssessmentID)
		require.NoError(t, err)
		assert.Equal(t, entities.AIStatusPending, assessment.AIStatus)
		assert.Equal(t, res.StudentID, assessment.StudentID)
		assert.Equal(t, "Amani", assessment.ChildName)
		assert.Contains(t, assessment.Answers().Other, "favourite_colour")
	})

	t.Run("rejects blank child name", func(t *testing.T) {
		_, err := svc.Enroll(context.Background(), f.schoolID, EnrollInput{ChildName: "  "})
		assert.ErrorIs(t, err, entities.ErrInvalidEnrollment)
	})

	t.Run("rejects non-object answers", func(t *testing.T) {
		_, err := svc.Enroll(context.Background(), f.schoolID, EnrollInput{
			ChildName:      "Baraka",
			AssessmentData: json.RawMessage(`["Speech Delay"]`),
		})
		assert.ErrorIs(t, err, entities.ErrInvalidEnrollment)
	})
}
