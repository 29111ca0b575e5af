package student

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momsgrove/grove-api/internal/adapter/repository/memory"
	"github.com/momsgrove/grove-api/internal/domain/entities"
)

func TestService(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRegistry(memory.NewDB())
	svc := NewService(repos.Students, repos.Pathways, repos.Users)

	schoolID := uuid.New()
	otherSchool := uuid.New()
	parentID := uuid.New()

	zuri := entities.NewStudent(schoolID, "Zuri", "female", "Sunflowers", nil)
	zuri.ParentID = &parentID
	amani := entities.NewStudent(schoolID, "Amani", "male", "Daisies", nil)
	gone := entities.NewStudent(schoolID, "Baraka", "male", "Daisies", nil)
	gone.Status = entities.StudentStatusWithdrawn
	elsewhere := entities.NewStudent(otherSchool, "Chege", "male", "Daisies", nil)
	for _, s := range []*entities.Student{zuri, amani, gone, elsewhere} {
		require.NoError(t, repos.Students.Create(ctx, s))
	}

	pathway := entities.SkillPathway{PathwayName: "Storytime Talkers", ProblemCategory: entities.CategoryLanguage}
	require.NoError(t, repos.Pathways.Create(ctx, &pathway))
	assessment := entities.NewAssessment(zuri, "", nil)
	require.NoError(t, repos.Enrollments.CreateEnrollment(ctx, zuri, assessment))
	require.NoError(t, repos.Enrollments.AssignPathways(ctx, assessment.ID, entities.NewSummary(),
		[]entities.PathwayAssignment{entities.NewPathwayAssignment(zuri.ID, pathway.ID)}))

	admin := &entities.Principal{UserID: uuid.New(), Role: entities.RoleAdmin, SchoolID: &schoolID}
	parent := &entities.Principal{UserID: parentID, Role: entities.RoleParent}

	t.Run("staff list active students by name", func(t *testing.T) {
		got, err := svc.List(ctx, admin, "")
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, "Amani", got[0].ChildName)
		assert.Equal(t, "Zuri", got[1].ChildName)
	})

	t.Run("class filter", func(t *testing.T) {
		got, err := svc.List(ctx, admin, "Sunflowers")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, zuri.ID, got[0].ID)
	})

	t.Run("parent lists own children", func(t *testing.T) {
		got, err := svc.List(ctx, parent, "")
		require.NoError(t, err)
		require.Len(t, got, 1)
		assert.Equal(t, zuri.ID, got[0].ID)
	})

	t.Run("detail includes progress", func(t *testing.T) {
		d, err := svc.Get(ctx, admin, zuri.ID)
		require.NoError(t, err)
		require.Len(t, d.Progress, 1)
		assert.Equal(t, "Storytime Talkers", d.Progress[0].PathwayName)
		assert.Equal(t, entities.CategoryLanguage, d.Progress[0].ProblemCategory)
	})

	t.Run("other school is hidden", func(t *testing.T) {
		_, err := svc.Get(ctx, admin, elsewhere.ID)
		assert.ErrorIs(t, err, entities.ErrStudentNotFound)
	})

	t.Run("parent cannot read another child", func(t *testing.T) {
		_, err := svc.Get(ctx, parent, amani.ID)
		assert.ErrorIs(t, err, entities.ErrStudentNotFound)

		d, err := svc.Get(ctx, parent, zuri.ID)
		require.NoError(t, err)
		assert.Equal(t, zuri.ID, d.Student.ID)
	})

	t.Run("staff without school", func(t *testing.T) {
		_, err := svc.List(ctx, &entities.Principal{Role: entities.RoleTeacher}, "")
		assert.ErrorIs(t, err, entities.ErrNoSchool)
	})
}

func TestTeachers(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRegistry(memory.NewDB())
	svc := NewService(repos.Students, repos.Pathways, repos.Users)
	schoolID := uuid.New()

	for _, u := range []struct {
		email, name string
		role        entities.Role
	}{
		{"wanjiru@grove.test", "Wanjiru", entities.RoleTeacher},
		{"akinyi@grove.test", "Akinyi", entities.RoleTeacher},
		{"head@grove.test", "Head", entities.RoleAdmin},
	} {
		user, err := entities.NewUser(u.email, u.name, u.role, &schoolID, "password123")
		require.NoError(t, err)
		require.NoError(t, repos.Users.Create(ctx, user))
	}

	got, err := svc.Teachers(ctx, schoolID)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Akinyi", got[0].Name)
	assert.Equal(t, "Wanjiru", got[1].Name)
}
