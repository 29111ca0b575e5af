package seed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momsgrove/grove-api/internal/adapter/repository/memory"
	"github.com/momsgrove/grove-api/internal/domain/entities"
)

func TestRun(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRegistry(memory.NewDB())

	demo, err := Run(ctx, repos, DefaultOptions(), nil)
	require.NoError(t, err)

	assert.Equal(t, entities.RoleAdmin, demo.Admin.Role)
	assert.Equal(t, demo.School.ID, *demo.Admin.SchoolID)
	assert.Equal(t, demo.School.ID, *demo.Teacher.SchoolID)
	assert.Nil(t, demo.Parent.SchoolID)
	require.NotNil(t, demo.Student)
	assert.Equal(t, demo.Parent.ID, *demo.Student.ParentID)

	pathways, err := repos.Pathways.List(ctx)
	require.NoError(t, err)
	assert.Len(t, pathways, len(Pathways()))

	unlocked, err := repos.Modules.ListUnlocked(ctx, demo.School.ID)
	require.NoError(t, err)
	assert.Len(t, unlocked, 3)

	t.Run("second run reuses everything", func(t *testing.T) {
		again, err := Run(ctx, repos, DefaultOptions(), nil)
		require.NoError(t, err)
		assert.Equal(t, demo.School.ID, again.School.ID)
		assert.Equal(t, demo.Admin.ID, again.Admin.ID)
		assert.Equal(t, demo.Student.ID, again.Student.ID)

		pathways, err := repos.Pathways.List(ctx)
		require.NoError(t, err)
		assert.Len(t, pathways, len(Pathways()))

		txs, err := repos.Transactions.ListBySchool(ctx, demo.School.ID)
		require.NoError(t, err)
		assert.Len(t, txs, 3)
	})

	t.Run("accounts can log in", func(t *testing.T) {
		u, err := repos.Users.FindByEmail(ctx, TeacherEmail)
		require.NoError(t, err)
		assert.True(t, u.CheckPassword(DefaultOptions().Password))
	})
}

func TestCatalogCoversEveryCategory(t *testing.T) {
	categories := map[string]bool{}
	for _, p := range Pathways() {
		categories[p.ProblemCategory] = true
	}
	for _, c := range []string{entities.CategoryLanguage, entities.CategorySocial, entities.CategoryMotor} {
		assert.True(t, categories[c], c)
	}
}
