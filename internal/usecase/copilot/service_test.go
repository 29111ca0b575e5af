package copilot

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momsgrove/grove-api/internal/adapter/repository/memory"
	"github.com/momsgrove/grove-api/internal/domain/entities"
)

func TestFeed(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewRegistry(memory.NewDB())
	svc := NewService(repos.Alerts, nil)
	schoolID := uuid.New()

	older, err := svc.Raise(ctx, schoolID, entities.AlertStudentAtRisk, map[string]interface{}{"student_name": "Amani"})
	require.NoError(t, err)
	newer, err := entities.NewAIAlert(schoolID, entities.AlertPositiveHighlight, map[string]interface{}{
		"student_name": "Zuri",
		"highlight":    "Finished the Storytime pathway",
	})
	require.NoError(t, err)
	newer.CreatedAt = older.CreatedAt.Add(time.Minute)
	require.NoError(t, repos.Alerts.Create(ctx, newer))

	_, err = svc.Raise(ctx, uuid.New(), entities.AlertStudentAtRisk, nil)
	require.NoError(t, err)

	feed, err := svc.Feed(ctx, schoolID)
	require.NoError(t, err)
	require.Len(t, feed, 2)
	assert.Equal(t, "Great Progress: Zuri", feed[0].Title())
	assert.Equal(t, "Finished the Storytime pathway", feed[0].Description())
	assert.Equal(t, "Student At Risk: Amani", feed[1].Title())

	t.Run("dismissed alerts leave the feed", func(t *testing.T) {
		updated, err := svc.SetStatus(ctx, schoolID, older.ID, entities.AlertStatusDismissed)
		require.NoError(t, err)
		assert.Equal(t, entities.AlertStatusDismissed, updated.Status)

		feed, err := svc.Feed(ctx, schoolID)
		require.NoError(t, err)
		require.Len(t, feed, 1)
		assert.Equal(t, newer.ID, feed[0].ID)
	})

	t.Run("viewed alerts stay", func(t *testing.T) {
		_, err := svc.SetStatus(ctx, schoolID, newer.ID, entities.AlertStatusViewed)
		require.NoError(t, err)
		feed, err := svc.Feed(ctx, schoolID)
		require.NoError(t, err)
		require.Len(t, feed, 1)
		assert.Equal(t, entities.AlertStatusViewed, feed[0].Status)
	})

	t.Run("status new cannot be set", func(t *testing.T) {
		_, err := svc.SetStatus(ctx, schoolID, newer.ID, entities.AlertStatusNew)
		assert.ErrorIs(t, err, entities.ErrInvalidAlertStatus)
	})

	t.Run("alert of another school", func(t *testing.T) {
		_, err := svc.SetStatus(ctx, uuid.New(), newer.ID, entities.AlertStatusViewed)
		assert.ErrorIs(t, err, entities.ErrAlertNotFound)
	})
}
