package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"taskflow/internal/model"
)

func TestNotificationQueueRoundtrip(t *testing.T) {
	db := openTestDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()
	now := time.Date(2025, time.January, 8, 12, 0, 0, 0, time.UTC)

	due := &model.Notification{UserID: 1, RuleID: 1, TaskID: 10, Message: "due", SendAt: now.Add(-time.Hour)}
	future := &model.Notification{UserID: 2, RuleID: 1, TaskID: 10, Message: "future", SendAt: now.Add(time.Hour)}
	require.NoError(t, repo.Create(ctx, due))
	require.NoError(t, repo.Create(ctx, future))

	rows, err := repo.ListDue(ctx, now)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "due", rows[0].Message)

	require.NoError(t, repo.MarkSent(ctx, rows[0].ID, now))

	rows, err = repo.ListDue(ctx, now)
	require.NoError(t, err)
	assert.Empty(t, rows, "sent notifications are not listed again")
}
