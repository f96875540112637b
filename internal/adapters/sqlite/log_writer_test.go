package sqlite_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/milestone/internal/adapters/sqlite"
	"github.com/example/milestone/internal/ports/secondary"
)

func TestLogWriterAdapter_WritesForContextUser(t *testing.T) {
	db := setupTestDB(t)
	logRepo := sqlite.NewAchievementLogRepository(db)
	writer := sqlite.NewLogWriterAdapter(logRepo)
	ctx := userCtx("alice")

	require.NoError(t, writer.LogCreate(ctx, secondary.EntityAchievement, "streak_7"))
	require.NoError(t, writer.LogUpdate(ctx, secondary.EntityGrid, "grid", "version", "1", "2"))
	require.NoError(t, writer.LogDelete(userCtx("bob"), secondary.EntityGrid, "grid"))

	logs, err := logRepo.List(ctx, secondary.AchievementLogFilters{})
	require.NoError(t, err)
	require.Len(t, logs, 2)
	for _, l := range logs {
		assert.Equal(t, "alice", l.UserID)
		assert.NotEmpty(t, l.ID)
		assert.NotEmpty(t, l.Timestamp)
	}

	updates, err := logRepo.List(ctx, secondary.AchievementLogFilters{Action: "update"})
	require.NoError(t, err)
	require.Len(t, updates, 1)
	assert.Equal(t, "version", updates[0].FieldName)
	assert.Equal(t, "1", updates[0].OldValue)
	assert.Equal(t, "2", updates[0].NewValue)
}

func TestAchievementLogRepository_ListFilters(t *testing.T) {
	db := setupTestDB(t)
	logRepo := sqlite.NewAchievementLogRepository(db)
	ctx := userCtx("local")

	for i, id := range []string{"a", "b", "c"} {
		require.NoError(t, logRepo.Create(ctx, &secondary.AchievementLogRecord{
			ID:         id,
			UserID:     "local",
			Timestamp:  "2024-06-15T10:00:0" + string(rune('0'+i)) + "Z",
			EntityType: secondary.EntityAchievement,
			EntityID:   id,
			Action:     "create",
		}))
	}

	limited, err := logRepo.List(ctx, secondary.AchievementLogFilters{Limit: 2})
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, "c", limited[0].ID, "newest first")

	byEntity, err := logRepo.List(ctx, secondary.AchievementLogFilters{EntityID: "b"})
	require.NoError(t, err)
	require.Len(t, byEntity, 1)
	assert.Equal(t, "b", byEntity[0].EntityID)
}
