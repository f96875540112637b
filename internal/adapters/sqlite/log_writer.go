package sqlite

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/example/milestone/internal/ctxutil"
	"github.com/example/milestone/internal/ports/secondary"
)

// LogWriterAdapter implements secondary.LogWriter using AchievementLogRepository.
type LogWriterAdapter struct {
	logRepo secondary.AchievementLogRepository
	now     func() time.Time
}

// NewLogWriterAdapter creates a new LogWriterAdapter.
func NewLogWriterAdapter(logRepo secondary.AchievementLogRepository) *LogWriterAdapter {
	return &LogWriterAdapter{logRepo: logRepo, now: time.Now}
}

// LogCreate logs a create operation for an entity.
func (w *LogWriterAdapter) LogCreate(ctx context.Context, entityType, entityID string) error {
	return w.writeLog(ctx, entityType, entityID, "create", "", "", "")
}

// LogUpdate logs an update operation for an entity field.
func (w *LogWriterAdapter) LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error {
	return w.writeLog(ctx, entityType, entityID, "update", fieldName, oldValue, newValue)
}

// LogDelete logs a delete operation for an entity.
func (w *LogWriterAdapter) LogDelete(ctx context.Context, entityType, entityID string) error {
	return w.writeLog(ctx, entityType, entityID, "delete", "", "", "")
}

// writeLog writes a log entry with common logic.
func (w *LogWriterAdapter) writeLog(ctx context.Context, entityType, entityID, action, fieldName, oldValue, newValue string) error {
	record := &secondary.AchievementLogRecord{
		ID:         uuid.NewString(),
		UserID:     ctxutil.UserFromContext(ctx),
		Timestamp:  w.now().UTC().Format(time.RFC3339Nano),
		EntityType: entityType,
		EntityID:   entityID,
		Action:     action,
		FieldName:  fieldName,
		OldValue:   oldValue,
		NewValue:   newValue,
	}
	return w.logRepo.Create(ctx, record)
}

// Ensure LogWriterAdapter implements the interface
var _ secondary.LogWriter = (*LogWriterAdapter)(nil)
