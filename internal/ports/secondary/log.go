package secondary

import "context"

// LogWriter defines the interface for writing audit log entries.
// Implementations extract the user from context.
type LogWriter interface {
	// LogCreate logs a create operation for an entity.
	LogCreate(ctx context.Context, entityType, entityID string) error

	// LogUpdate logs an update operation for an entity field.
	// fieldName, oldValue, newValue describe what changed.
	LogUpdate(ctx context.Context, entityType, entityID, fieldName, oldValue, newValue string) error

	// LogDelete logs a delete operation for an entity.
	LogDelete(ctx context.Context, entityType, entityID string) error
}

// Entity types written to the audit log.
const (
	EntityAchievement = "achievement"
	EntityProgress    = "progress"
	EntityGrid        = "grid"
	EntityHabit       = "habit"
)

// AchievementLogRepository defines the secondary port for audit log persistence.
type AchievementLogRepository interface {
	// Create persists a new log entry.
	Create(ctx context.Context, log *AchievementLogRecord) error

	// List retrieves log entries matching the given filters, newest first.
	List(ctx context.Context, filters AchievementLogFilters) ([]*AchievementLogRecord, error)
}

// AchievementLogRecord represents an audit log entry as stored in persistence.
type AchievementLogRecord struct {
	ID         string
	UserID     string
	Timestamp  string
	EntityType string
	EntityID   string
	Action     string // create, update, delete
	FieldName  string
	OldValue   string
	NewValue   string
}

// AchievementLogFilters contains filter options for querying log entries.
type AchievementLogFilters struct {
	EntityType string
	EntityID   string
	Action     string
	Limit      int
}
