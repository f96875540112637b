package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/example/milestone/internal/ctxutil"
	"github.com/example/milestone/internal/ports/secondary"
)

// AchievementLogRepository implements secondary.AchievementLogRepository with SQLite.
type AchievementLogRepository struct {
	db *sql.DB
}

// NewAchievementLogRepository creates a new SQLite achievement log repository.
func NewAchievementLogRepository(db *sql.DB) *AchievementLogRepository {
	return &AchievementLogRepository{db: db}
}

// Create persists a new log entry.
func (r *AchievementLogRepository) Create(ctx context.Context, log *secondary.AchievementLogRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO achievement_log (id, user_id, timestamp, entity_type, entity_id, action, field_name, old_value, new_value) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		log.ID,
		log.UserID,
		log.Timestamp,
		log.EntityType,
		log.EntityID,
		log.Action,
		nullable(log.FieldName),
		nullable(log.OldValue),
		nullable(log.NewValue),
	)
	if err != nil {
		return fmt.Errorf("failed to create achievement log: %w", err)
	}
	return nil
}

// List retrieves log entries for the context user matching the given filters.
func (r *AchievementLogRepository) List(ctx context.Context, filters secondary.AchievementLogFilters) ([]*secondary.AchievementLogRecord, error) {
	query := `SELECT id, user_id, timestamp, entity_type, entity_id, action, field_name, old_value, new_value FROM achievement_log WHERE user_id = ?`
	args := []any{ctxutil.UserFromContext(ctx)}

	if filters.EntityType != "" {
		query += " AND entity_type = ?"
		args = append(args, filters.EntityType)
	}

	if filters.EntityID != "" {
		query += " AND entity_id = ?"
		args = append(args, filters.EntityID)
	}

	if filters.Action != "" {
		query += " AND action = ?"
		args = append(args, filters.Action)
	}

	query += " ORDER BY timestamp DESC, rowid DESC"

	if filters.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, filters.Limit)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list achievement logs: %w", err)
	}
	defer rows.Close()

	var logs []*secondary.AchievementLogRecord
	for rows.Next() {
		var fieldName, oldValue, newValue sql.NullString
		record := &secondary.AchievementLogRecord{}
		if err := rows.Scan(&record.ID, &record.UserID, &record.Timestamp, &record.EntityType, &record.EntityID,
			&record.Action, &fieldName, &oldValue, &newValue); err != nil {
			return nil, fmt.Errorf("failed to scan achievement log: %w", err)
		}
		record.FieldName = fieldName.String
		record.OldValue = oldValue.String
		record.NewValue = newValue.String
		logs = append(logs, record)
	}
	return logs, rows.Err()
}

// Ensure AchievementLogRepository implements the interface
var _ secondary.AchievementLogRepository = (*AchievementLogRepository)(nil)
