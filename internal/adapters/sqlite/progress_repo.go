package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/milestone/internal/ctxutil"
	"github.com/example/milestone/internal/ports/secondary"
)

// ProgressRepository implements secondary.ProgressRepository with SQLite.
type ProgressRepository struct {
	db *sql.DB
}

// NewProgressRepository creates a new SQLite progress repository.
func NewProgressRepository(db *sql.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

const progressSelectCols = "achievement_id, current_value, target_value, percentage, last_updated_at"

// Upsert creates or replaces the progress record for an achievement.
func (r *ProgressRepository) Upsert(ctx context.Context, record *secondary.ProgressRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO achievement_progress (user_id, achievement_id, current_value, target_value, percentage, last_updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id, achievement_id) DO UPDATE SET
			current_value = excluded.current_value,
			target_value = excluded.target_value,
			percentage = excluded.percentage,
			last_updated_at = excluded.last_updated_at`,
		ctxutil.UserFromContext(ctx), record.AchievementID, record.Current, record.Target, record.Percentage, record.LastUpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert progress: %w", err)
	}
	return nil
}

// GetByID retrieves a progress record.
func (r *ProgressRepository) GetByID(ctx context.Context, achievementID string) (*secondary.ProgressRecord, error) {
	record := &secondary.ProgressRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT "+progressSelectCols+" FROM achievement_progress WHERE user_id = ? AND achievement_id = ?",
		ctxutil.UserFromContext(ctx), achievementID,
	).Scan(&record.AchievementID, &record.Current, &record.Target, &record.Percentage, &record.LastUpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("progress for %s: %w", achievementID, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get progress: %w", err)
	}
	return record, nil
}

// List retrieves all progress records.
func (r *ProgressRepository) List(ctx context.Context) ([]*secondary.ProgressRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+progressSelectCols+" FROM achievement_progress WHERE user_id = ? ORDER BY achievement_id",
		ctxutil.UserFromContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list progress: %w", err)
	}
	defer rows.Close()

	var records []*secondary.ProgressRecord
	for rows.Next() {
		record := &secondary.ProgressRecord{}
		if err := rows.Scan(&record.AchievementID, &record.Current, &record.Target, &record.Percentage, &record.LastUpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan progress: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// Delete removes a progress record.
func (r *ProgressRepository) Delete(ctx context.Context, achievementID string) error {
	_, err := r.db.ExecContext(ctx,
		"DELETE FROM achievement_progress WHERE user_id = ? AND achievement_id = ?",
		ctxutil.UserFromContext(ctx), achievementID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete progress: %w", err)
	}
	return nil
}

// Ensure ProgressRepository implements the interface
var _ secondary.ProgressRepository = (*ProgressRepository)(nil)
