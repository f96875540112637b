// Package sqlite contains SQLite implementations of repository interfaces.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/example/milestone/internal/ctxutil"
	"github.com/example/milestone/internal/ports/secondary"
)

// UnlockRepository implements secondary.UnlockRepository with SQLite.
type UnlockRepository struct {
	db *sql.DB
}

// NewUnlockRepository creates a new SQLite unlock repository.
func NewUnlockRepository(db *sql.DB) *UnlockRepository {
	return &UnlockRepository{db: db}
}

const unlockSelectCols = "achievement_id, unlocked_at, trigger_task_id, metadata, viewed"

// scanUnlock scans an unlocked_achievements row into an UnlockRecord.
func scanUnlock(scanner interface {
	Scan(dest ...any) error
}) (*secondary.UnlockRecord, error) {
	var (
		triggerTaskID sql.NullString
		metadata      sql.NullString
		viewed        bool
	)

	record := &secondary.UnlockRecord{}
	if err := scanner.Scan(&record.AchievementID, &record.UnlockedAt, &triggerTaskID, &metadata, &viewed); err != nil {
		return nil, err
	}
	record.TriggerTaskID = triggerTaskID.String
	record.Viewed = viewed

	if metadata.Valid && metadata.String != "" {
		if err := json.Unmarshal([]byte(metadata.String), &record.Metadata); err != nil {
			return nil, fmt.Errorf("failed to decode metadata for %s: %w", record.AchievementID, err)
		}
	}
	return record, nil
}

// Unlock stores the record and removes any progress for the same id in one transaction.
func (r *UnlockRepository) Unlock(ctx context.Context, record *secondary.UnlockRecord) error {
	userID := ctxutil.UserFromContext(ctx)

	var triggerTaskID, metadata sql.NullString
	if record.TriggerTaskID != "" {
		triggerTaskID = sql.NullString{String: record.TriggerTaskID, Valid: true}
	}
	if len(record.Metadata) > 0 {
		raw, err := json.Marshal(record.Metadata)
		if err != nil {
			return fmt.Errorf("failed to encode metadata: %w", err)
		}
		metadata = sql.NullString{String: string(raw), Valid: true}
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin unlock transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`INSERT OR IGNORE INTO unlocked_achievements (user_id, achievement_id, unlocked_at, trigger_task_id, metadata, viewed) VALUES (?, ?, ?, ?, ?, 0)`,
		userID, record.AchievementID, record.UnlockedAt, triggerTaskID, metadata,
	)
	if err != nil {
		return fmt.Errorf("failed to unlock achievement: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to unlock achievement: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("achievement %s: %w", record.AchievementID, secondary.ErrAlreadyUnlocked)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM achievement_progress WHERE user_id = ? AND achievement_id = ?`,
		userID, record.AchievementID,
	); err != nil {
		return fmt.Errorf("failed to clear progress: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit unlock: %w", err)
	}
	return nil
}

// GetByID retrieves an unlock record.
func (r *UnlockRepository) GetByID(ctx context.Context, achievementID string) (*secondary.UnlockRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+unlockSelectCols+" FROM unlocked_achievements WHERE user_id = ? AND achievement_id = ?",
		ctxutil.UserFromContext(ctx), achievementID,
	)
	record, err := scanUnlock(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("achievement %s not unlocked: %w", achievementID, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get unlock: %w", err)
	}
	return record, nil
}

// List retrieves all unlock records in unlock order.
func (r *UnlockRepository) List(ctx context.Context) ([]*secondary.UnlockRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+unlockSelectCols+" FROM unlocked_achievements WHERE user_id = ? ORDER BY unlocked_at, rowid",
		ctxutil.UserFromContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list unlocks: %w", err)
	}
	defer rows.Close()

	var records []*secondary.UnlockRecord
	for rows.Next() {
		record, err := scanUnlock(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan unlock: %w", err)
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

// MarkViewed sets the viewed flag.
func (r *UnlockRepository) MarkViewed(ctx context.Context, achievementID string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE unlocked_achievements SET viewed = 1 WHERE user_id = ? AND achievement_id = ?",
		ctxutil.UserFromContext(ctx), achievementID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark viewed: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to mark viewed: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("achievement %s not unlocked: %w", achievementID, secondary.ErrNotFound)
	}
	return nil
}

// Ensure UnlockRepository implements the interface
var _ secondary.UnlockRepository = (*UnlockRepository)(nil)
