package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/example/milestone/internal/core/habit"
	"github.com/example/milestone/internal/ctxutil"
	"github.com/example/milestone/internal/ports/secondary"
)

// HabitRepository implements secondary.HabitRepository and
// secondary.HabitFactsReader with SQLite.
type HabitRepository struct {
	db *sql.DB
}

// NewHabitRepository creates a new SQLite habit repository.
func NewHabitRepository(db *sql.DB) *HabitRepository {
	return &HabitRepository{db: db}
}

const habitSelectCols = "id, name, icon, color, archived, created_at, archived_at"

// scanHabit scans a habit row into a HabitRecord. Computed fields are left zero.
func scanHabit(scanner interface {
	Scan(dest ...any) error
}) (*secondary.HabitRecord, error) {
	var (
		icon       sql.NullString
		color      sql.NullString
		archivedAt sql.NullString
		archived   bool
	)

	record := &secondary.HabitRecord{}
	if err := scanner.Scan(&record.ID, &record.Name, &icon, &color, &archived, &record.CreatedAt, &archivedAt); err != nil {
		return nil, err
	}
	record.Icon = icon.String
	record.Color = color.String
	record.Archived = archived
	record.ArchivedAt = archivedAt.String
	return record, nil
}

func nullable(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

// Create persists a new habit.
func (r *HabitRepository) Create(ctx context.Context, h *secondary.HabitRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO habits (id, user_id, name, icon, color, archived, created_at) VALUES (?, ?, ?, ?, ?, 0, ?)`,
		h.ID, ctxutil.UserFromContext(ctx), h.Name, nullable(h.Icon), nullable(h.Color), h.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create habit: %w", err)
	}
	return nil
}

// GetByID retrieves a habit. Computed fields are left zero.
func (r *HabitRepository) GetByID(ctx context.Context, id string) (*secondary.HabitRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT "+habitSelectCols+" FROM habits WHERE id = ? AND user_id = ?",
		id, ctxutil.UserFromContext(ctx),
	)
	record, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("habit %s: %w", id, secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get habit: %w", err)
	}
	return record, nil
}

// FindActiveByName returns the id of an active habit with the given name.
func (r *HabitRepository) FindActiveByName(ctx context.Context, name string) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx,
		"SELECT id FROM habits WHERE user_id = ? AND archived = 0 AND name = ? COLLATE NOCASE LIMIT 1",
		ctxutil.UserFromContext(ctx), name,
	).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to look up habit name: %w", err)
	}
	return id, nil
}

// Archive marks a habit archived.
func (r *HabitRepository) Archive(ctx context.Context, id, archivedAt string) error {
	result, err := r.db.ExecContext(ctx,
		"UPDATE habits SET archived = 1, archived_at = ? WHERE id = ? AND user_id = ?",
		archivedAt, id, ctxutil.UserFromContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to archive habit: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to archive habit: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("habit %s: %w", id, secondary.ErrNotFound)
	}
	return nil
}

// AddCompletion records one completion.
func (r *HabitRepository) AddCompletion(ctx context.Context, c *secondary.CompletionRecord) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO habit_completions (id, habit_id, completed_date, completed_time, completed_at) VALUES (?, ?, ?, ?, ?)`,
		c.ID, c.HabitID, c.Date, c.Time, c.CompletedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to record completion: %w", err)
	}
	return nil
}

// Customize applies the non-empty fields to the habit and records the change.
func (r *HabitRepository) Customize(ctx context.Context, c *secondary.CustomizationRecord) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin customization: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		`UPDATE habits SET
			name = COALESCE(?, name),
			icon = COALESCE(?, icon),
			color = COALESCE(?, color)
		 WHERE id = ? AND user_id = ?`,
		nullable(c.Name), nullable(c.Icon), nullable(c.Color), c.HabitID, ctxutil.UserFromContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to customize habit: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to customize habit: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("habit %s: %w", c.HabitID, secondary.ErrNotFound)
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO habit_customizations (id, habit_id, name, icon, color, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.HabitID, nullable(c.Name), nullable(c.Icon), nullable(c.Color), c.CreatedAt,
	); err != nil {
		return fmt.Errorf("failed to record customization: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit customization: %w", err)
	}
	return nil
}

// completionDates returns every completion date of a habit, one per completion.
func (r *HabitRepository) completionDates(ctx context.Context, habitID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT completed_date FROM habit_completions WHERE habit_id = ? ORDER BY completed_date",
		habitID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list completions: %w", err)
	}
	defer rows.Close()

	var dates []string
	for rows.Next() {
		var d string
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("failed to scan completion: %w", err)
		}
		dates = append(dates, d)
	}
	return dates, rows.Err()
}

func fillStats(record *secondary.HabitRecord, dates []string, today string) {
	record.TotalCompletions = len(dates)
	record.CurrentStreak = habit.CurrentStreak(dates, today)
	record.LongestStreak = habit.LongestStreak(dates)
}

// Ensure HabitRepository implements the interface
var _ secondary.HabitRepository = (*HabitRepository)(nil)
