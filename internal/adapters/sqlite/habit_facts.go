package sqlite

import (
	"context"
	"fmt"

	"github.com/example/milestone/internal/ctxutil"
	"github.com/example/milestone/internal/ports/secondary"
)

// ListHabits retrieves every habit with streaks computed relative to today.
func (r *HabitRepository) ListHabits(ctx context.Context, today string) ([]*secondary.HabitRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT "+habitSelectCols+" FROM habits WHERE user_id = ? ORDER BY created_at, id",
		ctxutil.UserFromContext(ctx),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list habits: %w", err)
	}

	var habits []*secondary.HabitRecord
	for rows.Next() {
		record, err := scanHabit(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan habit: %w", err)
		}
		habits = append(habits, record)
	}
	if err := rows.Close(); err != nil {
		return nil, err
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Completions are read after the habit cursor is closed so a
	// single-connection pool does not deadlock.
	for _, h := range habits {
		dates, err := r.completionDates(ctx, h.ID)
		if err != nil {
			return nil, err
		}
		fillStats(h, dates, today)
	}
	return habits, nil
}

// ListDayRecords aggregates completions per habit per day.
func (r *HabitRepository) ListDayRecords(ctx context.Context, habitID string) ([]*secondary.DayRecord, error) {
	query := `SELECT c.habit_id, c.completed_date, COUNT(*), MIN(c.completed_time), MAX(c.completed_time)
		FROM habit_completions c
		JOIN habits h ON h.id = c.habit_id
		WHERE h.user_id = ?`
	args := []any{ctxutil.UserFromContext(ctx)}

	if habitID != "" {
		query += " AND c.habit_id = ?"
		args = append(args, habitID)
	}
	query += " GROUP BY c.habit_id, c.completed_date ORDER BY c.completed_date, c.habit_id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list day records: %w", err)
	}
	defer rows.Close()

	var records []*secondary.DayRecord
	for rows.Next() {
		d := &secondary.DayRecord{}
		if err := rows.Scan(&d.HabitID, &d.Date, &d.Count, &d.FirstAt, &d.LastAt); err != nil {
			return nil, fmt.Errorf("failed to scan day record: %w", err)
		}
		records = append(records, d)
	}
	return records, rows.Err()
}

// CountCustomizations returns the number of customizations ever made.
func (r *HabitRepository) CountCustomizations(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM habit_customizations c JOIN habits h ON h.id = c.habit_id WHERE h.user_id = ?`,
		ctxutil.UserFromContext(ctx),
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("failed to count customizations: %w", err)
	}
	return n, nil
}

// OldestHabitCreatedAt returns the creation time of the oldest habit.
func (r *HabitRepository) OldestHabitCreatedAt(ctx context.Context) (string, error) {
	var oldest *string
	err := r.db.QueryRowContext(ctx,
		"SELECT MIN(created_at) FROM habits WHERE user_id = ?",
		ctxutil.UserFromContext(ctx),
	).Scan(&oldest)
	if err != nil {
		return "", fmt.Errorf("failed to find oldest habit: %w", err)
	}
	if oldest == nil {
		return "", nil
	}
	return *oldest, nil
}

// Ensure HabitRepository implements the interface
var _ secondary.HabitFactsReader = (*HabitRepository)(nil)
