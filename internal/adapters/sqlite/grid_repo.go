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

// GridRepository implements secondary.GridRepository with SQLite.
// Positions are stored as a JSON array on the grid row.
type GridRepository struct {
	db *sql.DB
}

// NewGridRepository creates a new SQLite grid repository.
func NewGridRepository(db *sql.DB) *GridRepository {
	return &GridRepository{db: db}
}

// CreateIfAbsent saves the layout unless the user already has one.
func (r *GridRepository) CreateIfAbsent(ctx context.Context, record *secondary.GridRecord) (bool, error) {
	positions, err := json.Marshal(record.Positions)
	if err != nil {
		return false, fmt.Errorf("failed to encode grid positions: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO achievement_grid (user_id, seed, version, size, positions, created_at) VALUES (?, ?, ?, ?, ?, ?)`,
		ctxutil.UserFromContext(ctx), record.Seed, record.Version, record.Size, string(positions), record.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to create grid: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to create grid: %w", err)
	}
	return n == 1, nil
}

// Get retrieves the user's layout.
func (r *GridRepository) Get(ctx context.Context) (*secondary.GridRecord, error) {
	var positions string
	record := &secondary.GridRecord{}
	err := r.db.QueryRowContext(ctx,
		"SELECT seed, version, size, positions, created_at FROM achievement_grid WHERE user_id = ?",
		ctxutil.UserFromContext(ctx),
	).Scan(&record.Seed, &record.Version, &record.Size, &positions, &record.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("grid: %w", secondary.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get grid: %w", err)
	}
	if err := json.Unmarshal([]byte(positions), &record.Positions); err != nil {
		return nil, fmt.Errorf("failed to decode grid positions: %w", err)
	}
	return record, nil
}

// Replace overwrites the user's layout.
func (r *GridRepository) Replace(ctx context.Context, record *secondary.GridRecord) error {
	positions, err := json.Marshal(record.Positions)
	if err != nil {
		return fmt.Errorf("failed to encode grid positions: %w", err)
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO achievement_grid (user_id, seed, version, size, positions, created_at) VALUES (?, ?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
			seed = excluded.seed,
			version = excluded.version,
			size = excluded.size,
			positions = excluded.positions,
			created_at = excluded.created_at`,
		ctxutil.UserFromContext(ctx), record.Seed, record.Version, record.Size, string(positions), record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to replace grid: %w", err)
	}
	return nil
}

// Delete removes the user's layout.
func (r *GridRepository) Delete(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM achievement_grid WHERE user_id = ?", ctxutil.UserFromContext(ctx)); err != nil {
		return fmt.Errorf("failed to delete grid: %w", err)
	}
	return nil
}

// Ensure GridRepository implements the interface
var _ secondary.GridRepository = (*GridRepository)(nil)
