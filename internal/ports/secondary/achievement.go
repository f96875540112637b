// Package secondary defines the secondary ports (driven adapters) for the application.
// These are the interfaces through which the engine reaches storage.
package secondary

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyUnlocked is returned when an unlock targets an id that is
	// already unlocked for the user.
	ErrAlreadyUnlocked = errors.New("achievement already unlocked")
)

// All repositories scope their reads and writes to the user carried by ctx
// (see ctxutil.UserFromContext).

// UnlockRepository defines the secondary port for unlocked achievements.
type UnlockRepository interface {
	// Unlock stores the record and removes any progress for the same id in one
	// transaction. Returns ErrAlreadyUnlocked if the id is already unlocked.
	Unlock(ctx context.Context, record *UnlockRecord) error

	// GetByID retrieves an unlock record. Returns ErrNotFound if locked.
	GetByID(ctx context.Context, achievementID string) (*UnlockRecord, error)

	// List retrieves all unlock records in unlock order.
	List(ctx context.Context) ([]*UnlockRecord, error)

	// MarkViewed sets the viewed flag. Returns ErrNotFound if locked.
	MarkViewed(ctx context.Context, achievementID string) error
}

// UnlockRecord represents an unlocked achievement as stored in persistence.
type UnlockRecord struct {
	AchievementID string
	UnlockedAt    string
	TriggerTaskID string // Optional
	Metadata      map[string]string
	Viewed        bool
}

// ProgressRepository defines the secondary port for partial progress.
type ProgressRepository interface {
	// Upsert creates or replaces the progress record for an achievement.
	Upsert(ctx context.Context, record *ProgressRecord) error

	// GetByID retrieves a progress record. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, achievementID string) (*ProgressRecord, error)

	// List retrieves all progress records.
	List(ctx context.Context) ([]*ProgressRecord, error)

	// Delete removes a progress record. Deleting a missing record is not an error.
	Delete(ctx context.Context, achievementID string) error
}

// ProgressRecord represents partial progress as stored in persistence.
type ProgressRecord struct {
	AchievementID string
	Current       int
	Target        int
	Percentage    int
	LastUpdatedAt string
}

// GridRepository defines the secondary port for grid layouts.
type GridRepository interface {
	// CreateIfAbsent saves the layout unless the user already has one.
	// Reports whether this call wrote it.
	CreateIfAbsent(ctx context.Context, record *GridRecord) (bool, error)

	// Get retrieves the user's layout. Returns ErrNotFound if none exists.
	Get(ctx context.Context) (*GridRecord, error)

	// Replace overwrites the user's layout.
	Replace(ctx context.Context, record *GridRecord) error

	// Delete removes the user's layout.
	Delete(ctx context.Context) error
}

// GridRecord represents a grid layout as stored in persistence.
type GridRecord struct {
	Seed      string
	Version   int
	Size      int
	Positions []GridPositionRecord
	CreatedAt string
}

// GridPositionRecord binds an achievement id to a cell.
type GridPositionRecord struct {
	AchievementID string `json:"id"`
	Row           int    `json:"row"`
	Col           int    `json:"col"`
}
