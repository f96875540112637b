// Package primary defines the primary ports (driving adapters) for the application.
// These are the interfaces through which the CLI drives the achievement engine.
package primary

import (
	"context"

	"github.com/example/milestone/internal/core/achievement"
)

// AchievementService defines the primary port for achievement operations.
type AchievementService interface {
	// Evaluate runs one unlock cycle for the trigger and returns the ids
	// unlocked by it, in unlock order.
	Evaluate(ctx context.Context, ec achievement.EvaluationContext) (*EvaluateResponse, error)

	// ListAchievements lists the catalog with the user's unlock and progress state.
	// Hidden achievements are masked until unlocked.
	ListAchievements(ctx context.Context, filters AchievementFilters) ([]*Achievement, error)

	// GetAchievement retrieves one achievement with prerequisite details.
	GetAchievement(ctx context.Context, achievementID string) (*Achievement, error)

	// MarkViewed sets the viewed flag of an unlocked achievement.
	MarkViewed(ctx context.Context, achievementID string) error

	// GetOrCreateGrid returns the user's layout, creating it on first use.
	GetOrCreateGrid(ctx context.Context) (*GridLayout, error)

	// BuildGridState derives the renderable grid from layout, unlocks and progress.
	BuildGridState(ctx context.Context) (*GridState, error)

	// ResetGrid discards the layout and generates a new one from a fresh seed.
	ResetGrid(ctx context.Context) (*GridLayout, error)

	// UpgradeGrid regenerates the layout from the stored seed at the tier that
	// fits the current catalog. No-op when no upgrade is needed.
	UpgradeGrid(ctx context.Context) (*GridLayout, error)
}

// EvaluateResponse contains the result of one evaluation cycle.
type EvaluateResponse struct {
	NewlyUnlocked []string
	Warnings      []string
}

// AchievementFilters contains filter options for listing achievements.
type AchievementFilters struct {
	Category     string
	UnlockedOnly bool
	LockedOnly   bool
}

// Achievement represents an achievement at the port boundary.
type Achievement struct {
	ID            string
	Name          string
	Description   string
	Icon          string
	Rarity        string
	Category      string
	ConditionType string
	Hidden        bool
	Masked        bool // hidden and still locked; Name and Description are placeholders
	Prerequisites []string
	Missing       []string // prerequisites not yet unlocked
	Unlocked      bool
	UnlockedAt    string
	TriggerTaskID string
	Metadata      map[string]string
	Viewed        bool
	Progress      *AchievementProgress
}

// AchievementProgress is partial progress toward a locked achievement.
type AchievementProgress struct {
	Current       int
	Target        int
	Percentage    int
	LastUpdatedAt string
}

// GridLayout represents a persisted layout at the port boundary.
type GridLayout struct {
	Seed         string
	Version      int
	Size         int
	Placed       int
	CreatedAt    string
	NeedsUpgrade bool
	Created      bool // true when this call generated the layout
}

// GridState is the renderable grid.
type GridState struct {
	Layout *GridLayout
	Cells  [][]*GridCell
}

// GridCell represents one derived grid square.
type GridCell struct {
	Row         int
	Col         int
	State       string // locked, visible, unlocked
	Achievement *Achievement
}
