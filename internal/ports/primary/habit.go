package primary

import "context"

// HabitService defines the primary port for habit operations. Every
// mutating call runs an evaluation cycle with the matching trigger.
type HabitService interface {
	// CreateHabit creates a new habit.
	CreateHabit(ctx context.Context, req CreateHabitRequest) (*HabitResponse, error)

	// CompleteHabit records a completion.
	CompleteHabit(ctx context.Context, req CompleteHabitRequest) (*HabitResponse, error)

	// ArchiveHabit archives a habit.
	ArchiveHabit(ctx context.Context, habitID string) (*HabitResponse, error)

	// CustomizeHabit changes a habit's name, icon or color.
	CustomizeHabit(ctx context.Context, req CustomizeHabitRequest) (*HabitResponse, error)

	// ListHabits lists habits with their streaks.
	ListHabits(ctx context.Context, filters HabitFilters) ([]*Habit, error)
}

// CreateHabitRequest contains parameters for creating a habit.
type CreateHabitRequest struct {
	Name  string
	Icon  string // Optional
	Color string // Optional
}

// CompleteHabitRequest contains parameters for completing a habit.
type CompleteHabitRequest struct {
	HabitID string
	Date    string // Optional YYYY-MM-DD, defaults to today
	Time    string // Optional HH:MM, defaults to now
}

// CustomizeHabitRequest contains parameters for customizing a habit.
// Empty fields are left unchanged.
type CustomizeHabitRequest struct {
	HabitID string
	Name    string
	Icon    string
	Color   string
}

// HabitResponse contains the result of a habit mutation.
type HabitResponse struct {
	Habit         *Habit
	NewlyUnlocked []string
	Warnings      []string
}

// Habit represents a habit at the port boundary.
type Habit struct {
	ID               string
	Name             string
	Icon             string
	Color            string
	Archived         bool
	CreatedAt        string
	CurrentStreak    int
	LongestStreak    int
	TotalCompletions int
}

// HabitFilters contains filter options for listing habits.
type HabitFilters struct {
	IncludeArchived bool
}
