package secondary

import "context"

// HabitRepository defines the secondary port for habit writes and lookups.
type HabitRepository interface {
	// Create persists a new habit.
	Create(ctx context.Context, habit *HabitRecord) error

	// GetByID retrieves a habit. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id string) (*HabitRecord, error)

	// FindActiveByName returns the id of an active habit with the given name,
	// or an empty string.
	FindActiveByName(ctx context.Context, name string) (string, error)

	// Archive marks a habit archived.
	Archive(ctx context.Context, id, archivedAt string) error

	// AddCompletion records one completion.
	AddCompletion(ctx context.Context, completion *CompletionRecord) error

	// Customize applies the non-empty fields of the customization to the habit
	// and records the customization.
	Customize(ctx context.Context, customization *CustomizationRecord) error
}

// HabitFactsReader defines the read-only secondary port the condition
// evaluator pulls habit history through.
type HabitFactsReader interface {
	// ListHabits retrieves every habit, archived ones included, with streaks
	// computed relative to today (YYYY-MM-DD).
	ListHabits(ctx context.Context, today string) ([]*HabitRecord, error)

	// ListDayRecords aggregates completions per habit per day. An empty
	// habitID means all habits.
	ListDayRecords(ctx context.Context, habitID string) ([]*DayRecord, error)

	// CountCustomizations returns the number of customizations ever made.
	CountCustomizations(ctx context.Context) (int, error)

	// OldestHabitCreatedAt returns the creation time of the oldest habit,
	// or an empty string if there are none.
	OldestHabitCreatedAt(ctx context.Context) (string, error)
}

// HabitRecord represents a habit as stored in persistence.
type HabitRecord struct {
	ID               string
	Name             string
	Icon             string
	Color            string
	Archived         bool
	CreatedAt        string
	ArchivedAt       string
	CurrentStreak    int // computed
	LongestStreak    int // computed
	TotalCompletions int // computed
}

// CompletionRecord represents one habit completion.
type CompletionRecord struct {
	ID          string
	HabitID     string
	Date        string // YYYY-MM-DD
	Time        string // HH:MM
	CompletedAt string
}

// DayRecord aggregates one habit's completions on one day.
type DayRecord struct {
	HabitID string
	Date    string
	Count   int
	FirstAt string
	LastAt  string
}

// CustomizationRecord represents one customization of a habit.
type CustomizationRecord struct {
	ID        string
	HabitID   string
	Name      string
	Icon      string
	Color     string
	CreatedAt string
}
