// Package condition evaluates achievement conditions against a read-only view
// of the user's habit history. Evaluation is pure apart from the Facts reads.
package condition

import (
	"errors"
	"time"
)

// ErrUnsupportedCondition is returned for a condition type with no evaluator.
var ErrUnsupportedCondition = errors.New("unsupported condition type")

// Habit is the evaluator's view of a tracked habit.
type Habit struct {
	ID               string
	Name             string
	CreatedAt        time.Time
	Archived         bool
	CurrentStreak    int
	TotalCompletions int
}

// DayRecord summarizes one habit's completions on one calendar day.
type DayRecord struct {
	TaskID  string
	Date    string // YYYY-MM-DD
	Count   int
	FirstAt string // HH:MM of the earliest completion that day
	LastAt  string // HH:MM of the latest completion that day
}

// Facts is the pull-based read interface into habit data.
// Implementations must not be mutated by evaluation.
type Facts interface {
	// Habits returns every habit, archived ones included.
	Habits() ([]Habit, error)
	// DayRecords returns per-day records for taskID, or for all habits when taskID is empty.
	DayRecords(taskID string) ([]DayRecord, error)
	// Customizations returns how many times any habit has been customized.
	Customizations() (int, error)
}

// Progress is partial progress toward a count-based condition.
type Progress struct {
	Current int
	Target  int
}

// Result is the outcome of evaluating one condition.
type Result struct {
	Satisfied bool
	Progress  *Progress
	Metadata  map[string]string
}

func progressResult(current, target int) Result {
	return Result{
		Satisfied: current >= target,
		Progress:  &Progress{Current: current, Target: target},
	}
}
