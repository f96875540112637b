// Package habit contains the pure business logic for habit operations.
// Guards are pure functions that evaluate preconditions without side effects.
package habit

import (
	"fmt"
	"strings"
)

// MaxNameLength bounds habit names.
const MaxNameLength = 80

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string
}

// Error converts the guard result to an error if not allowed.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// CreateHabitContext provides context for habit creation guards.
type CreateHabitContext struct {
	Name          string
	NameTakenByID string // id of an active habit already using Name, empty if none
}

// CompleteHabitContext provides context for completion guards.
type CompleteHabitContext struct {
	HabitID  string
	Exists   bool
	Archived bool
	Date     string // YYYY-MM-DD
	Today    string // YYYY-MM-DD
}

// ArchiveHabitContext provides context for archive guards.
type ArchiveHabitContext struct {
	HabitID  string
	Exists   bool
	Archived bool
}

// CustomizeHabitContext provides context for customization guards.
type CustomizeHabitContext struct {
	HabitID  string
	Exists   bool
	Archived bool
	Name     string
	Icon     string
	Color    string
}

// CanCreateHabit evaluates whether a habit can be created.
// Rules:
// - Name must be non-blank and at most MaxNameLength characters
// - No other active habit may use the same name
func CanCreateHabit(ctx CreateHabitContext) GuardResult {
	if r := checkName(ctx.Name); !r.Allowed {
		return r
	}
	if ctx.NameTakenByID != "" {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("habit %q already exists (%s)", strings.TrimSpace(ctx.Name), ctx.NameTakenByID),
		}
	}
	return GuardResult{Allowed: true}
}

// CanCompleteHabit evaluates whether a completion can be recorded.
// Rules:
// - Habit must exist and not be archived
// - Date must not be in the future
func CanCompleteHabit(ctx CompleteHabitContext) GuardResult {
	if r := checkActive(ctx.HabitID, ctx.Exists, ctx.Archived, "complete"); !r.Allowed {
		return r
	}
	if ctx.Date > ctx.Today {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("cannot complete habit %s on %s: date is in the future", ctx.HabitID, ctx.Date),
		}
	}
	return GuardResult{Allowed: true}
}

// CanArchiveHabit evaluates whether a habit can be archived.
func CanArchiveHabit(ctx ArchiveHabitContext) GuardResult {
	if !ctx.Exists {
		return GuardResult{Allowed: false, Reason: fmt.Sprintf("habit %s not found", ctx.HabitID)}
	}
	if ctx.Archived {
		return GuardResult{Allowed: false, Reason: fmt.Sprintf("habit %s is already archived", ctx.HabitID)}
	}
	return GuardResult{Allowed: true}
}

// CanCustomizeHabit evaluates whether a customization can be applied.
// Rules:
// - Habit must exist and not be archived
// - At least one of name, icon or color must be given
// - A new name must pass the same checks as creation
func CanCustomizeHabit(ctx CustomizeHabitContext) GuardResult {
	if r := checkActive(ctx.HabitID, ctx.Exists, ctx.Archived, "customize"); !r.Allowed {
		return r
	}
	if ctx.Name == "" && ctx.Icon == "" && ctx.Color == "" {
		return GuardResult{Allowed: false, Reason: "nothing to customize: set a name, icon or color"}
	}
	if ctx.Name != "" {
		return checkName(ctx.Name)
	}
	return GuardResult{Allowed: true}
}

func checkActive(id string, exists, archived bool, verb string) GuardResult {
	if !exists {
		return GuardResult{Allowed: false, Reason: fmt.Sprintf("habit %s not found", id)}
	}
	if archived {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("cannot %s archived habit %s", verb, id),
		}
	}
	return GuardResult{Allowed: true}
}

func checkName(name string) GuardResult {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return GuardResult{Allowed: false, Reason: "habit name cannot be empty"}
	}
	if len([]rune(trimmed)) > MaxNameLength {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("habit name is too long (%d characters, max %d)", len([]rune(trimmed)), MaxNameLength),
		}
	}
	return GuardResult{Allowed: true}
}
