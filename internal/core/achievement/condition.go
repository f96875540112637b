package achievement

import (
	"fmt"
	"time"
)

// ConditionType tags a condition family.
type ConditionType string

const (
	TypeFirstAction            ConditionType = "first_action"
	TypeTaskCount              ConditionType = "task_count"
	TypeStreakDays             ConditionType = "streak_days"
	TypeTotalCompletions       ConditionType = "total_completions"
	TypeAllHabitsStreak        ConditionType = "all_habits_streak"
	TypePerfectWeek            ConditionType = "perfect_week"
	TypeEarlyCompletion        ConditionType = "early_completion"
	TypeEveningCompletion      ConditionType = "evening_completion"
	TypeDateSpecific           ConditionType = "date_specific"
	TypeAppAnniversary         ConditionType = "app_anniversary"
	TypeMultiHabitSameDay      ConditionType = "multi_habit_same_day"
	TypeMultiHabitStreak       ConditionType = "multi_habit_streak"
	TypeStreakRecovery         ConditionType = "streak_recovery"
	TypeWeekendStreak          ConditionType = "weekend_streak"
	TypeTotalHabitsCompletions ConditionType = "total_habits_completions"
)

// Condition is the sum type of all unlock conditions.
// The unexported method seals the set to this package.
type Condition interface {
	Type() ConditionType
	Validate() error
	sealed()
}

// Action is a user action that first_action conditions listen for.
type Action string

const (
	ActionCreateHabit    Action = "create_habit"
	ActionCompleteHabit  Action = "complete_habit"
	ActionCustomizeHabit Action = "customize_habit"
)

// TriggerAction maps a trigger to the action it represents, if any.
func TriggerAction(t Trigger) (Action, bool) {
	switch t {
	case TriggerHabitCreated:
		return ActionCreateHabit, true
	case TriggerHabitCompleted:
		return ActionCompleteHabit, true
	case TriggerHabitCustomized:
		return ActionCustomizeHabit, true
	}
	return "", false
}

// FirstAction unlocks the first time Action happens.
type FirstAction struct {
	Action Action
}

// TaskCount unlocks once Threshold non-archived habits exist.
type TaskCount struct {
	Threshold int
}

// StreakDays unlocks once any single habit's current streak reaches Threshold.
type StreakDays struct {
	Threshold int
}

// TotalCompletions unlocks once a single habit has Threshold lifetime completions.
type TotalCompletions struct {
	Threshold int
}

// AllHabitsStreak unlocks once every active habit was completed on each of the last Days days.
type AllHabitsStreak struct {
	Days int
}

// PerfectWeek is AllHabitsStreak over Weeks*7 days.
type PerfectWeek struct {
	Weeks int
}

// EarlyCompletion unlocks after Days consecutive days with a completion strictly before Before (HH:MM).
type EarlyCompletion struct {
	Before string
	Days   int
}

// EveningCompletion unlocks after Days consecutive days with a completion strictly after After (HH:MM).
type EveningCompletion struct {
	After string
	Days  int
}

// DateSpecific unlocks when evaluated on the calendar day MonthDay (MM-DD), any year.
type DateSpecific struct {
	MonthDay string
}

// AppAnniversary unlocks Years full years after the oldest habit was created.
type AppAnniversary struct {
	Years int
}

// MultiHabitSameDay unlocks when Habits distinct habits were completed on one day.
type MultiHabitSameDay struct {
	Habits int
}

// MultiHabitStreak unlocks after Days consecutive days each with at least Habits distinct completions.
type MultiHabitStreak struct {
	Habits int
	Days   int
}

// StreakRecovery unlocks when a habit rebuilds a Threshold-day streak after losing one of at least MinLostStreak days.
type StreakRecovery struct {
	MinLostStreak int
	Threshold     int
}

// WeekendStreak unlocks after Weekends consecutive weekends with both Saturday and Sunday completed.
type WeekendStreak struct {
	Weekends int
}

// TotalHabitsCompletions unlocks once completions summed across all habits reach Threshold.
type TotalHabitsCompletions struct {
	Threshold int
}

func (FirstAction) Type() ConditionType            { return TypeFirstAction }
func (TaskCount) Type() ConditionType              { return TypeTaskCount }
func (StreakDays) Type() ConditionType             { return TypeStreakDays }
func (TotalCompletions) Type() ConditionType       { return TypeTotalCompletions }
func (AllHabitsStreak) Type() ConditionType        { return TypeAllHabitsStreak }
func (PerfectWeek) Type() ConditionType            { return TypePerfectWeek }
func (EarlyCompletion) Type() ConditionType        { return TypeEarlyCompletion }
func (EveningCompletion) Type() ConditionType      { return TypeEveningCompletion }
func (DateSpecific) Type() ConditionType           { return TypeDateSpecific }
func (AppAnniversary) Type() ConditionType         { return TypeAppAnniversary }
func (MultiHabitSameDay) Type() ConditionType      { return TypeMultiHabitSameDay }
func (MultiHabitStreak) Type() ConditionType       { return TypeMultiHabitStreak }
func (StreakRecovery) Type() ConditionType         { return TypeStreakRecovery }
func (WeekendStreak) Type() ConditionType          { return TypeWeekendStreak }
func (TotalHabitsCompletions) Type() ConditionType { return TypeTotalHabitsCompletions }

func (FirstAction) sealed()            {}
func (TaskCount) sealed()              {}
func (StreakDays) sealed()             {}
func (TotalCompletions) sealed()       {}
func (AllHabitsStreak) sealed()        {}
func (PerfectWeek) sealed()            {}
func (EarlyCompletion) sealed()        {}
func (EveningCompletion) sealed()      {}
func (DateSpecific) sealed()           {}
func (AppAnniversary) sealed()         {}
func (MultiHabitSameDay) sealed()      {}
func (MultiHabitStreak) sealed()       {}
func (StreakRecovery) sealed()         {}
func (WeekendStreak) sealed()          {}
func (TotalHabitsCompletions) sealed() {}

func (c FirstAction) Validate() error {
	switch c.Action {
	case ActionCreateHabit, ActionCompleteHabit, ActionCustomizeHabit:
		return nil
	}
	return fmt.Errorf("unknown action %q", c.Action)
}

func (c TaskCount) Validate() error        { return positive("threshold", c.Threshold) }
func (c StreakDays) Validate() error       { return positive("threshold", c.Threshold) }
func (c TotalCompletions) Validate() error { return positive("threshold", c.Threshold) }
func (c AllHabitsStreak) Validate() error  { return positive("days", c.Days) }
func (c PerfectWeek) Validate() error      { return positive("weeks", c.Weeks) }

func (c EarlyCompletion) Validate() error {
	if err := validClock(c.Before); err != nil {
		return err
	}
	return positive("days", c.Days)
}

func (c EveningCompletion) Validate() error {
	if err := validClock(c.After); err != nil {
		return err
	}
	return positive("days", c.Days)
}

func (c DateSpecific) Validate() error {
	// 2024 is a leap year so 02-29 parses.
	if _, err := time.Parse("2006-01-02", "2024-"+c.MonthDay); err != nil || len(c.MonthDay) != 5 {
		return fmt.Errorf("month-day %q is not MM-DD", c.MonthDay)
	}
	return nil
}

func (c AppAnniversary) Validate() error    { return positive("years", c.Years) }
func (c MultiHabitSameDay) Validate() error { return positive("habits", c.Habits) }

func (c MultiHabitStreak) Validate() error {
	if err := positive("habits", c.Habits); err != nil {
		return err
	}
	return positive("days", c.Days)
}

func (c StreakRecovery) Validate() error {
	if err := positive("min lost streak", c.MinLostStreak); err != nil {
		return err
	}
	return positive("threshold", c.Threshold)
}

func (c WeekendStreak) Validate() error          { return positive("weekends", c.Weekends) }
func (c TotalHabitsCompletions) Validate() error { return positive("threshold", c.Threshold) }

func positive(field string, v int) error {
	if v <= 0 {
		return fmt.Errorf("%s must be positive (got %d)", field, v)
	}
	return nil
}

func validClock(s string) error {
	if _, err := time.Parse("15:04", s); err != nil || len(s) != 5 {
		return fmt.Errorf("time of day %q is not HH:MM", s)
	}
	return nil
}
