// Package achievement contains the pure business logic for achievements:
// the definition catalog, prerequisite filtering, progress arithmetic and
// the outcome planner that turns an evaluation into effects.
package achievement

import (
	"fmt"
	"time"
)

// Rarity is an ordered achievement rarity. Higher values are rarer.
type Rarity int

const (
	RarityCommon Rarity = iota
	RarityUncommon
	RarityRare
	RarityEpic
	RarityLegendary
)

var rarityNames = map[Rarity]string{
	RarityCommon:    "common",
	RarityUncommon:  "uncommon",
	RarityRare:      "rare",
	RarityEpic:      "epic",
	RarityLegendary: "legendary",
}

func (r Rarity) String() string {
	if name, ok := rarityNames[r]; ok {
		return name
	}
	return fmt.Sprintf("rarity(%d)", int(r))
}

// Category groups related achievements.
type Category string

const (
	CategoryGettingStarted Category = "getting_started"
	CategoryConsistency    Category = "consistency"
	CategoryDedication     Category = "dedication"
	CategoryTimeOfDay      Category = "time_of_day"
	CategoryVariety        Category = "variety"
	CategorySpecial        Category = "special"
	CategoryMastery        Category = "mastery"
)

// Categories lists every category in display order.
var Categories = []Category{
	CategoryGettingStarted,
	CategoryConsistency,
	CategoryDedication,
	CategoryTimeOfDay,
	CategoryVariety,
	CategorySpecial,
	CategoryMastery,
}

// Definition is a single immutable catalog entry.
type Definition struct {
	ID              string
	Name            string
	Description     string
	Icon            string
	Rarity          Rarity
	Category        Category
	Condition       Condition
	PrerequisiteIDs []string
	Hidden          bool // display only; hidden achievements are still evaluated
}

// Unlocked is the record of an achievement having been earned.
// Only Viewed ever changes after creation.
type Unlocked struct {
	AchievementID string
	UnlockedAt    time.Time
	TriggerTaskID string
	Metadata      map[string]string
	Viewed        bool
}

// Progress is a partial-completion snapshot for a locked achievement.
type Progress struct {
	AchievementID string
	Current       int
	Target        int
	Percentage    int
	LastUpdatedAt time.Time
}

// Trigger identifies what caused an evaluation pass.
type Trigger string

const (
	TriggerHabitCompleted  Trigger = "habit_completed"
	TriggerStreakUpdated   Trigger = "streak_updated"
	TriggerHabitCreated    Trigger = "habit_created"
	TriggerHabitCustomized Trigger = "habit_customized"
	TriggerAppOpened       Trigger = "app_opened"
)

// ParseTrigger validates a trigger name.
func ParseTrigger(s string) (Trigger, error) {
	switch t := Trigger(s); t {
	case TriggerHabitCompleted, TriggerStreakUpdated, TriggerHabitCreated, TriggerHabitCustomized, TriggerAppOpened:
		return t, nil
	}
	return "", fmt.Errorf("unknown trigger %q (valid: habit_completed, streak_updated, habit_created, habit_customized, app_opened)", s)
}

// EvaluationContext is the payload of one evaluation trigger.
type EvaluationContext struct {
	Trigger   Trigger
	TaskID    string // optional
	Date      string // optional, YYYY-MM-DD
	Count     int    // optional
	TimeOfDay string // optional, HH:MM
}
