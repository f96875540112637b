// Package effects defines effect types as data structures describing the writes
// an evaluation pass wants to perform. Planners in core return effects; the
// application layer interprets them. Effects are pure data.
package effects

// Effect is the base interface for all effects.
type Effect interface {
	// EffectType returns a string identifier for the effect type.
	EffectType() string
}

// UnlockEffect records an achievement as unlocked.
// Interpreters must remove any progress record for the same id in the same write.
type UnlockEffect struct {
	AchievementID string
	TriggerTaskID string
	Metadata      map[string]string
}

func (e UnlockEffect) EffectType() string { return "unlock" }

// UpsertProgressEffect stores partial progress for a locked achievement.
type UpsertProgressEffect struct {
	AchievementID string
	Current       int
	Target        int
}

func (e UpsertProgressEffect) EffectType() string { return "upsert_progress" }

// ClearProgressEffect removes a stale progress record.
type ClearProgressEffect struct {
	AchievementID string
}

func (e ClearProgressEffect) EffectType() string { return "clear_progress" }

// LogEffect represents a diagnostic log line.
type LogEffect struct {
	Level   string
	Message string
	Fields  map[string]any
}

func (e LogEffect) EffectType() string { return "log" }

// NoEffect represents an operation that produces no side effects.
type NoEffect struct{}

func (e NoEffect) EffectType() string { return "none" }
