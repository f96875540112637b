package achievement

import "github.com/example/milestone/internal/core/effects"

// OutcomeInput is everything the planner needs about one evaluated candidate.
// All values are pre-fetched by the caller - no I/O in the planner.
type OutcomeInput struct {
	Definition    Definition
	TriggerTaskID string
	Satisfied     bool
	Metadata      map[string]string

	// HasProgress is set when the evaluator reported partial progress.
	HasProgress     bool
	ProgressCurrent int
	ProgressTarget  int

	// Existing is the stored progress record, if any.
	Existing *Progress
}

// PlanOutcome decides which writes follow from one evaluation result.
// Rules:
// - Satisfied: unlock (which also clears progress)
// - Not satisfied with progress: upsert, unless the stored record already matches
// - No progress but a stored record: clear it
// - Otherwise: nothing
func PlanOutcome(in OutcomeInput) []effects.Effect {
	if in.Satisfied {
		return []effects.Effect{
			effects.UnlockEffect{
				AchievementID: in.Definition.ID,
				TriggerTaskID: in.TriggerTaskID,
				Metadata:      in.Metadata,
			},
			effects.LogEffect{
				Level:   "info",
				Message: "achievement unlocked",
				Fields: map[string]any{
					"achievement_id": in.Definition.ID,
					"rarity":         in.Definition.Rarity.String(),
				},
			},
		}
	}

	if !in.HasProgress {
		if in.Existing != nil {
			return []effects.Effect{effects.ClearProgressEffect{AchievementID: in.Definition.ID}}
		}
		return []effects.Effect{effects.NoEffect{}}
	}

	if in.Existing != nil && in.Existing.Current == in.ProgressCurrent && in.Existing.Target == in.ProgressTarget {
		return []effects.Effect{effects.NoEffect{}}
	}

	return []effects.Effect{effects.UpsertProgressEffect{
		AchievementID: in.Definition.ID,
		Current:       in.ProgressCurrent,
		Target:        in.ProgressTarget,
	}}
}
