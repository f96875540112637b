package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/example/milestone/internal/core/achievement"
	"github.com/example/milestone/internal/ports/primary"
	"github.com/example/milestone/internal/ports/secondary"
)

// Placeholders shown for hidden achievements until they unlock.
const (
	maskedName        = "???"
	maskedDescription = "A hidden achievement. Keep going to reveal it."
	maskedIcon        = "❔"
)

// ListAchievements lists the catalog in registry order with the user's state.
func (s *AchievementServiceImpl) ListAchievements(ctx context.Context, filters primary.AchievementFilters) ([]*primary.Achievement, error) {
	view, err := s.loadUserView(ctx)
	if err != nil {
		return nil, err
	}
	records := indexUnlocks(view.records)
	progress := indexProgress(view.progress)

	var out []*primary.Achievement
	for _, def := range s.registry.Definitions() {
		if filters.Category != "" && string(def.Category) != filters.Category {
			continue
		}
		isUnlocked := view.unlocked[def.ID]
		if filters.UnlockedOnly && !isUnlocked {
			continue
		}
		if filters.LockedOnly && isUnlocked {
			continue
		}
		out = append(out, toAchievementDTO(def, records[def.ID], progress[def.ID], view.unlocked))
	}
	return out, nil
}

// GetAchievement retrieves one achievement with prerequisite details.
func (s *AchievementServiceImpl) GetAchievement(ctx context.Context, achievementID string) (*primary.Achievement, error) {
	def, ok := s.registry.Get(achievementID)
	if !ok {
		return nil, fmt.Errorf("achievement %s: %w", achievementID, secondary.ErrNotFound)
	}

	view, err := s.loadUserView(ctx)
	if err != nil {
		return nil, err
	}
	return toAchievementDTO(def, indexUnlocks(view.records)[def.ID], indexProgress(view.progress)[def.ID], view.unlocked), nil
}

// MarkViewed sets the viewed flag of an unlocked achievement.
func (s *AchievementServiceImpl) MarkViewed(ctx context.Context, achievementID string) error {
	if _, ok := s.registry.Get(achievementID); !ok {
		return fmt.Errorf("achievement %s: %w", achievementID, secondary.ErrNotFound)
	}

	record, err := s.unlockRepo.GetByID(ctx, achievementID)
	if err != nil {
		return err
	}
	if record.Viewed {
		return nil
	}

	if err := s.unlockRepo.MarkViewed(ctx, achievementID); err != nil {
		return err
	}
	s.audit(ctx, func() error {
		return s.logWriter.LogUpdate(ctx, secondary.EntityAchievement, achievementID, "viewed", "false", "true")
	})
	return nil
}

func indexUnlocks(records []achievement.Unlocked) map[string]*achievement.Unlocked {
	out := make(map[string]*achievement.Unlocked, len(records))
	for i := range records {
		out[records[i].AchievementID] = &records[i]
	}
	return out
}

func indexProgress(progress []achievement.Progress) map[string]*achievement.Progress {
	out := make(map[string]*achievement.Progress, len(progress))
	for i := range progress {
		out[progress[i].AchievementID] = &progress[i]
	}
	return out
}

// toAchievementDTO converts a definition and the user's state to the port
// type. Progress is dropped for unlocked achievements.
func toAchievementDTO(def achievement.Definition, record *achievement.Unlocked, progress *achievement.Progress, unlocked map[string]bool) *primary.Achievement {
	dto := &primary.Achievement{
		ID:            def.ID,
		Name:          def.Name,
		Description:   def.Description,
		Icon:          def.Icon,
		Rarity:        def.Rarity.String(),
		Category:      string(def.Category),
		ConditionType: string(def.Condition.Type()),
		Hidden:        def.Hidden,
		Prerequisites: append([]string(nil), def.PrerequisiteIDs...),
		Missing:       achievement.MissingPrerequisites(def, unlocked),
	}

	if record != nil {
		dto.Unlocked = true
		dto.UnlockedAt = record.UnlockedAt.Format(time.RFC3339)
		dto.TriggerTaskID = record.TriggerTaskID
		dto.Metadata = record.Metadata
		dto.Viewed = record.Viewed
		return dto
	}

	if def.Hidden {
		dto.Masked = true
		dto.Name = maskedName
		dto.Description = maskedDescription
		dto.Icon = maskedIcon
		dto.ConditionType = ""
	}
	if progress != nil {
		dto.Progress = &primary.AchievementProgress{
			Current:       progress.Current,
			Target:        progress.Target,
			Percentage:    progress.Percentage,
			LastUpdatedAt: progress.LastUpdatedAt.Format(time.RFC3339),
		}
	}
	return dto
}

// IsNotFound reports whether err is a not-found error from any layer.
func IsNotFound(err error) bool {
	return errors.Is(err, secondary.ErrNotFound)
}
