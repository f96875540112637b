package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/example/milestone/internal/core/achievement"
	"github.com/example/milestone/internal/ports/secondary"
)

// ProgressTracker persists partial progress for locked achievements.
type ProgressTracker struct {
	progressRepo secondary.ProgressRepository
	unlockRepo   secondary.UnlockRepository
	logWriter    secondary.LogWriter
	logger       *zap.Logger
	clock        func() time.Time
}

// NewProgressTracker creates a new ProgressTracker.
func NewProgressTracker(progressRepo secondary.ProgressRepository, unlockRepo secondary.UnlockRepository, logWriter secondary.LogWriter, logger *zap.Logger, clock func() time.Time) *ProgressTracker {
	if clock == nil {
		clock = time.Now
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProgressTracker{
		progressRepo: progressRepo,
		unlockRepo:   unlockRepo,
		logWriter:    logWriter,
		logger:       logger,
		clock:        clock,
	}
}

// Upsert stores current/target with a derived percentage. Unlocked
// achievements never carry progress, so the call is a no-op for them.
func (t *ProgressTracker) Upsert(ctx context.Context, achievementID string, current, target int) error {
	_, err := t.unlockRepo.GetByID(ctx, achievementID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, secondary.ErrNotFound) {
		return fmt.Errorf("failed to check unlock state: %w", err)
	}

	record := &secondary.ProgressRecord{
		AchievementID: achievementID,
		Current:       current,
		Target:        target,
		Percentage:    achievement.Percentage(current, target),
		LastUpdatedAt: t.clock().UTC().Format(time.RFC3339),
	}
	if err := t.progressRepo.Upsert(ctx, record); err != nil {
		return err
	}

	if t.logWriter != nil {
		if err := t.logWriter.LogUpdate(ctx, secondary.EntityProgress, achievementID, "current", "", strconv.Itoa(current)+"/"+strconv.Itoa(target)); err != nil {
			t.logger.Warn("failed to write audit log", zap.String("achievement_id", achievementID), zap.Error(err))
		}
	}
	return nil
}

// Clear deletes the progress record. Clearing absent progress succeeds.
func (t *ProgressTracker) Clear(ctx context.Context, achievementID string) error {
	return t.progressRepo.Delete(ctx, achievementID)
}
