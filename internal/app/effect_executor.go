// Package app contains the application layer - service implementations and effect execution.
package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"

	"github.com/example/milestone/internal/core/effects"
	"github.com/example/milestone/internal/ports/secondary"
)

// EffectExecutor interprets and executes effects.
// This is the "Imperative Shell" - the only place evaluation I/O happens.
type EffectExecutor interface {
	Execute(ctx context.Context, effs []effects.Effect) error
}

// RetryPolicy bounds unlock write retries.
type RetryPolicy struct {
	MaxTries        uint
	InitialInterval time.Duration
	MaxInterval     time.Duration
}

// DefaultRetryPolicy is used when no policy is configured.
var DefaultRetryPolicy = RetryPolicy{
	MaxTries:        3,
	InitialInterval: 50 * time.Millisecond,
	MaxInterval:     500 * time.Millisecond,
}

// DefaultEffectExecutor implements EffectExecutor against the achievement repositories.
type DefaultEffectExecutor struct {
	unlockRepo secondary.UnlockRepository
	progress   *ProgressTracker
	logWriter  secondary.LogWriter
	logger     *zap.Logger
	retry      RetryPolicy
	clock      func() time.Time
}

// NewEffectExecutor creates a new DefaultEffectExecutor.
func NewEffectExecutor(unlockRepo secondary.UnlockRepository, progress *ProgressTracker, logWriter secondary.LogWriter, logger *zap.Logger, retry RetryPolicy, clock func() time.Time) *DefaultEffectExecutor {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = time.Now
	}
	if retry.MaxTries == 0 {
		retry = DefaultRetryPolicy
	}
	return &DefaultEffectExecutor{
		unlockRepo: unlockRepo,
		progress:   progress,
		logWriter:  logWriter,
		logger:     logger,
		retry:      retry,
		clock:      clock,
	}
}

// Execute processes a slice of effects, executing each in sequence.
func (e *DefaultEffectExecutor) Execute(ctx context.Context, effs []effects.Effect) error {
	for _, eff := range effs {
		if err := e.executeOne(ctx, eff); err != nil {
			return fmt.Errorf("failed to execute %s effect: %w", eff.EffectType(), err)
		}
	}
	return nil
}

func (e *DefaultEffectExecutor) executeOne(ctx context.Context, eff effects.Effect) error {
	switch typed := eff.(type) {
	case effects.UnlockEffect:
		return e.executeUnlock(ctx, typed)
	case effects.UpsertProgressEffect:
		return e.progress.Upsert(ctx, typed.AchievementID, typed.Current, typed.Target)
	case effects.ClearProgressEffect:
		return e.progress.Clear(ctx, typed.AchievementID)
	case effects.NoEffect:
		return nil
	case effects.LogEffect:
		e.executeLog(typed)
		return nil
	default:
		return fmt.Errorf("unknown effect type: %T", eff)
	}
}

// executeUnlock writes the unlock (which clears progress in the same
// transaction), retrying transient failures with exponential backoff.
// ErrAlreadyUnlocked is permanent and returned as is.
func (e *DefaultEffectExecutor) executeUnlock(ctx context.Context, eff effects.UnlockEffect) error {
	record := &secondary.UnlockRecord{
		AchievementID: eff.AchievementID,
		UnlockedAt:    e.clock().UTC().Format(time.RFC3339),
		TriggerTaskID: eff.TriggerTaskID,
		Metadata:      eff.Metadata,
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = e.retry.InitialInterval
	b.MaxInterval = e.retry.MaxInterval

	attempt := 0
	_, err := backoff.Retry(ctx, func() (struct{}, error) {
		attempt++
		err := e.unlockRepo.Unlock(ctx, record)
		if errors.Is(err, secondary.ErrAlreadyUnlocked) {
			return struct{}{}, backoff.Permanent(err)
		}
		return struct{}{}, err
	},
		backoff.WithBackOff(b),
		backoff.WithMaxTries(e.retry.MaxTries),
		backoff.WithNotify(func(err error, wait time.Duration) {
			unlockWriteRetriesTotal.Inc()
			e.logger.Warn("unlock write failed, retrying",
				zap.String("achievement_id", eff.AchievementID),
				zap.Int("attempt", attempt),
				zap.Duration("wait", wait),
				zap.Error(err))
		}),
	)
	if err != nil {
		return err
	}

	if e.logWriter != nil {
		if err := e.logWriter.LogCreate(ctx, secondary.EntityAchievement, eff.AchievementID); err != nil {
			e.logger.Warn("failed to write audit log", zap.String("achievement_id", eff.AchievementID), zap.Error(err))
		}
	}
	return nil
}

func (e *DefaultEffectExecutor) executeLog(eff effects.LogEffect) {
	fields := make([]zap.Field, 0, len(eff.Fields))
	for k, v := range eff.Fields {
		fields = append(fields, zap.Any(k, v))
	}
	switch eff.Level {
	case "debug":
		e.logger.Debug(eff.Message, fields...)
	case "warn":
		e.logger.Warn(eff.Message, fields...)
	case "error":
		e.logger.Error(eff.Message, fields...)
	default:
		e.logger.Info(eff.Message, fields...)
	}
}
