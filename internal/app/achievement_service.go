package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/example/milestone/internal/core/achievement"
	"github.com/example/milestone/internal/core/condition"
	"github.com/example/milestone/internal/ctxutil"
	"github.com/example/milestone/internal/ports/primary"
	"github.com/example/milestone/internal/ports/secondary"
)

// PartialUnlockError is returned when an unlock write keeps failing after
// retries. Unlocked lists the ids that were unlocked earlier in the same cycle.
type PartialUnlockError struct {
	AchievementID string
	Unlocked      []string
	Err           error
}

func (e *PartialUnlockError) Error() string {
	if len(e.Unlocked) == 0 {
		return fmt.Sprintf("failed to unlock %s: %v", e.AchievementID, e.Err)
	}
	return fmt.Sprintf("failed to unlock %s (already unlocked this cycle: %s): %v",
		e.AchievementID, strings.Join(e.Unlocked, ", "), e.Err)
}

func (e *PartialUnlockError) Unwrap() error { return e.Err }

// AchievementServiceImpl implements the AchievementService interface.
type AchievementServiceImpl struct {
	registry     *achievement.Registry
	starterID    string
	unlockRepo   secondary.UnlockRepository
	progressRepo secondary.ProgressRepository
	gridRepo     secondary.GridRepository
	factsReader  secondary.HabitFactsReader
	logWriter    secondary.LogWriter
	executor     EffectExecutor
	logger       *zap.Logger
	clock        func() time.Time
	location     *time.Location

	locks     *userLocks
	gridGroup singleflight.Group
}

// AchievementOption configures an AchievementServiceImpl.
type AchievementOption func(*AchievementServiceImpl)

// WithClock overrides the time source.
func WithClock(clock func() time.Time) AchievementOption {
	return func(s *AchievementServiceImpl) { s.clock = clock }
}

// WithLocation sets the timezone calendar days are computed in.
func WithLocation(loc *time.Location) AchievementOption {
	return func(s *AchievementServiceImpl) { s.location = loc }
}

// WithEffectExecutor replaces the default executor.
func WithEffectExecutor(executor EffectExecutor) AchievementOption {
	return func(s *AchievementServiceImpl) { s.executor = executor }
}

// WithRetryPolicy configures unlock write retries for the default executor.
func WithRetryPolicy(policy RetryPolicy) AchievementOption {
	return func(s *AchievementServiceImpl) {
		s.executor = NewEffectExecutor(s.unlockRepo, NewProgressTracker(s.progressRepo, s.unlockRepo, s.logWriter, s.logger, s.now), s.logWriter, s.logger, policy, s.now)
	}
}

// NewAchievementService creates a new AchievementService with injected dependencies.
func NewAchievementService(
	registry *achievement.Registry,
	starterID string,
	unlockRepo secondary.UnlockRepository,
	progressRepo secondary.ProgressRepository,
	gridRepo secondary.GridRepository,
	factsReader secondary.HabitFactsReader,
	logWriter secondary.LogWriter,
	logger *zap.Logger,
	opts ...AchievementOption,
) *AchievementServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &AchievementServiceImpl{
		registry:     registry,
		starterID:    starterID,
		unlockRepo:   unlockRepo,
		progressRepo: progressRepo,
		gridRepo:     gridRepo,
		factsReader:  factsReader,
		logWriter:    logWriter,
		logger:       logger,
		clock:        time.Now,
		location:     time.Local,
		locks:        newUserLocks(),
	}
	s.executor = NewEffectExecutor(unlockRepo, NewProgressTracker(progressRepo, unlockRepo, logWriter, logger, s.now), logWriter, logger, DefaultRetryPolicy, s.now)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// now reads the clock in the configured location. The executor and tracker
// hold this method value, so WithClock applies to them as well.
func (s *AchievementServiceImpl) now() time.Time {
	return s.clock().In(s.location)
}

// Evaluate runs one unlock cycle.
//
// Candidates are re-resolved after every pass that unlocked something, so an
// achievement whose prerequisites were unlocked earlier in the same cycle is
// evaluated in that cycle too. Passes are bounded by the catalog size.
func (s *AchievementServiceImpl) Evaluate(ctx context.Context, ec achievement.EvaluationContext) (*primary.EvaluateResponse, error) {
	release := s.locks.lock(ctxutil.UserFromContext(ctx))
	defer release()

	start := time.Now()
	defer func() { evaluationDuration.Observe(time.Since(start).Seconds()) }()
	evaluationsTotal.WithLabelValues(string(ec.Trigger)).Inc()

	now := s.now()

	records, err := s.unlockRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load unlocked achievements: %w", err)
	}
	unlocked := make(map[string]bool, len(records))
	for _, r := range records {
		unlocked[r.AchievementID] = true
	}

	progressRecords, err := s.progressRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}
	existing := make(map[string]*achievement.Progress, len(progressRecords))
	for _, p := range progressRecords {
		existing[p.AchievementID] = &achievement.Progress{AchievementID: p.AchievementID, Current: p.Current, Target: p.Target}
	}

	facts := newFactsView(ctx, s.factsReader, factsDate(ec, now))
	resp := &primary.EvaluateResponse{NewlyUnlocked: []string{}}
	warned := make(map[string]bool)

	maxPasses := s.registry.Len() + 1
	passes := 0
	for passes < maxPasses {
		passes++
		changed := 0

		for _, def := range achievement.FilterCandidates(s.registry.Definitions(), unlocked) {
			result, err := condition.Evaluate(def.Condition, ec, facts, now)
			if err != nil {
				if !warned[def.ID] {
					warned[def.ID] = true
					evaluationWarningsTotal.Inc()
					resp.Warnings = append(resp.Warnings, fmt.Sprintf("%s: %v", def.ID, err))
					s.logger.Warn("skipping achievement", zap.String("achievement_id", def.ID), zap.Error(err))
				}
				continue
			}

			in := achievement.OutcomeInput{
				Definition:    def,
				TriggerTaskID: ec.TaskID,
				Satisfied:     result.Satisfied,
				Metadata:      unlockMetadata(result.Metadata, ec),
				Existing:      existing[def.ID],
			}
			if result.Progress != nil {
				in.HasProgress = true
				in.ProgressCurrent = result.Progress.Current
				in.ProgressTarget = result.Progress.Target
			}

			if err := s.executor.Execute(ctx, achievement.PlanOutcome(in)); err != nil {
				if errors.Is(err, secondary.ErrAlreadyUnlocked) {
					// Unlocked elsewhere since the cycle started.
					unlocked[def.ID] = true
					delete(existing, def.ID)
					changed++
					continue
				}
				if result.Satisfied {
					return nil, &PartialUnlockError{AchievementID: def.ID, Unlocked: resp.NewlyUnlocked, Err: err}
				}
				// Only progress was planned; the candidate stays locked.
				if !warned[def.ID] {
					warned[def.ID] = true
					evaluationWarningsTotal.Inc()
					resp.Warnings = append(resp.Warnings, fmt.Sprintf("%s: failed to save progress: %v", def.ID, err))
					s.logger.Warn("failed to save progress", zap.String("achievement_id", def.ID), zap.Error(err))
				}
				continue
			}

			if result.Satisfied {
				unlocked[def.ID] = true
				delete(existing, def.ID)
				resp.NewlyUnlocked = append(resp.NewlyUnlocked, def.ID)
				unlocksTotal.WithLabelValues(def.Rarity.String()).Inc()
				changed++
			} else if in.HasProgress {
				existing[def.ID] = &achievement.Progress{AchievementID: def.ID, Current: in.ProgressCurrent, Target: in.ProgressTarget}
			} else {
				delete(existing, def.ID)
			}
		}

		if changed == 0 {
			break
		}
	}
	evaluationPasses.Observe(float64(passes))

	s.logger.Debug("evaluation complete",
		zap.String("trigger", string(ec.Trigger)),
		zap.Int("passes", passes),
		zap.Strings("unlocked", resp.NewlyUnlocked),
		zap.Int("warnings", len(resp.Warnings)))

	return resp, nil
}

// factsDate is the day streak facts are computed against: the context date
// when it parses, else today. An invalid context date is reported per
// candidate by the evaluator.
func factsDate(ec achievement.EvaluationContext, now time.Time) string {
	if ec.Date != "" {
		if _, err := time.Parse("2006-01-02", ec.Date); err == nil {
			return ec.Date
		}
	}
	return now.Format("2006-01-02")
}

// unlockMetadata merges evaluator metadata with the trigger kind.
func unlockMetadata(fromResult map[string]string, ec achievement.EvaluationContext) map[string]string {
	out := make(map[string]string, len(fromResult)+1)
	for k, v := range fromResult {
		out[k] = v
	}
	out["trigger"] = string(ec.Trigger)
	return out
}

// Ensure AchievementServiceImpl implements the interface
var _ primary.AchievementService = (*AchievementServiceImpl)(nil)
