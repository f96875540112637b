package app

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/example/milestone/internal/core/achievement"
	"github.com/example/milestone/internal/core/habit"
	"github.com/example/milestone/internal/ports/primary"
	"github.com/example/milestone/internal/ports/secondary"
)

// HabitServiceImpl implements the HabitService interface.
type HabitServiceImpl struct {
	habitRepo    secondary.HabitRepository
	factsReader  secondary.HabitFactsReader
	achievements primary.AchievementService
	logWriter    secondary.LogWriter
	logger       *zap.Logger
	clock        func() time.Time
}

// NewHabitService creates a new HabitService with injected dependencies.
// clock must return times in the user's timezone.
func NewHabitService(
	habitRepo secondary.HabitRepository,
	factsReader secondary.HabitFactsReader,
	achievements primary.AchievementService,
	logWriter secondary.LogWriter,
	logger *zap.Logger,
	clock func() time.Time,
) *HabitServiceImpl {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = time.Now
	}
	return &HabitServiceImpl{
		habitRepo:    habitRepo,
		factsReader:  factsReader,
		achievements: achievements,
		logWriter:    logWriter,
		logger:       logger,
		clock:        clock,
	}
}

// CreateHabit creates a new habit.
func (s *HabitServiceImpl) CreateHabit(ctx context.Context, req primary.CreateHabitRequest) (*primary.HabitResponse, error) {
	name := strings.TrimSpace(req.Name)

	takenBy, err := s.habitRepo.FindActiveByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if err := habit.CanCreateHabit(habit.CreateHabitContext{Name: name, NameTakenByID: takenBy}).Error(); err != nil {
		return nil, err
	}

	record := &secondary.HabitRecord{
		ID:        uuid.NewString(),
		Name:      name,
		Icon:      req.Icon,
		Color:     req.Color,
		CreatedAt: s.clock().UTC().Format(time.RFC3339),
	}
	if err := s.habitRepo.Create(ctx, record); err != nil {
		return nil, err
	}
	s.audit(ctx, func() error { return s.logWriter.LogCreate(ctx, secondary.EntityHabit, record.ID) })

	return s.respond(ctx, record.ID, achievement.EvaluationContext{
		Trigger: achievement.TriggerHabitCreated,
		TaskID:  record.ID,
	})
}

// CompleteHabit records a completion.
func (s *HabitServiceImpl) CompleteHabit(ctx context.Context, req primary.CompleteHabitRequest) (*primary.HabitResponse, error) {
	now := s.clock()
	today := now.Format("2006-01-02")

	date := req.Date
	if date == "" {
		date = today
	} else if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, fmt.Errorf("invalid date %q (want YYYY-MM-DD)", date)
	}
	at := now.Format("15:04")
	if req.Time != "" {
		parsed, err := time.Parse("15:04", req.Time)
		if err != nil {
			return nil, fmt.Errorf("invalid time %q (want HH:MM)", req.Time)
		}
		// Stored times compare as strings, so "9:05" must become "09:05".
		at = parsed.Format("15:04")
	}

	existing, err := s.lookup(ctx, req.HabitID)
	if err != nil {
		return nil, err
	}
	guard := habit.CanCompleteHabit(habit.CompleteHabitContext{
		HabitID:  req.HabitID,
		Exists:   existing != nil,
		Archived: existing != nil && existing.Archived,
		Date:     date,
		Today:    today,
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	if err := s.habitRepo.AddCompletion(ctx, &secondary.CompletionRecord{
		ID:          uuid.NewString(),
		HabitID:     req.HabitID,
		Date:        date,
		Time:        at,
		CompletedAt: now.UTC().Format(time.RFC3339),
	}); err != nil {
		return nil, err
	}

	count, err := s.completionsOn(ctx, req.HabitID, date)
	if err != nil {
		return nil, err
	}

	return s.respond(ctx, req.HabitID, achievement.EvaluationContext{
		Trigger:   achievement.TriggerHabitCompleted,
		TaskID:    req.HabitID,
		Date:      date,
		Count:     count,
		TimeOfDay: at,
	})
}

// ArchiveHabit archives a habit. Archiving changes which habits count as
// active, so it re-evaluates streak achievements.
func (s *HabitServiceImpl) ArchiveHabit(ctx context.Context, habitID string) (*primary.HabitResponse, error) {
	existing, err := s.lookup(ctx, habitID)
	if err != nil {
		return nil, err
	}
	guard := habit.CanArchiveHabit(habit.ArchiveHabitContext{
		HabitID:  habitID,
		Exists:   existing != nil,
		Archived: existing != nil && existing.Archived,
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	if err := s.habitRepo.Archive(ctx, habitID, s.clock().UTC().Format(time.RFC3339)); err != nil {
		return nil, err
	}
	s.audit(ctx, func() error {
		return s.logWriter.LogUpdate(ctx, secondary.EntityHabit, habitID, "archived", "false", "true")
	})

	return s.respond(ctx, habitID, achievement.EvaluationContext{
		Trigger: achievement.TriggerStreakUpdated,
		TaskID:  habitID,
	})
}

// CustomizeHabit changes a habit's name, icon or color.
func (s *HabitServiceImpl) CustomizeHabit(ctx context.Context, req primary.CustomizeHabitRequest) (*primary.HabitResponse, error) {
	existing, err := s.lookup(ctx, req.HabitID)
	if err != nil {
		return nil, err
	}
	name := strings.TrimSpace(req.Name)
	guard := habit.CanCustomizeHabit(habit.CustomizeHabitContext{
		HabitID:  req.HabitID,
		Exists:   existing != nil,
		Archived: existing != nil && existing.Archived,
		Name:     req.Name,
		Icon:     req.Icon,
		Color:    req.Color,
	})
	if err := guard.Error(); err != nil {
		return nil, err
	}

	if name != "" && !strings.EqualFold(name, existing.Name) {
		takenBy, err := s.habitRepo.FindActiveByName(ctx, name)
		if err != nil {
			return nil, err
		}
		if takenBy != "" && takenBy != req.HabitID {
			return nil, fmt.Errorf("habit %q already exists (%s)", name, takenBy)
		}
	}

	if err := s.habitRepo.Customize(ctx, &secondary.CustomizationRecord{
		ID:        uuid.NewString(),
		HabitID:   req.HabitID,
		Name:      name,
		Icon:      req.Icon,
		Color:     req.Color,
		CreatedAt: s.clock().UTC().Format(time.RFC3339),
	}); err != nil {
		return nil, err
	}
	if name != "" {
		s.audit(ctx, func() error {
			return s.logWriter.LogUpdate(ctx, secondary.EntityHabit, req.HabitID, "name", existing.Name, name)
		})
	}

	return s.respond(ctx, req.HabitID, achievement.EvaluationContext{
		Trigger: achievement.TriggerHabitCustomized,
		TaskID:  req.HabitID,
	})
}

// ListHabits lists habits with their streaks.
func (s *HabitServiceImpl) ListHabits(ctx context.Context, filters primary.HabitFilters) ([]*primary.Habit, error) {
	records, err := s.factsReader.ListHabits(ctx, s.clock().Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	if !filters.IncludeArchived {
		records = lo.Filter(records, func(r *secondary.HabitRecord, _ int) bool { return !r.Archived })
	}
	return lo.Map(records, func(r *secondary.HabitRecord, _ int) *primary.Habit { return toHabitDTO(r) }), nil
}

// lookup returns the habit or nil when it does not exist.
func (s *HabitServiceImpl) lookup(ctx context.Context, habitID string) (*secondary.HabitRecord, error) {
	record, err := s.habitRepo.GetByID(ctx, habitID)
	if errors.Is(err, secondary.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return record, nil
}

func (s *HabitServiceImpl) completionsOn(ctx context.Context, habitID, date string) (int, error) {
	days, err := s.factsReader.ListDayRecords(ctx, habitID)
	if err != nil {
		return 0, err
	}
	for _, d := range days {
		if d.Date == date {
			return d.Count, nil
		}
	}
	return 0, nil
}

// respond runs the evaluation cycle for a successful mutation and builds
// the response. The mutation already happened, so evaluation failures are
// reported as warnings rather than errors.
func (s *HabitServiceImpl) respond(ctx context.Context, habitID string, ec achievement.EvaluationContext) (*primary.HabitResponse, error) {
	resp := &primary.HabitResponse{NewlyUnlocked: []string{}}

	result, err := s.achievements.Evaluate(ctx, ec)
	switch {
	case err == nil:
		resp.NewlyUnlocked = result.NewlyUnlocked
		resp.Warnings = result.Warnings
	default:
		var partial *PartialUnlockError
		if errors.As(err, &partial) {
			resp.NewlyUnlocked = partial.Unlocked
		}
		resp.Warnings = append(resp.Warnings, fmt.Sprintf("achievement evaluation failed: %v", err))
		s.logger.Error("achievement evaluation failed", zap.String("trigger", string(ec.Trigger)), zap.Error(err))
	}

	habits, err := s.factsReader.ListHabits(ctx, s.clock().Format("2006-01-02"))
	if err != nil {
		return nil, err
	}
	if h, ok := lo.Find(habits, func(r *secondary.HabitRecord) bool { return r.ID == habitID }); ok {
		resp.Habit = toHabitDTO(h)
	}
	return resp, nil
}

func (s *HabitServiceImpl) audit(ctx context.Context, write func() error) {
	if s.logWriter == nil {
		return
	}
	if err := write(); err != nil {
		s.logger.Warn("failed to write audit log", zap.Error(err))
	}
}

func toHabitDTO(r *secondary.HabitRecord) *primary.Habit {
	return &primary.Habit{
		ID:               r.ID,
		Name:             r.Name,
		Icon:             r.Icon,
		Color:            r.Color,
		Archived:         r.Archived,
		CreatedAt:        r.CreatedAt,
		CurrentStreak:    r.CurrentStreak,
		LongestStreak:    r.LongestStreak,
		TotalCompletions: r.TotalCompletions,
	}
}

// Ensure HabitServiceImpl implements the interface
var _ primary.HabitService = (*HabitServiceImpl)(nil)
