package app

import (
	"context"
	"fmt"
	"time"

	"github.com/example/milestone/internal/core/condition"
	"github.com/example/milestone/internal/ports/secondary"
)

// factsView adapts secondary.HabitFactsReader to condition.Facts for one
// evaluation cycle. Successful reads are cached; habit data does not change
// while a cycle runs.
type factsView struct {
	ctx    context.Context
	reader secondary.HabitFactsReader
	today  string

	habits         []condition.Habit
	habitsLoaded   bool
	days           map[string][]condition.DayRecord
	customizations *int
}

func newFactsView(ctx context.Context, reader secondary.HabitFactsReader, today string) *factsView {
	return &factsView{
		ctx:    ctx,
		reader: reader,
		today:  today,
		days:   make(map[string][]condition.DayRecord),
	}
}

func (f *factsView) Habits() ([]condition.Habit, error) {
	if f.habitsLoaded {
		return f.habits, nil
	}
	records, err := f.reader.ListHabits(f.ctx, f.today)
	if err != nil {
		return nil, err
	}
	habits := make([]condition.Habit, 0, len(records))
	for _, r := range records {
		createdAt, err := time.Parse(time.RFC3339, r.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("habit %s has invalid created_at %q: %w", r.ID, r.CreatedAt, err)
		}
		habits = append(habits, condition.Habit{
			ID:               r.ID,
			Name:             r.Name,
			CreatedAt:        createdAt,
			Archived:         r.Archived,
			CurrentStreak:    r.CurrentStreak,
			TotalCompletions: r.TotalCompletions,
		})
	}
	f.habits = habits
	f.habitsLoaded = true
	return habits, nil
}

func (f *factsView) DayRecords(taskID string) ([]condition.DayRecord, error) {
	if days, ok := f.days[taskID]; ok {
		return days, nil
	}
	records, err := f.reader.ListDayRecords(f.ctx, taskID)
	if err != nil {
		return nil, err
	}
	days := make([]condition.DayRecord, len(records))
	for i, r := range records {
		days[i] = condition.DayRecord{
			TaskID:  r.HabitID,
			Date:    r.Date,
			Count:   r.Count,
			FirstAt: r.FirstAt,
			LastAt:  r.LastAt,
		}
	}
	f.days[taskID] = days
	return days, nil
}

func (f *factsView) Customizations() (int, error) {
	if f.customizations != nil {
		return *f.customizations, nil
	}
	n, err := f.reader.CountCustomizations(f.ctx)
	if err != nil {
		return 0, err
	}
	f.customizations = &n
	return n, nil
}

var _ condition.Facts = (*factsView)(nil)
