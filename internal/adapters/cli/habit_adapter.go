package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"github.com/example/milestone/internal/ports/primary"
)

// HabitAdapter translates CLI operations to HabitService calls and announces
// any achievements they unlock.
type HabitAdapter struct {
	habits       primary.HabitService
	achievements primary.AchievementService
	out          io.Writer
}

// NewHabitAdapter creates a new HabitAdapter.
func NewHabitAdapter(habits primary.HabitService, achievements primary.AchievementService, out io.Writer) *HabitAdapter {
	return &HabitAdapter{
		habits:       habits,
		achievements: achievements,
		out:          out,
	}
}

// Add creates a habit.
func (a *HabitAdapter) Add(ctx context.Context, name, icon, color string) error {
	resp, err := a.habits.CreateHabit(ctx, primary.CreateHabitRequest{Name: name, Icon: icon, Color: color})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Created habit %s: %s\n", resp.Habit.ID, displayName(resp.Habit))
	a.report(ctx, resp)
	return nil
}

// Done records a completion. Empty date and time mean now.
func (a *HabitAdapter) Done(ctx context.Context, habitID, date, at string) error {
	resp, err := a.habits.CompleteHabit(ctx, primary.CompleteHabitRequest{HabitID: habitID, Date: date, Time: at})
	if err != nil {
		return err
	}
	if resp.Habit != nil {
		fmt.Fprintf(a.out, "✓ %s done (streak: %s)\n", displayName(resp.Habit), days(resp.Habit.CurrentStreak))
	} else {
		fmt.Fprintf(a.out, "✓ Habit %s done\n", habitID)
	}
	a.report(ctx, resp)
	return nil
}

// Archive archives a habit.
func (a *HabitAdapter) Archive(ctx context.Context, habitID string) error {
	resp, err := a.habits.ArchiveHabit(ctx, habitID)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Habit %s archived\n", habitID)
	a.report(ctx, resp)
	return nil
}

// Customize changes a habit's name, icon or color.
func (a *HabitAdapter) Customize(ctx context.Context, habitID, name, icon, color string) error {
	resp, err := a.habits.CustomizeHabit(ctx, primary.CustomizeHabitRequest{HabitID: habitID, Name: name, Icon: icon, Color: color})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Habit %s updated\n", habitID)
	a.report(ctx, resp)
	return nil
}

// List lists habits with their streaks.
func (a *HabitAdapter) List(ctx context.Context, includeArchived bool) error {
	habits, err := a.habits.ListHabits(ctx, primary.HabitFilters{IncludeArchived: includeArchived})
	if err != nil {
		return fmt.Errorf("failed to list habits: %w", err)
	}

	if len(habits) == 0 {
		fmt.Fprintln(a.out, "No habits found")
		return nil
	}

	fmt.Fprintf(a.out, "\n%-36s %-24s %-10s %-10s %s\n", "ID", "NAME", "STREAK", "BEST", "TOTAL")
	fmt.Fprintln(a.out, "──────────────────────────────────────────────────────────────────────────────────────────")
	for _, h := range habits {
		name := displayName(h)
		if h.Archived {
			name += " (archived)"
		}
		fmt.Fprintf(a.out, "%-36s %-24s %-10s %-10s %s\n", h.ID, name, days(h.CurrentStreak), days(h.LongestStreak), humanize.Comma(int64(h.TotalCompletions)))
	}
	fmt.Fprintln(a.out)

	return nil
}

func (a *HabitAdapter) report(ctx context.Context, resp *primary.HabitResponse) {
	announce(ctx, a.out, a.achievements, resp.NewlyUnlocked)
	warn(a.out, resp.Warnings)
}

func displayName(h *primary.Habit) string {
	if h.Icon == "" {
		return h.Name
	}
	return h.Icon + " " + h.Name
}

func days(n int) string {
	if n == 1 {
		return "1 day"
	}
	return fmt.Sprintf("%d days", n)
}
