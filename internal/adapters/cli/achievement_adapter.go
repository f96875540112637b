// Package cli provides thin CLI adapters that translate between CLI concerns
// and application services. Adapters handle argument parsing, output formatting,
// but delegate business logic to services.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"

	"github.com/example/milestone/internal/core/achievement"
	"github.com/example/milestone/internal/ports/primary"
)

// AchievementAdapter is a thin adapter that translates CLI operations to AchievementService calls.
// It depends only on the AchievementService interface, enabling easy testing with mocks.
type AchievementAdapter struct {
	service primary.AchievementService
	out     io.Writer
	now     func() time.Time
}

// NewAchievementAdapter creates a new AchievementAdapter with the given service.
func NewAchievementAdapter(service primary.AchievementService, out io.Writer, now func() time.Time) *AchievementAdapter {
	if now == nil {
		now = time.Now
	}
	return &AchievementAdapter{
		service: service,
		out:     out,
		now:     now,
	}
}

// List lists achievements with optional filters.
func (a *AchievementAdapter) List(ctx context.Context, filters primary.AchievementFilters) error {
	achievements, err := a.service.ListAchievements(ctx, filters)
	if err != nil {
		return fmt.Errorf("failed to list achievements: %w", err)
	}

	if len(achievements) == 0 {
		fmt.Fprintln(a.out, "No achievements found")
		return nil
	}

	unlocked := 0
	for _, ach := range achievements {
		if ach.Unlocked {
			unlocked++
		}
	}

	fmt.Fprintf(a.out, "\n%-3s %-18s %-22s %-10s %s\n", "", "ID", "NAME", "RARITY", "STATUS")
	fmt.Fprintln(a.out, "────────────────────────────────────────────────────────────────────────")
	for _, ach := range achievements {
		fmt.Fprintf(a.out, "%-3s %-18s %-22s %-10s %s\n", ach.Icon, ach.ID, ach.Name, rarityLabel(ach.Rarity), a.status(ach))
	}
	fmt.Fprintf(a.out, "\n%d of %d unlocked\n\n", unlocked, len(achievements))

	return nil
}

// Show displays details for a single achievement.
func (a *AchievementAdapter) Show(ctx context.Context, achievementID string) (*primary.Achievement, error) {
	ach, err := a.service.GetAchievement(ctx, achievementID)
	if err != nil {
		return nil, fmt.Errorf("failed to get achievement: %w", err)
	}

	fmt.Fprintf(a.out, "\n%s %s (%s)\n", ach.Icon, ach.Name, ach.ID)
	fmt.Fprintf(a.out, "Rarity:   %s\n", rarityLabel(ach.Rarity))
	fmt.Fprintf(a.out, "Category: %s\n", ach.Category)
	fmt.Fprintf(a.out, "%s\n", ach.Description)
	fmt.Fprintf(a.out, "Status:   %s\n", a.status(ach))

	if len(ach.Prerequisites) > 0 {
		missing := make(map[string]bool, len(ach.Missing))
		for _, id := range ach.Missing {
			missing[id] = true
		}
		fmt.Fprintln(a.out, "Requires:")
		for _, id := range ach.Prerequisites {
			mark := color.New(color.FgGreen).Sprint("✓")
			if missing[id] {
				mark = color.New(color.FgHiBlack).Sprint("✗")
			}
			fmt.Fprintf(a.out, "  %s %s\n", mark, id)
		}
	}

	if ach.Unlocked && ach.TriggerTaskID != "" {
		fmt.Fprintf(a.out, "Earned by: %s\n", ach.TriggerTaskID)
	}
	fmt.Fprintln(a.out)

	return ach, nil
}

// View marks an unlocked achievement as seen.
func (a *AchievementAdapter) View(ctx context.Context, achievementID string) error {
	if err := a.service.MarkViewed(ctx, achievementID); err != nil {
		return fmt.Errorf("failed to mark achievement viewed: %w", err)
	}
	fmt.Fprintf(a.out, "✓ Achievement %s marked as viewed\n", achievementID)
	return nil
}

// Evaluate runs an evaluation cycle and announces the result.
func (a *AchievementAdapter) Evaluate(ctx context.Context, ec achievement.EvaluationContext) error {
	resp, err := a.service.Evaluate(ctx, ec)
	if err != nil {
		return fmt.Errorf("evaluation failed: %w", err)
	}

	if len(resp.NewlyUnlocked) == 0 {
		fmt.Fprintln(a.out, "No new achievements")
	}
	announce(ctx, a.out, a.service, resp.NewlyUnlocked)
	warn(a.out, resp.Warnings)
	return nil
}

// status renders the unlock date or the progress toward unlocking.
func (a *AchievementAdapter) status(ach *primary.Achievement) string {
	if ach.Unlocked {
		when := ach.UnlockedAt
		if t, err := time.Parse(time.RFC3339, ach.UnlockedAt); err == nil {
			when = humanize.RelTime(t, a.now(), "ago", "from now")
		}
		label := color.New(color.FgGreen).Sprintf("✓ unlocked %s", when)
		if !ach.Viewed {
			label += color.New(color.FgHiMagenta).Sprint(" [new]")
		}
		return label
	}
	if ach.Progress != nil {
		return fmt.Sprintf("%s %s/%s (%d%%)",
			progressBar(ach.Progress.Percentage, 10),
			humanize.Comma(int64(ach.Progress.Current)),
			humanize.Comma(int64(ach.Progress.Target)),
			ach.Progress.Percentage)
	}
	if len(ach.Missing) > 0 {
		return color.New(color.FgHiBlack).Sprintf("locked (needs %s)", strings.Join(ach.Missing, ", "))
	}
	return color.New(color.FgHiBlack).Sprint("locked")
}

// announce prints one line per newly unlocked achievement.
func announce(ctx context.Context, out io.Writer, service primary.AchievementService, ids []string) {
	for _, id := range ids {
		name, icon := id, "🏆"
		if ach, err := service.GetAchievement(ctx, id); err == nil {
			name, icon = ach.Name, ach.Icon
		}
		fmt.Fprintf(out, "%s Achievement unlocked: %s %s\n", color.New(color.FgHiYellow, color.Bold).Sprint("★"), icon, name)
	}
}

func warn(out io.Writer, warnings []string) {
	for _, w := range warnings {
		fmt.Fprintf(out, "%s %s\n", color.New(color.FgYellow).Sprint("⚠"), w)
	}
}

func progressBar(percentage, width int) string {
	filled := percentage * width / 100
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	return "[" + strings.Repeat("█", filled) + strings.Repeat("░", width-filled) + "]"
}

func rarityLabel(rarity string) string {
	switch rarity {
	case "uncommon":
		return color.New(color.FgGreen).Sprint(rarity)
	case "rare":
		return color.New(color.FgHiBlue).Sprint(rarity)
	case "epic":
		return color.New(color.FgMagenta).Sprint(rarity)
	case "legendary":
		return color.New(color.FgHiYellow).Sprint(rarity)
	default:
		return rarity
	}
}
