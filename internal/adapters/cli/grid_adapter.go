package cli

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/example/milestone/internal/ports/primary"
)

// Cell glyphs. Every glyph is one column wide so rows stay aligned.
const (
	glyphUnlocked = "★"
	glyphVisible  = "◆"
	glyphHidden   = "?"
	glyphLocked   = "·"
	glyphEmpty    = " "
)

// GridAdapter renders the achievement grid.
type GridAdapter struct {
	service primary.AchievementService
	out     io.Writer
}

// NewGridAdapter creates a new GridAdapter with the given service.
func NewGridAdapter(service primary.AchievementService, out io.Writer) *GridAdapter {
	return &GridAdapter{service: service, out: out}
}

// Show renders the grid and lists the achievements currently in reach.
func (a *GridAdapter) Show(ctx context.Context) error {
	state, err := a.service.BuildGridState(ctx)
	if err != nil {
		return fmt.Errorf("failed to build grid: %w", err)
	}

	fmt.Fprintln(a.out)
	fmt.Fprint(a.out, RenderGrid(state))
	fmt.Fprintln(a.out)

	unlocked := 0
	var reachable []*primary.Achievement
	for _, row := range state.Cells {
		for _, cell := range row {
			if cell.Achievement == nil {
				continue
			}
			switch cell.State {
			case "unlocked":
				unlocked++
			case "visible":
				reachable = append(reachable, cell.Achievement)
			}
		}
	}

	fmt.Fprintf(a.out, "%s unlocked  %s in reach  %s locked   (%d/%d)\n",
		glyphUnlocked, glyphVisible, glyphLocked, unlocked, state.Layout.Placed)

	if len(reachable) > 0 {
		fmt.Fprintln(a.out, "\nIn reach:")
		for _, ach := range reachable {
			line := fmt.Sprintf("  %s %s", ach.Icon, ach.Name)
			if ach.Progress != nil {
				line += fmt.Sprintf(" (%d%%)", ach.Progress.Percentage)
			}
			fmt.Fprintln(a.out, line)
		}
	}

	if state.Layout.NeedsUpgrade {
		fmt.Fprintln(a.out, color.New(color.FgYellow).Sprint("\nNew achievements are available. Run 'milestone grid upgrade' to place them."))
	}
	fmt.Fprintln(a.out)
	return nil
}

// Reset regenerates the grid from a fresh seed.
func (a *GridAdapter) Reset(ctx context.Context) error {
	layout, err := a.service.ResetGrid(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "✓ Grid reset (seed %s, %dx%d)\n", layout.Seed, layout.Size, layout.Size)
	return nil
}

// Upgrade grows the grid to fit the current catalog.
func (a *GridAdapter) Upgrade(ctx context.Context) error {
	before, err := a.service.GetOrCreateGrid(ctx)
	if err != nil {
		return err
	}
	after, err := a.service.UpgradeGrid(ctx)
	if err != nil {
		return err
	}
	if after.Version == before.Version && after.Placed == before.Placed {
		fmt.Fprintln(a.out, "Grid is up to date")
		return nil
	}
	fmt.Fprintf(a.out, "✓ Grid upgraded to version %d (%dx%d, %d achievements)\n", after.Version, after.Size, after.Size, after.Placed)
	return nil
}

// RenderGrid draws one glyph per cell, framed by a border.
func RenderGrid(state *primary.GridState) string {
	var b strings.Builder
	size := len(state.Cells)
	border := strings.Repeat("─", size*2+1)

	b.WriteString("┌" + border + "┐\n")
	for _, row := range state.Cells {
		b.WriteString("│ ")
		for _, cell := range row {
			b.WriteString(cellGlyph(cell))
			b.WriteString(" ")
		}
		b.WriteString("│\n")
	}
	b.WriteString("└" + border + "┘\n")
	return b.String()
}

func cellGlyph(cell *primary.GridCell) string {
	if cell.Achievement == nil {
		return glyphEmpty
	}
	switch cell.State {
	case "unlocked":
		return color.New(color.FgHiYellow).Sprint(glyphUnlocked)
	case "visible":
		if cell.Achievement.Masked {
			return color.New(color.FgMagenta).Sprint(glyphHidden)
		}
		return color.New(color.FgCyan).Sprint(glyphVisible)
	default:
		return color.New(color.FgHiBlack).Sprint(glyphLocked)
	}
}
