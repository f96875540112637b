package grid

import "github.com/example/milestone/internal/core/achievement"

// State is a cell's visibility tier.
type State string

const (
	StateLocked   State = "locked"
	StateVisible  State = "visible"
	StateUnlocked State = "unlocked"
)

// Cell is a derived, never-persisted view of one grid square.
type Cell struct {
	Row        int
	Col        int
	State      State
	Definition *achievement.Definition
	Unlocked   *achievement.Unlocked
	Progress   *achievement.Progress
}

var neighbours = [4][2]int{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

// Resolve recomputes every cell's state from scratch.
// A cell holding an unlocked achievement is unlocked; a cell with an unlocked
// orthogonal neighbour is visible; everything else is locked.
func Resolve(positions []Position, unlocked map[string]bool, size int) [][]State {
	states := make([][]State, size)
	lit := make([][]bool, size)
	for r := range states {
		states[r] = make([]State, size)
		lit[r] = make([]bool, size)
		for c := range states[r] {
			states[r][c] = StateLocked
		}
	}

	for _, p := range positions {
		if inBounds(p.Row, p.Col, size) && unlocked[p.AchievementID] {
			lit[p.Row][p.Col] = true
		}
	}

	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			if lit[r][c] {
				states[r][c] = StateUnlocked
				continue
			}
			for _, d := range neighbours {
				nr, nc := r+d[0], c+d[1]
				if inBounds(nr, nc, size) && lit[nr][nc] {
					states[r][c] = StateVisible
					break
				}
			}
		}
	}
	return states
}

// BuildState resolves visibility and attaches definitions, unlock records and
// progress to each cell. Records and positions for ids the registry no longer
// knows are ignored.
func BuildState(
	positions []Position,
	unlocked map[string]bool,
	records []achievement.Unlocked,
	progress []achievement.Progress,
	cfg Config,
	registry *achievement.Registry,
) [][]Cell {
	known := make([]Position, 0, len(positions))
	for _, p := range positions {
		if _, ok := registry.Get(p.AchievementID); ok {
			known = append(known, p)
		}
	}

	states := Resolve(known, unlocked, cfg.Size)

	cells := make([][]Cell, cfg.Size)
	for r := range cells {
		cells[r] = make([]Cell, cfg.Size)
		for c := range cells[r] {
			cells[r][c] = Cell{Row: r, Col: c, State: states[r][c]}
		}
	}

	recordByID := make(map[string]*achievement.Unlocked, len(records))
	for i := range records {
		recordByID[records[i].AchievementID] = &records[i]
	}
	progressByID := make(map[string]*achievement.Progress, len(progress))
	for i := range progress {
		progressByID[progress[i].AchievementID] = &progress[i]
	}

	for _, p := range known {
		if !inBounds(p.Row, p.Col, cfg.Size) {
			continue
		}
		def, _ := registry.Get(p.AchievementID)
		cell := &cells[p.Row][p.Col]
		cell.Definition = &def
		if unlocked[p.AchievementID] {
			cell.Unlocked = recordByID[p.AchievementID]
		} else {
			cell.Progress = progressByID[p.AchievementID]
		}
	}
	return cells
}

func inBounds(row, col, size int) bool {
	return row >= 0 && row < size && col >= 0 && col < size
}
