// Package grid places achievements on a seeded N×N grid and derives which
// cells are revealed from their adjacency to unlocked cells.
package grid

import (
	"time"

	"github.com/example/milestone/internal/core/rng"
)

// Position binds an achievement to a grid cell.
type Position struct {
	AchievementID string
	Row           int
	Col           int
}

// Config is one grid size tier.
type Config struct {
	Version int
	Size    int
}

// Capacity is the number of cells in the grid.
func (c Config) Capacity() int {
	return c.Size * c.Size
}

// Tiers lists the grid sizes in version order.
var Tiers = []Config{
	{Version: 1, Size: 5},
	{Version: 2, Size: 7},
	{Version: 3, Size: 9},
	{Version: 4, Size: 11},
}

// ConfigFor picks the smallest tier that holds catalogSize achievements.
// Past the last tier the size keeps growing by two per version.
func ConfigFor(catalogSize int) Config {
	for _, c := range Tiers {
		if c.Capacity() >= catalogSize {
			return c
		}
	}
	c := Tiers[len(Tiers)-1]
	for c.Capacity() < catalogSize {
		c = Config{Version: c.Version + 1, Size: c.Size + 2}
	}
	return c
}

// ConfigForVersion returns the tier for a persisted version.
func ConfigForVersion(version int) (Config, bool) {
	if version < 1 {
		return Config{}, false
	}
	for _, c := range Tiers {
		if c.Version == version {
			return c, true
		}
	}
	last := Tiers[len(Tiers)-1]
	return Config{Version: version, Size: last.Size + 2*(version-last.Version)}, true
}

// Layout is the persisted grid for one user.
type Layout struct {
	Seed      string
	Version   int
	Size      int
	Positions []Position
	CreatedAt time.Time
}

// Config returns the layout's tier.
func (l Layout) Config() Config {
	return Config{Version: l.Version, Size: l.Size}
}

// Seed derives the grid seed from the oldest habit's creation time,
// falling back to now when no habit exists yet.
func Seed(oldestHabit *time.Time, now time.Time) string {
	if oldestHabit != nil && !oldestHabit.IsZero() {
		return oldestHabit.UTC().Format(time.RFC3339)
	}
	return now.UTC().Format(time.RFC3339Nano)
}

// Generate assigns every id to a unique cell of a size×size grid.
// The starter always sits in the centre. Other ids and the remaining cells are
// shuffled from the same seeded stream and zipped; surplus cells stay empty and
// surplus ids are dropped in shuffle order.
func Generate(seed string, ids []string, starterID string, size int) []Position {
	if size <= 0 {
		return nil
	}
	center := size / 2

	seen := make(map[string]bool, len(ids))
	rest := make([]string, 0, len(ids))
	hasStarter := false
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		if id == starterID {
			hasStarter = true
			continue
		}
		rest = append(rest, id)
	}

	cells := make([]Position, 0, size*size-1)
	for row := 0; row < size; row++ {
		for col := 0; col < size; col++ {
			if row == center && col == center {
				continue
			}
			cells = append(cells, Position{Row: row, Col: col})
		}
	}

	gen := rng.New(seed)
	shuffledIDs := rng.Shuffle(gen, rest)
	shuffledCells := rng.Shuffle(gen, cells)

	positions := make([]Position, 0, len(ids))
	if hasStarter {
		positions = append(positions, Position{AchievementID: starterID, Row: center, Col: center})
	}
	for i, id := range shuffledIDs {
		if i >= len(shuffledCells) {
			break
		}
		cell := shuffledCells[i]
		positions = append(positions, Position{AchievementID: id, Row: cell.Row, Col: cell.Col})
	}
	return positions
}

// NeedsUpgrade reports whether the layout can no longer hold the catalog
// or is missing catalog ids. Upgrades regenerate from the stored seed.
func NeedsUpgrade(layout Layout, ids []string) bool {
	if layout.Config().Capacity() < len(ids) {
		return true
	}
	placed := make(map[string]bool, len(layout.Positions))
	for _, p := range layout.Positions {
		placed[p.AchievementID] = true
	}
	for _, id := range ids {
		if !placed[id] {
			return true
		}
	}
	return false
}
