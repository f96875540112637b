package app

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/example/milestone/internal/core/achievement"
	"github.com/example/milestone/internal/core/grid"
	"github.com/example/milestone/internal/ctxutil"
	"github.com/example/milestone/internal/ports/primary"
	"github.com/example/milestone/internal/ports/secondary"
)

// GetOrCreateGrid returns the user's layout, generating it on first use.
// Concurrent first calls for one user share a single generation, and the
// store keeps whichever layout was saved first.
func (s *AchievementServiceImpl) GetOrCreateGrid(ctx context.Context) (*primary.GridLayout, error) {
	v, err, _ := s.gridGroup.Do(ctxutil.UserFromContext(ctx), func() (any, error) {
		return s.getOrCreateLayout(ctx)
	})
	if err != nil {
		return nil, err
	}
	return s.toGridLayout(v.(*gridLoad)), nil
}

// gridLoad is a stored layout plus whether this call created it.
type gridLoad struct {
	layout  grid.Layout
	created bool
}

func (s *AchievementServiceImpl) getOrCreateLayout(ctx context.Context) (*gridLoad, error) {
	record, err := s.gridRepo.Get(ctx)
	if err == nil {
		return &gridLoad{layout: fromGridRecord(record)}, nil
	}
	if !errors.Is(err, secondary.ErrNotFound) {
		return nil, fmt.Errorf("failed to load grid: %w", err)
	}

	seed, err := s.gridSeed(ctx)
	if err != nil {
		return nil, err
	}
	layout := s.generateLayout(seed, grid.ConfigFor(s.registry.Len()))

	created, err := s.gridRepo.CreateIfAbsent(ctx, toGridRecord(layout))
	if err != nil {
		return nil, fmt.Errorf("failed to save grid: %w", err)
	}

	// Re-read so a layout saved concurrently by another process wins.
	record, err = s.gridRepo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to reload grid: %w", err)
	}

	if created {
		gridOperationsTotal.WithLabelValues("create").Inc()
		s.audit(ctx, func() error { return s.logWriter.LogCreate(ctx, secondary.EntityGrid, "grid") })
		s.logger.Info("grid created", zap.String("seed", layout.Seed), zap.Int("size", layout.Size))
	}
	return &gridLoad{layout: fromGridRecord(record), created: created}, nil
}

// gridSeed derives the seed from the oldest habit, or the current time.
func (s *AchievementServiceImpl) gridSeed(ctx context.Context) (string, error) {
	oldest, err := s.factsReader.OldestHabitCreatedAt(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read oldest habit: %w", err)
	}
	if oldest == "" {
		return grid.Seed(nil, s.now()), nil
	}
	t, err := time.Parse(time.RFC3339, oldest)
	if err != nil {
		return "", fmt.Errorf("invalid habit creation time %q: %w", oldest, err)
	}
	return grid.Seed(&t, s.now()), nil
}

func (s *AchievementServiceImpl) generateLayout(seed string, cfg grid.Config) grid.Layout {
	return grid.Layout{
		Seed:      seed,
		Version:   cfg.Version,
		Size:      cfg.Size,
		Positions: grid.Generate(seed, s.registry.IDs(), s.starterID, cfg.Size),
		CreatedAt: s.now(),
	}
}

// BuildGridState derives the renderable grid for the user.
func (s *AchievementServiceImpl) BuildGridState(ctx context.Context) (*primary.GridState, error) {
	v, err, _ := s.gridGroup.Do(ctxutil.UserFromContext(ctx), func() (any, error) {
		return s.getOrCreateLayout(ctx)
	})
	if err != nil {
		return nil, err
	}
	load := v.(*gridLoad)

	view, err := s.loadUserView(ctx)
	if err != nil {
		return nil, err
	}

	cells := grid.BuildState(load.layout.Positions, view.unlocked, view.records, view.progress, load.layout.Config(), s.registry)

	state := &primary.GridState{
		Layout: s.toGridLayout(load),
		Cells:  make([][]*primary.GridCell, len(cells)),
	}
	for r, row := range cells {
		state.Cells[r] = make([]*primary.GridCell, len(row))
		for c, cell := range row {
			out := &primary.GridCell{Row: cell.Row, Col: cell.Col, State: string(cell.State)}
			if cell.Definition != nil {
				out.Achievement = toAchievementDTO(*cell.Definition, cell.Unlocked, cell.Progress, view.unlocked)
			}
			state.Cells[r][c] = out
		}
	}
	return state, nil
}

// ResetGrid discards the layout and generates a new one from a fresh seed.
// Unlock records are untouched.
func (s *AchievementServiceImpl) ResetGrid(ctx context.Context) (*primary.GridLayout, error) {
	release := s.locks.lock(ctxutil.UserFromContext(ctx))
	defer release()

	oldSeed := ""
	if record, err := s.gridRepo.Get(ctx); err == nil {
		oldSeed = record.Seed
	} else if !errors.Is(err, secondary.ErrNotFound) {
		return nil, fmt.Errorf("failed to load grid: %w", err)
	}

	layout := s.generateLayout(grid.Seed(nil, s.now()), grid.ConfigFor(s.registry.Len()))
	if err := s.gridRepo.Replace(ctx, toGridRecord(layout)); err != nil {
		return nil, fmt.Errorf("failed to reset grid: %w", err)
	}

	gridOperationsTotal.WithLabelValues("reset").Inc()
	s.audit(ctx, func() error { return s.logWriter.LogUpdate(ctx, secondary.EntityGrid, "grid", "seed", oldSeed, layout.Seed) })
	s.logger.Info("grid reset", zap.String("seed", layout.Seed))

	return s.toGridLayout(&gridLoad{layout: layout, created: true}), nil
}

// UpgradeGrid regenerates the layout from its stored seed when the catalog
// has outgrown it. The tier never shrinks.
func (s *AchievementServiceImpl) UpgradeGrid(ctx context.Context) (*primary.GridLayout, error) {
	release := s.locks.lock(ctxutil.UserFromContext(ctx))
	defer release()

	load, err := s.getOrCreateLayout(ctx)
	if err != nil {
		return nil, err
	}
	current := load.layout
	if !grid.NeedsUpgrade(current, s.registry.IDs()) {
		return s.toGridLayout(load), nil
	}

	cfg := grid.ConfigFor(s.registry.Len())
	if cfg.Version < current.Version {
		cfg = current.Config()
	}
	upgraded := s.generateLayout(current.Seed, cfg)
	upgraded.CreatedAt = current.CreatedAt

	if err := s.gridRepo.Replace(ctx, toGridRecord(upgraded)); err != nil {
		return nil, fmt.Errorf("failed to upgrade grid: %w", err)
	}

	gridOperationsTotal.WithLabelValues("upgrade").Inc()
	s.audit(ctx, func() error {
		return s.logWriter.LogUpdate(ctx, secondary.EntityGrid, "grid", "version", strconv.Itoa(current.Version), strconv.Itoa(upgraded.Version))
	})
	s.logger.Info("grid upgraded", zap.Int("from_version", current.Version), zap.Int("to_version", upgraded.Version))

	return s.toGridLayout(&gridLoad{layout: upgraded}), nil
}

func (s *AchievementServiceImpl) toGridLayout(load *gridLoad) *primary.GridLayout {
	l := load.layout
	return &primary.GridLayout{
		Seed:         l.Seed,
		Version:      l.Version,
		Size:         l.Size,
		Placed:       len(l.Positions),
		CreatedAt:    l.CreatedAt.Format(time.RFC3339),
		NeedsUpgrade: grid.NeedsUpgrade(l, s.registry.IDs()),
		Created:      load.created,
	}
}

// audit writes an audit entry; failures are logged, never returned.
func (s *AchievementServiceImpl) audit(ctx context.Context, write func() error) {
	if s.logWriter == nil {
		return
	}
	if err := write(); err != nil {
		s.logger.Warn("failed to write audit log", zap.Error(err))
	}
}

func toGridRecord(l grid.Layout) *secondary.GridRecord {
	positions := make([]secondary.GridPositionRecord, len(l.Positions))
	for i, p := range l.Positions {
		positions[i] = secondary.GridPositionRecord{AchievementID: p.AchievementID, Row: p.Row, Col: p.Col}
	}
	return &secondary.GridRecord{
		Seed:      l.Seed,
		Version:   l.Version,
		Size:      l.Size,
		Positions: positions,
		CreatedAt: l.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func fromGridRecord(r *secondary.GridRecord) grid.Layout {
	positions := make([]grid.Position, len(r.Positions))
	for i, p := range r.Positions {
		positions[i] = grid.Position{AchievementID: p.AchievementID, Row: p.Row, Col: p.Col}
	}
	createdAt, _ := time.Parse(time.RFC3339, r.CreatedAt)
	return grid.Layout{
		Seed:      r.Seed,
		Version:   r.Version,
		Size:      r.Size,
		Positions: positions,
		CreatedAt: createdAt,
	}
}

// userView is the user's unlock and progress state keyed for lookups.
type userView struct {
	unlocked map[string]bool
	records  []achievement.Unlocked
	progress []achievement.Progress
}

func (s *AchievementServiceImpl) loadUserView(ctx context.Context) (*userView, error) {
	unlockRecords, err := s.unlockRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load unlocked achievements: %w", err)
	}
	progressRecords, err := s.progressRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load progress: %w", err)
	}

	view := &userView{unlocked: make(map[string]bool, len(unlockRecords))}
	for _, r := range unlockRecords {
		unlockedAt, _ := time.Parse(time.RFC3339, r.UnlockedAt)
		view.unlocked[r.AchievementID] = true
		view.records = append(view.records, achievement.Unlocked{
			AchievementID: r.AchievementID,
			UnlockedAt:    unlockedAt,
			TriggerTaskID: r.TriggerTaskID,
			Metadata:      r.Metadata,
			Viewed:        r.Viewed,
		})
	}
	for _, p := range progressRecords {
		updatedAt, _ := time.Parse(time.RFC3339, p.LastUpdatedAt)
		view.progress = append(view.progress, achievement.Progress{
			AchievementID: p.AchievementID,
			Current:       p.Current,
			Target:        p.Target,
			Percentage:    p.Percentage,
			LastUpdatedAt: updatedAt,
		})
	}
	return view, nil
}
