package world

import (
	"fmt"
	"io/fs"

	"github.com/automoto/quadplat/config"
	"github.com/automoto/quadplat/entities"
	"github.com/automoto/quadplat/physics"
	"github.com/automoto/quadplat/shared/leveldata"
	"go.uber.org/zap"
)

// FromLayout builds a world sized to layout and fills it.
func FromLayout(layout *leveldata.Layout, assets fs.FS, input entities.Input, heroCfg config.HeroConfig, opts ...Option) (*World, *entities.Hero, error) {
	w := New(layout.Width, layout.Height, assets, opts...)
	hero, err := w.Populate(layout, input, heroCfg)
	if err != nil {
		return nil, nil, err
	}
	return w, hero, nil
}

// Populate adds every entity described by layout, statics first, and the
// hero last so that crates and movers step before it.
func (w *World) Populate(layout *leveldata.Layout, input entities.Input, heroCfg config.HeroConfig) (*entities.Hero, error) {
	statics := []struct {
		rects []leveldata.Rect
		add   func(physics.AABB) (*entities.Static, error)
	}{
		{layout.Solids, w.AddSolid},
		{layout.Platforms, w.AddOneWayPlatform},
		{layout.Ladders, w.AddLadder},
	}
	for _, group := range statics {
		for _, r := range group.rects {
			if _, err := group.add(box(r)); err != nil {
				return nil, fmt.Errorf("populate %s: %w", layout.Name, err)
			}
		}
	}

	for _, r := range layout.Obstacles {
		if _, err := w.AddObstacle(box(r)); err != nil {
			return nil, fmt.Errorf("populate %s: %w", layout.Name, err)
		}
	}
	for _, m := range layout.Movers {
		if _, err := w.AddMover(box(m.Rect), m.DX, m.DY, m.Duration); err != nil {
			return nil, fmt.Errorf("populate %s: %w", layout.Name, err)
		}
	}

	spawn := physics.NewAABB(layout.HeroSpawn.X, layout.HeroSpawn.Y, heroCfg.Width, heroCfg.Height)
	hero, err := w.AddHero(spawn, heroCfg, input)
	if err != nil {
		return nil, fmt.Errorf("populate %s: hero: %w", layout.Name, err)
	}

	w.log.Info("level populated",
		zap.String("level", layout.Name),
		zap.Int("statics", len(w.statics)),
		zap.Int("dynamics", len(w.dynamics)),
		zap.Int("nodes", w.tree.NodeCount()),
	)
	return hero, nil
}

func box(r leveldata.Rect) physics.AABB {
	return physics.NewAABB(r.X, r.Y, r.W, r.H)
}
