package systems

import (
	"fmt"

	"github.com/automoto/quadplat/components"
	cfg "github.com/automoto/quadplat/config"
	"github.com/automoto/quadplat/physics"
	"github.com/automoto/quadplat/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// DrawDebug outlines every quadtree node, shading the ones holding bodies.
func DrawDebug(e *ecs.ECS, screen *ebiten.Image) {
	settings := GetOrCreateSettings(e)
	if !settings.Debug {
		return
	}
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return
	}
	level, ok := CurrentLevel(e)
	if !ok {
		return
	}
	v := newView(components.Camera.Get(cameraEntry), screen)

	level.World.Quadtree().Walk(func(region physics.AABB, depth, count int) {
		if !v.visible(region) {
			return
		}
		x, y, w, h := v.rect(region)
		c := cfg.LightGreen
		if count > 0 {
			c = cfg.Yellow
		}
		vector.StrokeRect(screen, x, y, w, h, 1, c, false)
	})

	// Outline what the hero could collide with this frame.
	hero := level.Hero.Box()
	for _, other := range level.World.EntitiesAt(hero) {
		x, y, w, h := v.rect(other.Box())
		vector.StrokeRect(screen, x, y, w, h, 1, cfg.Red, false)
	}
}

// DrawStats prints frame and index statistics in the top-left corner.
func DrawStats(e *ecs.ECS, screen *ebiten.Image) {
	settings := GetOrCreateSettings(e)
	if !settings.ShowStats && !settings.Debug {
		return
	}
	level, ok := CurrentLevel(e)
	if !ok {
		return
	}
	w := level.World
	hero := level.Hero
	msg := fmt.Sprintf("TPS %.0f  FPS %.0f\nlevel %s  frame %d\nstatics %d  dynamics %d  nodes %d\nhero %s (%.1f, %.1f)  respawns %d\nobstacles %d  movers %d",
		ebiten.ActualTPS(), ebiten.ActualFPS(),
		level.Layout.Name, w.Frame(),
		len(w.Statics()), len(w.Dynamics()), w.Quadtree().NodeCount(),
		hero.State(), hero.Box().X(), hero.Box().Y(), level.Respawns,
		countTagged(e, tags.Obstacle), countTagged(e, tags.Mover),
	)
	ebitenutil.DebugPrintAt(screen, msg, 4, 4)
}

func countTagged(e *ecs.ECS, tag eachable) int {
	n := 0
	tag.Each(e.World, func(*donburi.Entry) { n++ })
	return n
}
