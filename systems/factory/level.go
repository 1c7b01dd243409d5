package factory

import (
	"fmt"

	"github.com/automoto/quadplat/archetypes"
	"github.com/automoto/quadplat/assets"
	"github.com/automoto/quadplat/components"
	cfg "github.com/automoto/quadplat/config"
	"github.com/automoto/quadplat/entities"
	"github.com/automoto/quadplat/world"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// CreateLevelAtIndex builds the world for the level at levelIndex (wrapping
// around the catalogue) and spawns an entry for every entity in it. The hero
// reads input and is put back at its spawn whenever it leaves the world.
func CreateLevelAtIndex(ecs *ecs.ECS, loader *assets.LevelLoader, levelIndex int, input entities.Input, log *zap.Logger) (*donburi.Entry, error) {
	layout, err := loader.LevelAt(levelIndex)
	if err != nil {
		return nil, err
	}
	names, _ := loader.Names()
	levelIndex = ((levelIndex % len(names)) + len(names)) % len(names)

	levelData := &components.LevelData{
		Loader:     loader,
		Layout:     layout,
		LevelIndex: levelIndex,
	}
	respawn := func(d entities.DynamicEntity) bool {
		if d != levelData.Hero {
			return false
		}
		levelData.Respawns++
		log.Info("hero respawned", zap.String("level", layout.Name), zap.Int("respawns", levelData.Respawns))
		return levelData.Hero.Teleport(layout.HeroSpawn.X, layout.HeroSpawn.Y)
	}

	w, hero, err := world.FromLayout(layout, assets.FS(), input, cfg.C.Hero,
		world.WithLogger(log),
		world.WithQuadtree(cfg.C.Quadtree),
		world.WithPhysics(cfg.C.Physics),
		world.WithEscapeHandler(respawn),
	)
	if err != nil {
		return nil, fmt.Errorf("create level %d: %w", levelIndex, err)
	}
	levelData.World, levelData.Hero = w, hero

	level := archetypes.Level.Spawn(ecs)
	components.Level.Set(level, levelData)

	for _, e := range w.Statics() {
		CreateObject(ecs, e)
	}
	for _, d := range w.Dynamics() {
		CreateObject(ecs, d)
	}
	return level, nil
}

// DestroyLevel removes the level entry and every object entry.
func DestroyLevel(ecs *ecs.ECS) {
	var doomed []donburi.Entity
	components.Object.Each(ecs.World, func(e *donburi.Entry) {
		doomed = append(doomed, e.Entity())
	})
	components.Level.Each(ecs.World, func(e *donburi.Entry) {
		doomed = append(doomed, e.Entity())
	})
	for _, e := range doomed {
		ecs.World.Remove(e)
	}
}
