package archetypes

import (
	"github.com/automoto/quadplat/components"
	cfg "github.com/automoto/quadplat/config"
	"github.com/automoto/quadplat/tags"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

var (
	Hero = newArchetype(
		tags.Hero,
		components.Object,
		components.State,
	)
	Solid = newArchetype(
		tags.Solid,
		components.Object,
	)
	Platform = newArchetype(
		tags.Platform,
		components.Object,
	)
	Ladder = newArchetype(
		tags.Ladder,
		components.Object,
	)
	Obstacle = newArchetype(
		tags.Obstacle,
		components.Object,
	)
	Mover = newArchetype(
		tags.Mover,
		components.Object,
	)
	Level = newArchetype(
		components.Level,
	)
	Camera = newArchetype(
		components.Camera,
	)
)

type archetype struct {
	components []donburi.IComponentType
}

func newArchetype(cs ...donburi.IComponentType) *archetype {
	return &archetype{
		components: cs,
	}
}

func (a *archetype) Spawn(ecs *ecs.ECS, cs ...donburi.IComponentType) *donburi.Entry {
	e := ecs.World.Entry(ecs.Create(
		cfg.Default,
		append(a.components, cs...)...,
	))
	return e
}
