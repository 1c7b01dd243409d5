package factory

import (
	"github.com/automoto/quadplat/archetypes"
	"github.com/automoto/quadplat/components"
	"github.com/automoto/quadplat/entities"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// CreateObject spawns the entry presenting e, tagged by its kind. Custom
// kinds fall back to the solid or obstacle archetype.
func CreateObject(ecs *ecs.ECS, e entities.Entity) *donburi.Entry {
	var entry *donburi.Entry
	switch e.Kind() {
	case entities.KindHero:
		entry = archetypes.Hero.Spawn(ecs)
		h := e.(*entities.Hero)
		components.State.SetValue(entry, components.StateData{CurrentState: h.State()})
	case entities.KindOneWayPlatform:
		entry = archetypes.Platform.Spawn(ecs)
	case entities.KindLadder:
		entry = archetypes.Ladder.Spawn(ecs)
	case entities.KindMover:
		entry = archetypes.Mover.Spawn(ecs)
	default:
		if e.Static() {
			entry = archetypes.Solid.Spawn(ecs)
		} else {
			entry = archetypes.Obstacle.Spawn(ecs)
		}
	}
	components.Object.SetValue(entry, components.ObjectData{Entity: e})
	return entry
}
