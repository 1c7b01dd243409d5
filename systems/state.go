package systems

import (
	"github.com/automoto/quadplat/components"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// UpdateStates mirrors the hero state into its State component.
func UpdateStates(e *ecs.ECS) {
	level, ok := CurrentLevel(e)
	if !ok {
		return
	}
	components.State.Each(e.World, func(entry *donburi.Entry) {
		state := components.State.Get(entry)
		state.PreviousState = state.CurrentState
		state.CurrentState = level.Hero.State()
		if state.CurrentState == state.PreviousState {
			state.StateTimer++
		} else {
			state.StateTimer = 0
		}
	})
}
