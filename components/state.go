package components

import (
	cfg "github.com/automoto/quadplat/config"
	"github.com/yohamta/donburi"
)

// StateData mirrors the hero state so systems can react to transitions.
type StateData struct {
	CurrentState  cfg.StateID
	PreviousState cfg.StateID
	StateTimer    int // ticks spent in CurrentState
}

var State = donburi.NewComponentType[StateData]()
