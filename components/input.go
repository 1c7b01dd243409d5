package components

import (
	cfg "github.com/automoto/quadplat/config"
	"github.com/yohamta/donburi"
)

// ActionState represents the temporal state of an action
type ActionState struct {
	Pressed      bool // Currently held down
	JustPressed  bool // Pressed this frame
	JustReleased bool // Released this frame
}

// InputData stores the current and previous frame's pressed state for all actions.
// JustPressed/JustReleased are computed on-demand by comparing frames.
// It satisfies entities.Input so the hero reads it directly.
type InputData struct {
	Current  [cfg.ActionCount]bool
	Previous [cfg.ActionCount]bool
}

var Input = donburi.NewComponentType[InputData]()

// Advance starts a new frame: current becomes previous and everything is
// released.
func (in *InputData) Advance() {
	in.Previous = in.Current
	in.Current = [cfg.ActionCount]bool{}
}

func (in *InputData) Action(id cfg.ActionID) ActionState {
	curr, prev := in.Current[id], in.Previous[id]
	return ActionState{
		Pressed:      curr,
		JustPressed:  curr && !prev,
		JustReleased: !curr && prev,
	}
}

func (in *InputData) Pressed(id cfg.ActionID) bool     { return in.Current[id] }
func (in *InputData) JustPressed(id cfg.ActionID) bool { return in.Current[id] && !in.Previous[id] }
