package entities

import (
	"github.com/automoto/quadplat/config"
	"github.com/automoto/quadplat/physics"
)

// Sprite is what an entity hands to a Surface when drawn.
type Sprite struct {
	ID          ID
	Kind        Kind
	Box         physics.AABB
	State       config.StateID
	FacingRight bool
}

// Surface draws entities at their current position.
type Surface interface {
	Draw(Sprite)
}

// Input answers questions about the player's controls for the current
// frame.
type Input interface {
	Pressed(config.ActionID) bool
	JustPressed(config.ActionID) bool
}

type noInput struct{}

func (noInput) Pressed(config.ActionID) bool     { return false }
func (noInput) JustPressed(config.ActionID) bool { return false }
