package entities

import "github.com/automoto/quadplat/config"

// HeroOutcome is what one step of the hero produced.
type HeroOutcome struct {
	CollidedY    bool
	TouchingDown bool
	Climbing     bool

	// VelocityX is the input-driven run speed, kept even when a wall
	// blocked the move.
	VelocityX float64
	VelocityY float64
}

// NextHeroState maps the outcome of a step to the hero's movement state.
// prev is kept when the hero is wedged: blocked vertically, neither on the
// ground nor on a ladder, and not moving.
func NextHeroState(prev config.StateID, o HeroOutcome) config.StateID {
	switch {
	case o.CollidedY && o.TouchingDown:
		if o.VelocityX != 0 {
			return config.Running
		}
		return config.Standing
	case o.Climbing:
		if o.VelocityX == 0 && o.VelocityY == 0 {
			return config.ClimbingIdle
		}
		return config.ClimbingMoving
	case o.CollidedY && o.VelocityX == 0 && o.VelocityY == 0 && prev != config.StateNone:
		return prev
	default:
		return config.Airborne
	}
}
