package entities

import (
	"github.com/automoto/quadplat/config"
	"github.com/automoto/quadplat/physics"
)

// Hero is the player-controlled entity. It reads Input before every move
// and keeps the contact flags its collision rules update.
type Hero struct {
	Dynamic

	cfg   config.HeroConfig
	input Input

	touchingDown bool
	stepDown     bool
	climbing     bool
	onLadder     bool
	facingRight  bool
	state        config.StateID

	// horizontal speed asked for by input this frame, before any blocking
	runVelocity float64
}

func NewHero(id ID, box physics.AABB, cfg config.HeroConfig, input Input) *Hero {
	h := &Hero{
		Dynamic:     Dynamic{Base: NewBase(id, KindHero, false, box)},
		cfg:         cfg,
		facingRight: true,
		state:       config.Airborne,
	}
	h.AccelerationY = -cfg.Gravity
	h.SetInput(input)
	return h
}

func (h *Hero) SetInput(in Input) {
	if in == nil {
		in = noInput{}
	}
	h.input = in
}

func (h *Hero) TouchingDown() bool        { return h.touchingDown }
func (h *Hero) SteppingDown() bool        { return h.stepDown }
func (h *Hero) Climbing() bool            { return h.climbing }
func (h *Hero) OnLadder() bool            { return h.onLadder }
func (h *Hero) FacingRight() bool         { return h.facingRight }
func (h *Hero) State() config.StateID     { return h.state }
func (h *Hero) Config() config.HeroConfig { return h.cfg }

func (h *Hero) BeforeMove(delta float64) {
	h.handleInput()
	h.runVelocity = h.VelocityX
	if !h.climbing {
		h.Dynamic.BeforeMove(delta)
	}
	h.onLadder = false
}

func (h *Hero) handleInput() {
	in := h.input

	h.VelocityX = 0
	if in.Pressed(config.ActionMoveLeft) {
		h.VelocityX = -h.cfg.RunSpeed
		h.facingRight = false
	}
	if in.Pressed(config.ActionMoveRight) {
		h.VelocityX = h.cfg.RunSpeed
		h.facingRight = true
	}

	if in.JustPressed(config.ActionJump) && (h.touchingDown || h.climbing) {
		h.VelocityY = h.cfg.JumpSpeed
		h.climbing = false
	}
	if h.climbing {
		h.VelocityY = 0
	}

	// onLadder still holds last frame's contacts here.
	if in.Pressed(config.ActionMoveUp) && h.onLadder {
		h.VelocityY = h.cfg.ClimbSpeed
		h.climbing = true
	}
	if in.Pressed(config.ActionMoveDown) {
		if h.onLadder {
			h.VelocityY = -h.cfg.ClimbSpeed
			h.climbing = true
		}
		h.stepDown = true
	}
}

func (h *Hero) AfterMove(collidedX, collidedY bool, delta float64) {
	h.stepDown = false
	if !collidedY {
		h.touchingDown = false
		if !h.onLadder {
			h.climbing = false
		}
	}
	h.state = NextHeroState(h.state, HeroOutcome{
		CollidedY:    collidedY,
		TouchingDown: h.touchingDown,
		Climbing:     h.climbing,
		VelocityX:    h.runVelocity,
		VelocityY:    h.VelocityY,
	})
}

// Teleport puts the hero at (x, y) at rest, as after a respawn.
func (h *Hero) Teleport(x, y float64) bool {
	h.VelocityX, h.VelocityY = 0, 0
	h.runVelocity = 0
	h.touchingDown = false
	h.stepDown = false
	h.climbing = false
	h.onLadder = false
	h.state = config.Airborne
	return h.SetPosition(x, y)
}

func (h *Hero) Render(s Surface) {
	sp := h.sprite()
	sp.State = h.state
	sp.FacingRight = h.facingRight
	s.Draw(sp)
}

func (h *Hero) updateTouchingDown(c *Contact) {
	if h.VelocityY <= 0 && c.FromAbove() {
		h.touchingDown = true
	} else if h.VelocityY > 0 {
		h.touchingDown = false
	}
}

func heroSolid(c *Contact) bool {
	c.Mover.(*Hero).updateTouchingDown(c)
	return true
}

func heroDynamic(c *Contact) bool {
	c.Mover.(*Hero).updateTouchingDown(c)
	return PushThrough(c)
}

func heroOneWay(c *Contact) bool {
	h := c.Mover.(*Hero)
	if h.stepDown {
		return false
	}
	h.updateTouchingDown(c)
	return OneWay(c)
}

// heroLadder lets a climbing hero through and lets a falling hero stand on
// the ladder top. A hero already overlapping the ladder this frame is not
// standing on it; this relies on X being resolved before Y.
func heroLadder(c *Contact) bool {
	h := c.Mover.(*Hero)
	blocked := false
	if !h.climbing && h.VelocityY <= 0 && c.FromAbove() && !h.onLadder {
		h.touchingDown = true
		blocked = true
	}
	h.onLadder = true
	return blocked
}
