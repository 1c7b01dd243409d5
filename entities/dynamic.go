package entities

import "github.com/automoto/quadplat/physics"

// DynamicEntity is an entity the Resolver moves every frame.
type DynamicEntity interface {
	Entity

	Motion() *Dynamic
	BeforeMove(delta float64)
	AfterMove(collidedX, collidedY bool, delta float64)
}

// Dynamic is a moving entity. Used on its own it is a generic obstacle
// (a crate) that integrates its acceleration and stops against whatever it
// hits. Hero and Mover embed it and override the move hooks.
type Dynamic struct {
	Base

	VelocityX     float64
	VelocityY     float64
	AccelerationX float64
	AccelerationY float64

	updating bool
}

func NewDynamic(id ID, kind Kind, box physics.AABB) *Dynamic {
	return &Dynamic{Base: NewBase(id, kind, false, box)}
}

// NewObstacle returns a generic dynamic entity pulled down by gravity.
func NewObstacle(id ID, box physics.AABB, gravity float64) *Dynamic {
	d := NewDynamic(id, KindDynamic, box)
	d.AccelerationY = -gravity
	return d
}

func (d *Dynamic) Motion() *Dynamic { return d }

// Updating reports whether the entity already stepped this frame.
func (d *Dynamic) Updating() bool { return d.updating }

// ResetUpdating re-arms the entity for the next frame.
func (d *Dynamic) ResetUpdating() { d.updating = false }

func (d *Dynamic) BeforeMove(delta float64) {
	d.VelocityX += d.AccelerationX * delta
	d.VelocityY += d.AccelerationY * delta
}

func (d *Dynamic) AfterMove(collidedX, collidedY bool, delta float64) {}

func (d *Dynamic) translate(axis Axis, dist float64) {
	if axis == AxisX {
		d.TranslateX(dist)
	} else {
		d.TranslateY(dist)
	}
}

func (d *Dynamic) place(axis Axis, pos float64) {
	if axis == AxisX {
		d.SetX(pos)
	} else {
		d.SetY(pos)
	}
}

func (d *Dynamic) stop(axis Axis) {
	if axis == AxisX {
		d.VelocityX = 0
	} else {
		d.VelocityY = 0
	}
}
