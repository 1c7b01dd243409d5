package entities

import (
	"github.com/automoto/quadplat/config"
	"github.com/automoto/quadplat/physics"
	"go.uber.org/zap"
)

type Axis uint8

const (
	AxisX Axis = iota
	AxisY
)

func (a Axis) String() string {
	if a == AxisX {
		return "x"
	}
	return "y"
}

// Contact describes one overlapping pair found while moving Mover along
// Axis. Previous is the mover's box before this axis step.
type Contact struct {
	Mover    DynamicEntity
	Other    Entity
	Axis     Axis
	Previous physics.AABB
	Delta    float64

	resolver *Resolver
}

// StepOther moves Other first when it is dynamic and has not moved this
// frame yet.
func (c *Contact) StepOther() {
	if d, ok := c.Other.(DynamicEntity); ok {
		c.resolver.Step(d, c.Delta)
	}
}

// Overlapping reports whether the pair still overlaps.
func (c *Contact) Overlapping() bool {
	return c.Mover.Box().Overlaps(c.Other.Box())
}

// FromAbove reports whether the mover was at or above the other entity's
// top before this step.
func (c *Contact) FromAbove() bool {
	return c.Previous.Bottom() >= c.Other.Box().Top()
}

// Rule decides whether a contact blocks the mover. Rules may change either
// entity's state; they must not move the mover.
type Rule func(c *Contact) bool

func Block(*Contact) bool { return true }
func Pass(*Contact) bool  { return false }

// PushThrough lets the other entity move out of the way first, then blocks
// if it is still in the way.
func PushThrough(c *Contact) bool {
	c.StepOther()
	return c.Overlapping()
}

// OneWay blocks only a mover that is not rising and was above the platform.
func OneWay(c *Contact) bool {
	return c.Mover.Motion().VelocityY <= 0 && c.FromAbove()
}

// Carry lifts a dynamic entity resting on a rising mover onto the mover's
// new top instead of blocking the mover. Other contacts push through.
func Carry(c *Contact) bool {
	rider, ok := c.Other.(DynamicEntity)
	if !ok || c.Axis != AxisY || c.Mover.Box().Y() <= c.Previous.Y() ||
		rider.Box().Bottom() < c.Previous.Top() {
		return PushThrough(c)
	}
	rider.Motion().SetY(c.Mover.Box().Top())
	return false
}

type kindPair struct {
	mover, other Kind
}

// Resolver moves dynamic entities one axis at a time and dispatches every
// overlap to the Rule registered for the pair of kinds involved.
type Resolver struct {
	rules   map[kindPair]Rule
	physics config.PhysicsConfig
	log     *zap.Logger

	// one query buffer per nesting level of Step
	buffers [][]physics.Body
	depth   int
}

// NewResolver returns a Resolver with the built-in rules registered.
func NewResolver(phys config.PhysicsConfig, log *zap.Logger) *Resolver {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Resolver{
		rules:   make(map[kindPair]Rule),
		physics: phys,
		log:     log,
	}

	r.Register(KindDynamic, KindStatic, Block)
	r.Register(KindDynamic, KindDynamic, PushThrough)
	r.Register(KindDynamic, KindOneWayPlatform, OneWay)
	r.Register(KindDynamic, KindLadder, Pass)

	// Movers follow their path regardless of level geometry.
	r.Register(KindMover, KindStatic, Pass)
	r.Register(KindMover, KindOneWayPlatform, Pass)
	r.Register(KindMover, KindLadder, Pass)
	r.Register(KindMover, KindDynamic, Carry)

	r.Register(KindHero, KindStatic, heroSolid)
	r.Register(KindHero, KindDynamic, heroDynamic)
	r.Register(KindHero, KindOneWayPlatform, heroOneWay)
	r.Register(KindHero, KindLadder, heroLadder)
	return r
}

// Register sets the rule used when a mover of kind mover overlaps an
// entity of kind other, replacing any previous rule for the pair.
func (r *Resolver) Register(mover, other Kind, rule Rule) {
	r.rules[kindPair{mover, other}] = rule
}

// Resolve reports whether the contact blocks the mover.
func (r *Resolver) Resolve(c *Contact) bool {
	c.resolver = r
	return r.lookup(c.Mover, c.Other)(c)
}

// lookup tries the exact pair, then each side's family, then both
// families. Pairs nobody registered block.
func (r *Resolver) lookup(m, o Entity) Rule {
	mKind, mFamily := m.Kind(), familyOf(m.Static())
	oKind, oFamily := o.Kind(), familyOf(o.Static())
	for _, p := range [...]kindPair{
		{mKind, oKind},
		{mFamily, oKind},
		{mKind, oFamily},
		{mFamily, oFamily},
	} {
		if rule, found := r.rules[p]; found {
			return rule
		}
	}
	return Block
}

// Step runs one frame of movement for m: BeforeMove, the X axis, the Y
// axis, then AfterMove. An entity steps at most once per frame; it returns
// false when m was already stepped or is marked for destruction.
func (r *Resolver) Step(m DynamicEntity, delta float64) bool {
	d := m.Motion()
	if d.updating || m.MarkedForDestruction() {
		return false
	}
	d.updating = true

	m.BeforeMove(delta)
	collidedX := r.move(m, AxisX, d.VelocityX*delta, delta)
	collidedY := r.move(m, AxisY, d.VelocityY*delta, delta)
	m.AfterMove(collidedX, collidedY, delta)
	return true
}

// move translates m by dist along axis and resolves every overlap. Zero
// distances still resolve so contact-driven state stays current while
// idle. When any contact blocks, the axis coordinate goes back to its
// previous value (or flush against the nearest blocker when snapping) and
// the velocity along the axis is zeroed.
func (r *Resolver) move(m DynamicEntity, axis Axis, dist, delta float64) bool {
	d := m.Motion()
	prev := m.Box()
	d.translate(axis, dist)

	tree := d.Quadtree()
	candidates := r.query(tree, m.Box())
	defer r.release()

	blocked := false
	snap := coord(prev, axis) + dist
	for _, body := range candidates {
		other, ok := body.(Entity)
		if !ok || other.ID() == m.ID() || other.MarkedForDestruction() {
			continue
		}
		if !m.Box().Overlaps(other.Box()) {
			continue
		}
		c := Contact{Mover: m, Other: other, Axis: axis, Previous: prev, Delta: delta}
		if !r.Resolve(&c) {
			continue
		}
		blocked = true
		snap = nearer(snap, flushAgainst(prev, other.Box(), axis, dist), dist)

		if ce := r.log.Check(zap.DebugLevel, "contact blocked"); ce != nil {
			ce.Write(
				zap.Uint64("mover", uint64(m.ID())),
				zap.Stringer("mover_kind", m.Kind()),
				zap.Uint64("other", uint64(other.ID())),
				zap.Stringer("other_kind", other.Kind()),
				zap.Stringer("axis", axis),
			)
		}
	}

	if !blocked {
		return false
	}

	pos := coord(prev, axis)
	if r.physics.SnapToContact && dist != 0 {
		pos = nearer(snap, pos, -dist)
	}
	d.place(axis, pos)
	d.stop(axis)
	return true
}

func (r *Resolver) query(tree *physics.Quadtree, region physics.AABB) []physics.Body {
	if r.depth == len(r.buffers) {
		r.buffers = append(r.buffers, nil)
	}
	buf := tree.Query(region, physics.CategoryAll, r.buffers[r.depth][:0])
	r.buffers[r.depth] = buf
	r.depth++
	return buf
}

func (r *Resolver) release() {
	r.depth--
	clear(r.buffers[r.depth])
}

func coord(b physics.AABB, axis Axis) float64 {
	if axis == AxisX {
		return b.X()
	}
	return b.Y()
}

// flushAgainst returns the coordinate that puts prev's leading edge on the
// near edge of other when moving along axis in the direction of dist.
func flushAgainst(prev, other physics.AABB, axis Axis, dist float64) float64 {
	switch {
	case axis == AxisX && dist > 0:
		return other.Left() - prev.Width()
	case axis == AxisX:
		return other.Right()
	case dist > 0:
		return other.Bottom() - prev.Height()
	default:
		return other.Top()
	}
}

// nearer returns whichever of a and b lies less far in the direction of dir.
func nearer(a, b, dir float64) float64 {
	if dir > 0 {
		return min(a, b)
	}
	return max(a, b)
}
