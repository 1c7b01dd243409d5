// Package entities implements the collidable objects of a level and the
// rules that decide what happens when they touch.
package entities

import (
	"fmt"

	"github.com/automoto/quadplat/physics"
)

// ID identifies an entity within one World. Entities compare equal by ID.
type ID uint64

// IDSource hands out increasing IDs starting at 1.
type IDSource struct {
	last ID
}

func (s *IDSource) Next() ID {
	s.last++
	return s.last
}

// Entity is anything a World owns and indexes.
type Entity interface {
	physics.Body

	ID() ID
	Kind() Kind
	Box() physics.AABB
	MarkForDestruction()
	MarkedForDestruction() bool
	Render(Surface)
}

// Base carries the state shared by every entity. Concrete types embed it.
type Base struct {
	id     ID
	kind   Kind
	static bool
	box    physics.AABB
	handle physics.Handle
	marked bool
}

// NewBase returns the shared state for a new entity. static selects which
// quadtree bucket the entity lives in and which rule family it falls back to.
func NewBase(id ID, kind Kind, static bool, box physics.AABB) Base {
	return Base{id: id, kind: kind, static: static, box: box}
}

func (b *Base) ID() ID                      { return b.id }
func (b *Base) Kind() Kind                  { return b.kind }
func (b *Base) Key() uint64                 { return uint64(b.id) }
func (b *Base) Static() bool                { return b.static }
func (b *Base) Box() physics.AABB           { return b.box }
func (b *Base) Bounds() physics.AABB        { return b.box }
func (b *Base) Handle() physics.Handle      { return b.handle }
func (b *Base) SetHandle(h physics.Handle)  { b.handle = h }
func (b *Base) MarkForDestruction()         { b.marked = true }
func (b *Base) MarkedForDestruction() bool  { return b.marked }
func (b *Base) Family() Kind                { return familyOf(b.static) }
func (b *Base) Render(s Surface)            { s.Draw(b.sprite()) }
func (b *Base) sprite() Sprite              { return Sprite{ID: b.id, Kind: b.kind, Box: b.box} }
func (b *Base) Quadtree() *physics.Quadtree { return b.handle.Tree() }
func (b *Base) Indexed() bool               { return b.handle.Indexed() }
func (b *Base) String() string              { return fmt.Sprintf("%s#%d", b.kind, b.id) }

// The mutators below move the box and re-bucket the entity. They report
// whether the entity is still inside the quadtree region. Moving an entity
// that was never added to a quadtree panics.

func (b *Base) SetX(x float64) bool {
	b.box.SetX(x)
	return b.reindex()
}

func (b *Base) SetY(y float64) bool {
	b.box.SetY(y)
	return b.reindex()
}

func (b *Base) SetPosition(x, y float64) bool {
	b.box.SetPosition(x, y)
	return b.reindex()
}

func (b *Base) TranslateX(dx float64) bool {
	b.box.TranslateX(dx)
	return b.reindex()
}

func (b *Base) TranslateY(dy float64) bool {
	b.box.TranslateY(dy)
	return b.reindex()
}

func (b *Base) reindex() bool {
	tree := b.handle.Tree()
	if tree == nil {
		panic(fmt.Sprintf("entities: %s moved before it was added to a quadtree", b))
	}
	return tree.Update(b)
}
