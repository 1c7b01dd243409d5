package entities

import "github.com/automoto/quadplat/physics"

// Static is an entity that never moves on its own. Solids, one-way
// platforms and ladders are all Statics that differ only by Kind.
type Static struct {
	Base
}

func NewStatic(id ID, kind Kind, box physics.AABB) *Static {
	return &Static{Base: NewBase(id, kind, true, box)}
}

func NewSolid(id ID, box physics.AABB) *Static {
	return NewStatic(id, KindStatic, box)
}

// NewOneWayPlatform returns a platform that only blocks entities landing on
// it from above.
func NewOneWayPlatform(id ID, box physics.AABB) *Static {
	return NewStatic(id, KindOneWayPlatform, box)
}

func NewLadder(id ID, box physics.AABB) *Static {
	return NewStatic(id, KindLadder, box)
}
