// Package physics holds the geometry and spatial index used by the
// collision core. It has no dependencies on ebitengine or donburi.
package physics

// AABB is an axis-aligned box anchored at its bottom-left corner in a y-up
// coordinate system. Its size is fixed at construction; only the position
// can change. AABB is a value type, so assignment copies it.
type AABB struct {
	x, y          float64
	width, height float64
}

// NewAABB returns a box with its bottom-left corner at (x, y).
func NewAABB(x, y, width, height float64) AABB {
	return AABB{x: x, y: y, width: width, height: height}
}

func (b AABB) X() float64      { return b.x }
func (b AABB) Y() float64      { return b.y }
func (b AABB) Width() float64  { return b.width }
func (b AABB) Height() float64 { return b.height }

func (b AABB) Left() float64   { return b.x }
func (b AABB) Right() float64  { return b.x + b.width }
func (b AABB) Bottom() float64 { return b.y }
func (b AABB) Top() float64    { return b.y + b.height }

// Center returns the midpoint of the box.
func (b AABB) Center() (float64, float64) {
	return b.x + b.width/2, b.y + b.height/2
}

// Valid reports whether the box has a positive size.
func (b AABB) Valid() bool {
	return b.width > 0 && b.height > 0
}

func (b *AABB) SetX(x float64) { b.x = x }
func (b *AABB) SetY(y float64) { b.y = y }

func (b *AABB) SetPosition(x, y float64) {
	b.x = x
	b.y = y
}

func (b *AABB) TranslateX(dx float64) { b.x += dx }
func (b *AABB) TranslateY(dy float64) { b.y += dy }

// Overlaps reports whether the interiors of a and o intersect. Boxes that
// only share an edge do not overlap, so bodies can rest on each other.
func (b AABB) Overlaps(o AABB) bool {
	return b.x < o.x+o.width && o.x < b.x+b.width &&
		b.y < o.y+o.height && o.y < b.y+b.height
}

// Contains reports whether o lies entirely inside b. Shared edges count as
// inside.
func (b AABB) Contains(o AABB) bool {
	return b.x <= o.x && b.y <= o.y &&
		o.x+o.width <= b.x+b.width && o.y+o.height <= b.y+b.height
}

// Quadrant returns one quarter of b: 0 bottom-left, 1 bottom-right,
// 2 top-right, 3 top-left.
func (b AABB) Quadrant(i int) AABB {
	w, h := b.width/2, b.height/2
	q := AABB{x: b.x, y: b.y, width: w, height: h}
	switch i {
	case 1:
		q.x += w
	case 2:
		q.x += w
		q.y += h
	case 3:
		q.y += h
	}
	return q
}

// Quadrants returns all four quadrants of b.
func (b AABB) Quadrants() [4]AABB {
	var qs [4]AABB
	for i := range qs {
		qs[i] = b.Quadrant(i)
	}
	return qs
}
