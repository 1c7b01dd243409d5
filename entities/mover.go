package entities

import (
	"github.com/automoto/quadplat/physics"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Mover is a dynamic platform travelling back and forth between its spawn
// point and spawn+offset. Each frame its velocity is set to whatever
// reaches the next tweened point, so it moves through the normal collision
// pipeline and carries whatever rests on it upwards.
type Mover struct {
	Dynamic

	originX, originY float64
	offsetX, offsetY float64
	path             *gween.Sequence
}

// NewMover returns a Mover that takes duration seconds for each leg.
func NewMover(id ID, box physics.AABB, offsetX, offsetY, duration float64) *Mover {
	path := gween.NewSequence()
	path.Add(
		gween.New(0, 1, float32(duration), ease.InOutSine),
		gween.New(1, 0, float32(duration), ease.InOutSine),
	)
	path.SetLoop(-1)

	return &Mover{
		Dynamic: Dynamic{Base: NewBase(id, KindMover, false, box)},
		originX: box.X(),
		originY: box.Y(),
		offsetX: offsetX,
		offsetY: offsetY,
		path:    path,
	}
}

// Offset returns the far end of the path relative to the spawn point.
func (m *Mover) Offset() (float64, float64) { return m.offsetX, m.offsetY }

func (m *Mover) BeforeMove(delta float64) {
	if delta <= 0 {
		m.VelocityX, m.VelocityY = 0, 0
		return
	}
	t, _, _ := m.path.Update(float32(delta))
	box := m.Box()
	m.VelocityX = (m.originX + m.offsetX*float64(t) - box.X()) / delta
	m.VelocityY = (m.originY + m.offsetY*float64(t) - box.Y()) / delta
}
