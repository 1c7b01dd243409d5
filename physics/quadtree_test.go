package physics

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/solarlune/resolv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type testBody struct {
	key    uint64
	box    AABB
	static bool
	handle Handle
}

func (b *testBody) Key() uint64        { return b.key }
func (b *testBody) Bounds() AABB       { return b.box }
func (b *testBody) Static() bool       { return b.static }
func (b *testBody) Handle() Handle     { return b.handle }
func (b *testBody) SetHandle(h Handle) { b.handle = h }

func newBody(key uint64, x, y, w, h float64) *testBody {
	return &testBody{key: key, box: NewAABB(x, y, w, h)}
}

func keys(bodies []Body) []uint64 {
	out := make([]uint64, 0, len(bodies))
	for _, b := range bodies {
		out = append(out, b.Key())
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

func overlapping(bodies []Body, region AABB) []Body {
	var out []Body
	for _, b := range bodies {
		if b.Bounds().Overlaps(region) {
			out = append(out, b)
		}
	}
	return out
}

func TestQuadtreeInsertRemoveRoundTrip(t *testing.T) {
	tree := NewQuadtree(NewAABB(0, 0, 100, 100))
	b := newBody(1, 10, 10, 5, 5)

	require.True(t, tree.Insert(b))
	assert.True(t, b.Handle().Indexed())
	assert.Same(t, tree, b.Handle().Tree())
	assert.Equal(t, 1, tree.Len())

	require.True(t, tree.Remove(b))
	assert.False(t, b.Handle().Indexed())
	assert.Equal(t, 0, tree.Len())
	assert.Empty(t, tree.Query(tree.Bounds(), CategoryAll, nil))

	assert.False(t, tree.Remove(b))
}

func TestQuadtreeInsertTwiceDoesNotDuplicate(t *testing.T) {
	tree := NewQuadtree(NewAABB(0, 0, 100, 100))
	b := newBody(1, 10, 10, 5, 5)

	require.True(t, tree.Insert(b))
	require.True(t, tree.Insert(b))

	assert.Equal(t, 1, tree.Len())
	assert.Len(t, tree.Query(tree.Bounds(), CategoryAll, nil), 1)
}

func TestQuadtreeRejectsOutOfBounds(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	tree := NewQuadtree(NewAABB(0, 0, 100, 100), WithLogger(zap.New(core)))
	b := newBody(1, 95, 10, 10, 10)

	assert.False(t, tree.Insert(b))
	assert.Equal(t, 0, tree.Len())
	assert.Equal(t, Handle{}, b.Handle(), "a rejected body stays unregistered")
	assert.Equal(t, 1, logs.FilterMessage("body outside quadtree bounds").Len())

	b.box.SetX(50)
	assert.False(t, tree.Update(b))
	assert.False(t, tree.Remove(b))
	assert.Equal(t, 0, tree.Len())

	require.True(t, tree.Insert(b))
	assert.Equal(t, 1, tree.Len())
}

func TestQuadtreeKeepsEscapedBodyRegistered(t *testing.T) {
	tree := NewQuadtree(NewAABB(0, 0, 100, 100))
	b := newBody(1, 10, 10, 10, 10)
	require.True(t, tree.Insert(b))

	b.box.SetX(150)
	assert.False(t, tree.Update(b))
	assert.Equal(t, 0, tree.Len())
	assert.Same(t, tree, b.Handle().Tree())
	assert.False(t, b.Handle().Indexed())

	// Back inside: Update indexes it again.
	b.box.SetX(50)
	assert.True(t, tree.Update(b))
	assert.True(t, b.Handle().Indexed())
	assert.Equal(t, 1, tree.Len())

	b.box.SetX(150)
	require.False(t, tree.Update(b))
	assert.True(t, tree.Remove(b))
	assert.Equal(t, Handle{}, b.Handle())
	assert.False(t, tree.Remove(b))
	assert.Empty(t, tree.orphans)
}

func TestQuadtreeSplitsPastCapacity(t *testing.T) {
	tree := NewQuadtree(NewAABB(0, 0, 64, 64), WithCapacity(2), WithMaxDepth(3))

	a := newBody(1, 1, 1, 2, 2)
	b := newBody(2, 40, 40, 2, 2)
	straddle := newBody(3, 30, 30, 4, 4)
	require.True(t, tree.Insert(a))
	require.True(t, tree.Insert(b))
	assert.Equal(t, 1, tree.NodeCount())

	require.True(t, tree.Insert(straddle))
	assert.Equal(t, 5, tree.NodeCount())

	depth := func(b *testBody) int { return tree.nodes[b.handle.node-1].depth }
	assert.Equal(t, 1, depth(a))
	assert.Equal(t, 1, depth(b))
	assert.Equal(t, 0, depth(straddle), "a body spanning quadrants stays at the parent")
	assert.NotEqual(t, a.Handle(), b.Handle())

	var total int
	tree.Walk(func(_ AABB, _, count int) { total += count })
	assert.Equal(t, 3, total)
}

func TestQuadtreeSplitCascades(t *testing.T) {
	tree := NewQuadtree(NewAABB(0, 0, 64, 64), WithCapacity(2), WithMaxDepth(3))
	bodies := []*testBody{
		newBody(1, 1, 1, 2, 2),
		newBody(2, 3, 3, 2, 2),
		newBody(3, 5, 5, 2, 2),
	}
	for _, b := range bodies {
		require.True(t, tree.Insert(b))
	}

	tree.Walk(func(region AABB, depth, count int) {
		if depth < 3 {
			assert.LessOrEqual(t, count, 2, "node at depth %d over capacity", depth)
		}
	})
	for _, b := range bodies {
		assert.Equal(t, 3, tree.nodes[b.handle.node-1].depth)
	}
	assert.Equal(t, 13, tree.NodeCount())
}

func TestQuadtreeRespectsMaxDepth(t *testing.T) {
	tree := NewQuadtree(NewAABB(0, 0, 64, 64), WithCapacity(1), WithMaxDepth(0))
	for i := 0; i < 10; i++ {
		require.True(t, tree.Insert(newBody(uint64(i+1), float64(i), float64(i), 1, 1)))
	}
	assert.Equal(t, 1, tree.NodeCount())
	assert.Equal(t, 10, tree.Len())
}

func TestQuadtreeQueryMask(t *testing.T) {
	tree := NewQuadtree(NewAABB(0, 0, 100, 100))
	wall := newBody(1, 0, 0, 10, 10)
	wall.static = true
	crate := newBody(2, 5, 5, 10, 10)
	require.True(t, tree.Insert(wall))
	require.True(t, tree.Insert(crate))

	region := NewAABB(0, 0, 20, 20)
	assert.Equal(t, []uint64{1}, keys(tree.Query(region, CategoryStatic, nil)))
	assert.Equal(t, []uint64{2}, keys(tree.Query(region, CategoryDynamic, nil)))
	assert.Equal(t, []uint64{1, 2}, keys(tree.Query(region, CategoryAll, nil)))
}

func TestQuadtreeUpdateIsIdempotent(t *testing.T) {
	tree := NewQuadtree(NewAABB(0, 0, 128, 128), WithCapacity(1))
	bodies := []*testBody{
		newBody(1, 1, 1, 4, 4),
		newBody(2, 100, 100, 4, 4),
		newBody(3, 60, 60, 8, 8),
	}
	for _, b := range bodies {
		require.True(t, tree.Insert(b))
	}

	before := keys(tree.Query(tree.Bounds(), CategoryAll, nil))
	handle := bodies[0].Handle()
	nodes := tree.NodeCount()

	require.True(t, tree.Update(bodies[0]))
	require.True(t, tree.Update(bodies[0]))

	assert.Equal(t, handle, bodies[0].Handle())
	assert.Equal(t, nodes, tree.NodeCount())
	assert.Equal(t, before, keys(tree.Query(tree.Bounds(), CategoryAll, nil)))
}

func TestQuadtreeUpdateMovesAcrossQuadrants(t *testing.T) {
	tree := NewQuadtree(NewAABB(0, 0, 128, 128), WithCapacity(1))
	mover := newBody(1, 2, 2, 4, 4)
	other := newBody(2, 100, 100, 4, 4)
	require.True(t, tree.Insert(mover))
	require.True(t, tree.Insert(other))

	mover.box.SetPosition(110, 10)
	require.True(t, tree.Update(mover))

	near := tree.Query(NewAABB(108, 8, 8, 8), CategoryAll, nil)
	assert.Equal(t, []uint64{1}, keys(overlapping(near, NewAABB(108, 8, 8, 8))))
	assert.Empty(t, overlapping(tree.Query(NewAABB(0, 0, 10, 10), CategoryAll, nil), NewAABB(0, 0, 10, 10)))
	assert.Equal(t, 2, tree.Len())

	mover.box.SetPosition(200, 10)
	assert.False(t, tree.Update(mover))
	assert.Equal(t, 1, tree.Len())
	assert.False(t, mover.Handle().Indexed())
}

func TestQuadtreeUpdateUnregisteredBody(t *testing.T) {
	tree := NewQuadtree(NewAABB(0, 0, 10, 10))
	assert.False(t, tree.Update(newBody(1, 0, 0, 1, 1)))
	assert.Equal(t, 0, tree.Len())
}

func TestQuadtreeRemoveWithStaleHandle(t *testing.T) {
	tree := NewQuadtree(NewAABB(0, 0, 64, 64), WithCapacity(1))
	a := newBody(1, 1, 1, 2, 2)
	b := newBody(2, 40, 40, 2, 2)
	require.True(t, tree.Insert(a))
	require.True(t, tree.Insert(b))

	a.handle = Handle{tree: tree, node: int32(tree.NodeCount())}
	assert.True(t, tree.Remove(a))
	assert.Equal(t, 1, tree.Len())
}

// Every body whose box overlaps a query region must be returned, and the
// narrow-phased result must agree with resolv's grid broad phase.
func TestQuadtreeQueryMatchesResolv(t *testing.T) {
	const size = 256
	rng := rand.New(rand.NewSource(7))

	tree := NewQuadtree(NewAABB(0, 0, size, size), WithCapacity(4), WithMaxDepth(5))
	space := resolv.NewSpace(size, size, 16, 16)

	var bodies []*testBody
	objects := map[uint64]*resolv.Object{}
	for i := 0; i < 300; i++ {
		w := float64(1 + rng.Intn(24))
		h := float64(1 + rng.Intn(24))
		x := float64(rng.Intn(size - int(w)))
		y := float64(rng.Intn(size - int(h)))

		b := newBody(uint64(i+1), x, y, w, h)
		b.static = i%3 == 0
		require.True(t, tree.Insert(b))
		bodies = append(bodies, b)

		obj := resolv.NewObject(x, y, w, h, "box")
		obj.SetShape(resolv.NewRectangle(0, 0, w, h))
		obj.Data = b.key
		space.Add(obj)
		objects[b.key] = obj
	}

	// Shuffle some bodies around so Update paths are covered too.
	for _, b := range bodies[:100] {
		x := float64(rng.Intn(size - int(b.box.Width())))
		y := float64(rng.Intn(size - int(b.box.Height())))
		b.box.SetPosition(x, y)
		require.True(t, tree.Update(b))

		obj := objects[b.key]
		obj.X, obj.Y = x, y
		obj.Update()
	}
	require.Equal(t, len(bodies), tree.Len())

	for _, b := range bodies {
		got := overlapping(tree.Query(b.box, CategoryAll, nil), b.box)

		var want []uint64
		want = append(want, b.key)
		if check := objects[b.key].Check(0, 0, "box"); check != nil {
			for _, o := range check.ObjectsByTags("box") {
				other := o.Data.(uint64)
				if bodies[other-1].box.Overlaps(b.box) {
					want = append(want, other)
				}
			}
		}
		sort.Slice(want, func(i, j int) bool { return want[i] < want[j] })

		assert.Equal(t, want, keys(got), "body %d", b.key)
	}
}

func TestQuadtreeQueryReturnsNoDuplicates(t *testing.T) {
	tree := NewQuadtree(NewAABB(0, 0, 128, 64), WithCapacity(1))
	for i := 0; i < 32; i++ {
		require.True(t, tree.Insert(newBody(uint64(i+1), float64(i*2), float64(i), 2, 2)))
	}
	got := keys(tree.Query(tree.Bounds(), CategoryAll, nil))
	require.Len(t, got, 32)
	for i := 1; i < len(got); i++ {
		assert.NotEqual(t, got[i-1], got[i])
	}
}
