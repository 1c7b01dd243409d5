package physics

import "go.uber.org/zap"

const (
	DefaultCapacity = 8
	DefaultMaxDepth = 6
)

// Category selects which membership buckets a query visits.
type Category uint8

const (
	CategoryStatic Category = 1 << iota
	CategoryDynamic

	CategoryAll = CategoryStatic | CategoryDynamic
)

// Body is anything the quadtree can index. The tree calls SetHandle whenever
// it files the body under a node; bodies hand the value back through Handle
// so removal and re-bucketing skip the descent.
type Body interface {
	Key() uint64
	Bounds() AABB
	Static() bool
	Handle() Handle
	SetHandle(Handle)
}

// Handle is the registration record a body caches: the tree it belongs to
// and the arena slot of the node holding it. The zero Handle means the body
// was never registered (or has been removed).
type Handle struct {
	tree *Quadtree
	node int32 // arena index + 1, 0 when not filed under any node
}

// Tree returns the quadtree the body was registered with, or nil.
func (h Handle) Tree() *Quadtree { return h.tree }

// Indexed reports whether the body is currently filed under a node.
func (h Handle) Indexed() bool { return h.tree != nil && h.node > 0 }

type bucket struct {
	items []Body
	pos   map[uint64]int
}

func (b *bucket) add(x Body) {
	if b.pos == nil {
		b.pos = make(map[uint64]int)
	}
	b.pos[x.Key()] = len(b.items)
	b.items = append(b.items, x)
}

func (b *bucket) has(key uint64) bool {
	_, ok := b.pos[key]
	return ok
}

func (b *bucket) remove(key uint64) bool {
	i, ok := b.pos[key]
	if !ok {
		return false
	}
	last := len(b.items) - 1
	if i != last {
		b.items[i] = b.items[last]
		b.pos[b.items[i].Key()] = i
	}
	b.items[last] = nil
	b.items = b.items[:last]
	delete(b.pos, key)
	return true
}

type node struct {
	region   AABB
	depth    int
	parent   int32    // -1 for the root
	children [4]int32 // 0 while the node is a leaf; the root is never a child
	statics  bucket
	dynamics bucket
}

func (n *node) leaf() bool { return n.children[0] == 0 }

func (n *node) count() int { return len(n.statics.items) + len(n.dynamics.items) }

func (n *node) bucketFor(b Body) *bucket {
	if b.Static() {
		return &n.statics
	}
	return &n.dynamics
}

// Quadtree indexes bodies by the smallest node region that fully contains
// them. Nodes live in an arena and are addressed by index, so the handles
// bodies cache stay valid when nodes split.
type Quadtree struct {
	nodes    []node
	capacity int
	maxDepth int
	size     int
	log      *zap.Logger

	// bodies that were indexed and then moved outside the root region
	orphans map[uint64]Body
}

type Option func(*Quadtree)

// WithCapacity sets how many bodies a leaf holds before it splits.
func WithCapacity(n int) Option {
	return func(t *Quadtree) {
		if n > 0 {
			t.capacity = n
		}
	}
}

// WithMaxDepth sets the depth below which nodes may split.
func WithMaxDepth(d int) Option {
	return func(t *Quadtree) {
		if d >= 0 {
			t.maxDepth = d
		}
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(t *Quadtree) {
		if log != nil {
			t.log = log
		}
	}
}

// NewQuadtree returns an empty tree covering region.
func NewQuadtree(region AABB, opts ...Option) *Quadtree {
	t := &Quadtree{
		capacity: DefaultCapacity,
		maxDepth: DefaultMaxDepth,
		log:      zap.NewNop(),
		orphans:  make(map[uint64]Body),
	}
	for _, opt := range opts {
		opt(t)
	}
	t.nodes = append(t.nodes, node{region: region, parent: -1})
	return t
}

// Bounds returns the root region.
func (t *Quadtree) Bounds() AABB { return t.nodes[0].region }

// Len returns the number of indexed bodies.
func (t *Quadtree) Len() int { return t.size }

// NodeCount returns the number of allocated nodes, root included.
func (t *Quadtree) NodeCount() int { return len(t.nodes) }

// Insert files b under the deepest node whose region fully contains its
// box. A body outside the root region is logged and rejected, and stays
// unregistered.
func (t *Quadtree) Insert(b Body) bool {
	if _, ok := t.locate(b); ok {
		return t.Update(b)
	}
	box := b.Bounds()
	if !t.nodes[0].region.Contains(box) {
		t.warnOutside(b, box)
		return false
	}
	delete(t.orphans, b.Key())
	t.insertFrom(0, b, box)
	return true
}

// Remove unregisters b. It returns false when b is not registered.
func (t *Quadtree) Remove(b Body) bool {
	key := b.Key()
	if _, ok := t.orphans[key]; ok {
		delete(t.orphans, key)
		b.SetHandle(Handle{})
		return true
	}
	i, ok := t.locate(b)
	if !ok {
		return false
	}
	t.nodes[i].bucketFor(b).remove(key)
	t.size--
	b.SetHandle(Handle{})
	return true
}

// Update re-buckets b after its box moved. Only b's placement is
// recomputed: if its node still contains the box and no child could take
// it, nothing changes; otherwise b is reinserted from the nearest
// ancestor that contains it. The result is the insert outcome.
//
// b only has to share the key of the registered body; the value filed in
// the tree is always the one originally inserted.
func (t *Quadtree) Update(b Body) bool {
	key := b.Key()
	if b.Handle().tree != t {
		t.log.Warn("update of body not registered with this quadtree", zap.Uint64("key", key))
		return false
	}
	box := b.Bounds()
	if orphan, ok := t.orphans[key]; ok {
		if !t.nodes[0].region.Contains(box) {
			return false
		}
		delete(t.orphans, key)
		t.insertFrom(0, orphan, box)
		return true
	}
	i, ok := t.locate(b)
	if !ok {
		t.log.Warn("update of body missing from quadtree", zap.Uint64("key", key))
		return false
	}

	n := &t.nodes[i]
	if n.region.Contains(box) && (n.leaf() || t.childContaining(i, box) == 0) {
		return true
	}

	bk := n.bucketFor(b)
	stored := bk.items[bk.pos[key]]
	bk.remove(key)
	t.size--

	a := i
	for a >= 0 && !t.nodes[a].region.Contains(box) {
		a = t.nodes[a].parent
	}
	if a < 0 {
		t.warnOutside(stored, box)
		t.orphans[key] = stored
		stored.SetHandle(Handle{tree: t})
		return false
	}
	t.insertFrom(a, stored, box)
	return true
}

// Query appends to dst every body that can overlap region: the buckets of
// each visited node selected by mask, descending only into children whose
// region overlaps region. Each body appears at most once.
func (t *Quadtree) Query(region AABB, mask Category, dst []Body) []Body {
	return t.query(0, region, mask, dst)
}

// Walk calls fn for every node in arena order.
func (t *Quadtree) Walk(fn func(region AABB, depth, count int)) {
	for i := range t.nodes {
		n := &t.nodes[i]
		fn(n.region, n.depth, n.count())
	}
}

func (t *Quadtree) query(i int32, region AABB, mask Category, dst []Body) []Body {
	n := &t.nodes[i]
	if mask&CategoryStatic != 0 {
		dst = append(dst, n.statics.items...)
	}
	if mask&CategoryDynamic != 0 {
		dst = append(dst, n.dynamics.items...)
	}
	if n.leaf() {
		return dst
	}
	for _, c := range n.children {
		if t.nodes[c].region.Overlaps(region) {
			dst = t.query(c, region, mask, dst)
		}
	}
	return dst
}

func (t *Quadtree) insertFrom(i int32, b Body, box AABB) {
	for !t.nodes[i].leaf() {
		c := t.childContaining(i, box)
		if c == 0 {
			break
		}
		i = c
	}
	t.place(i, b)
	t.size++
	t.splitIfFull(i)
}

func (t *Quadtree) splitIfFull(i int32) {
	n := &t.nodes[i]
	if n.leaf() && n.count() > t.capacity && n.depth < t.maxDepth {
		t.split(i)
	}
}

func (t *Quadtree) place(i int32, b Body) {
	t.nodes[i].bucketFor(b).add(b)
	b.SetHandle(Handle{tree: t, node: i + 1})
}

func (t *Quadtree) childContaining(i int32, box AABB) int32 {
	for _, c := range t.nodes[i].children {
		if c != 0 && t.nodes[c].region.Contains(box) {
			return c
		}
	}
	return 0
}

// split allocates four children for leaf i and pushes down every body that
// fits a single quadrant. The rest stay at i. A child left over capacity
// splits in turn, down to maxDepth.
func (t *Quadtree) split(i int32) {
	region := t.nodes[i].region
	depth := t.nodes[i].depth + 1
	first := int32(len(t.nodes))
	for q, r := range region.Quadrants() {
		t.nodes = append(t.nodes, node{region: r, depth: depth, parent: i})
		t.nodes[i].children[q] = first + int32(q)
	}

	n := &t.nodes[i]
	for _, bk := range []*bucket{&n.statics, &n.dynamics} {
		for j := 0; j < len(bk.items); {
			body := bk.items[j]
			c := t.childContaining(i, body.Bounds())
			if c == 0 {
				j++
				continue
			}
			bk.remove(body.Key())
			t.place(c, body)
		}
	}
	for _, c := range t.nodes[i].children {
		t.splitIfFull(c)
	}
}

// locate finds the node holding b, trusting the cached handle when it
// checks out and descending by containment otherwise.
func (t *Quadtree) locate(b Body) (int32, bool) {
	key := b.Key()
	if h := b.Handle(); h.tree == t && h.node > 0 {
		i := h.node - 1
		if int(i) < len(t.nodes) && t.nodes[i].bucketFor(b).has(key) {
			return i, true
		}
	}

	box := b.Bounds()
	i := int32(0)
	for {
		n := &t.nodes[i]
		if n.bucketFor(b).has(key) {
			return i, true
		}
		if n.leaf() {
			return 0, false
		}
		c := t.childContaining(i, box)
		if c == 0 {
			return 0, false
		}
		i = c
	}
}

func (t *Quadtree) warnOutside(b Body, box AABB) {
	t.log.Warn("body outside quadtree bounds",
		zap.Uint64("key", b.Key()),
		zap.Float64("x", box.X()),
		zap.Float64("y", box.Y()),
		zap.Float64("w", box.Width()),
		zap.Float64("h", box.Height()),
	)
}
