// Package world owns every entity of a running level and advances them one
// frame at a time.
package world

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/automoto/quadplat/config"
	"github.com/automoto/quadplat/entities"
	"github.com/automoto/quadplat/physics"
	"go.uber.org/zap"
)

var (
	ErrOutOfBounds = errors.New("entity outside world bounds")
	ErrInvalidBox  = errors.New("entity box must have a positive size")
)

// EscapeHandler is called for a dynamic entity that left the world region
// during a frame. Returning false destroys the entity.
type EscapeHandler func(d entities.DynamicEntity) bool

// World owns the statics and dynamics of one level. The quadtree only
// indexes them.
type World struct {
	width, height float64
	assets        fs.FS

	log      *zap.Logger
	tree     *physics.Quadtree
	resolver *entities.Resolver
	ids      entities.IDSource

	statics  []entities.Entity
	dynamics []entities.DynamicEntity

	treeCfg  config.QuadtreeConfig
	physCfg  config.PhysicsConfig
	onEscape EscapeHandler
	frame    uint64
}

type Option func(*World)

func WithLogger(log *zap.Logger) Option {
	return func(w *World) {
		if log != nil {
			w.log = log
		}
	}
}

func WithQuadtree(cfg config.QuadtreeConfig) Option {
	return func(w *World) { w.treeCfg = cfg }
}

func WithPhysics(cfg config.PhysicsConfig) Option {
	return func(w *World) { w.physCfg = cfg }
}

func WithEscapeHandler(fn EscapeHandler) Option {
	return func(w *World) { w.onEscape = fn }
}

// New returns an empty world covering (0,0)-(width,height). assets is kept
// for collaborators that load level resources and may be nil.
func New(width, height float64, assets fs.FS, opts ...Option) *World {
	defaults := config.Defaults()
	w := &World{
		width:   width,
		height:  height,
		assets:  assets,
		log:     zap.NewNop(),
		treeCfg: defaults.Quadtree,
		physCfg: defaults.Physics,
	}
	for _, opt := range opts {
		opt(w)
	}

	w.tree = physics.NewQuadtree(physics.NewAABB(0, 0, width, height),
		physics.WithCapacity(w.treeCfg.Capacity),
		physics.WithMaxDepth(w.treeCfg.MaxDepth),
		physics.WithLogger(w.log.Named("quadtree")),
	)
	w.resolver = entities.NewResolver(w.physCfg, w.log.Named("resolver"))
	return w
}

func (w *World) Bounds() physics.AABB          { return w.tree.Bounds() }
func (w *World) Width() float64                { return w.width }
func (w *World) Height() float64               { return w.height }
func (w *World) Assets() fs.FS                 { return w.assets }
func (w *World) Frame() uint64                 { return w.frame }
func (w *World) Quadtree() *physics.Quadtree   { return w.tree }
func (w *World) Resolver() *entities.Resolver  { return w.resolver }
func (w *World) Physics() config.PhysicsConfig { return w.physCfg }

// Statics and Dynamics return the live collections. Callers must not
// modify them.
func (w *World) Statics() []entities.Entity         { return w.statics }
func (w *World) Dynamics() []entities.DynamicEntity { return w.dynamics }

// NextID reserves an ID for an entity built outside the factories.
func (w *World) NextID() entities.ID { return w.ids.Next() }

// Contains reports whether box lies entirely inside the world.
func (w *World) Contains(box physics.AABB) bool {
	return w.tree.Bounds().Contains(box)
}

// EntitiesAt returns the entities whose boxes overlap region.
func (w *World) EntitiesAt(region physics.AABB) []entities.Entity {
	bodies := w.tree.Query(region, physics.CategoryAll, nil)
	found := make([]entities.Entity, 0, len(bodies))
	for _, b := range bodies {
		e := b.(entities.Entity)
		if e.Box().Overlaps(region) {
			found = append(found, e)
		}
	}
	return found
}

func (w *World) admit(e entities.Entity) error {
	box := e.Box()
	if !box.Valid() {
		return fmt.Errorf("add %s: %w", e, ErrInvalidBox)
	}
	if !w.Contains(box) {
		return fmt.Errorf("add %s at (%g, %g): %w", e, box.X(), box.Y(), ErrOutOfBounds)
	}
	if !w.tree.Insert(e) {
		return fmt.Errorf("add %s: %w", e, ErrOutOfBounds)
	}
	return nil
}

// AddStatic registers a static entity of any kind.
func (w *World) AddStatic(e entities.Entity) error {
	if err := w.admit(e); err != nil {
		return err
	}
	w.statics = append(w.statics, e)
	return nil
}

// AddDynamic registers a dynamic entity of any kind. Dynamics step in the
// order they were added.
func (w *World) AddDynamic(d entities.DynamicEntity) error {
	if err := w.admit(d); err != nil {
		return err
	}
	w.dynamics = append(w.dynamics, d)
	return nil
}

func (w *World) AddSolid(box physics.AABB) (*entities.Static, error) {
	s := entities.NewSolid(w.NextID(), box)
	return s, w.AddStatic(s)
}

func (w *World) AddOneWayPlatform(box physics.AABB) (*entities.Static, error) {
	s := entities.NewOneWayPlatform(w.NextID(), box)
	return s, w.AddStatic(s)
}

func (w *World) AddLadder(box physics.AABB) (*entities.Static, error) {
	s := entities.NewLadder(w.NextID(), box)
	return s, w.AddStatic(s)
}

// AddObstacle adds a crate pulled down by the world's gravity.
func (w *World) AddObstacle(box physics.AABB) (*entities.Dynamic, error) {
	d := entities.NewObstacle(w.NextID(), box, w.physCfg.Gravity)
	return d, w.AddDynamic(d)
}

func (w *World) AddMover(box physics.AABB, offsetX, offsetY, duration float64) (*entities.Mover, error) {
	m := entities.NewMover(w.NextID(), box, offsetX, offsetY, duration)
	return m, w.AddDynamic(m)
}

func (w *World) AddHero(box physics.AABB, cfg config.HeroConfig, input entities.Input) (*entities.Hero, error) {
	h := entities.NewHero(w.NextID(), box, cfg, input)
	return h, w.AddDynamic(h)
}

// Update advances the world by delta seconds. Dynamics are stepped in
// insertion order; an entity already moved by another's collision rule is
// skipped. Destroyed entities are dropped once every dynamic has moved.
func (w *World) Update(delta float64) {
	w.frame++

	for _, d := range w.dynamics {
		w.resolver.Step(d, delta)
	}

	for _, d := range w.dynamics {
		if d.MarkedForDestruction() || d.Handle().Indexed() {
			continue
		}
		if w.onEscape != nil && w.onEscape(d) && d.Handle().Indexed() {
			continue
		}
		w.log.Debug("dynamic entity escaped", entityFields(d, w.frame)...)
		d.MarkForDestruction()
	}

	w.dynamics = prune(w.dynamics, func(d entities.DynamicEntity) {
		w.tree.Remove(d)
	})
	w.statics = prune(w.statics, func(e entities.Entity) {
		w.log.Error("static entity removed", entityFields(e, w.frame)...)
		w.tree.Remove(e)
	})

	for _, d := range w.dynamics {
		d.Motion().ResetUpdating()
	}
}

// prune drops marked entities in place, keeping order, and calls drop for
// each one removed.
func prune[E entities.Entity](list []E, drop func(E)) []E {
	kept := list[:0]
	for _, e := range list {
		if e.MarkedForDestruction() {
			drop(e)
			continue
		}
		kept = append(kept, e)
	}
	clear(list[len(kept):])
	return kept
}

func entityFields(e entities.Entity, frame uint64) []zap.Field {
	return []zap.Field{
		zap.Uint64("id", uint64(e.ID())),
		zap.Stringer("kind", e.Kind()),
		zap.Uint64("frame", frame),
	}
}

// Render draws statics first so dynamics appear on top.
func (w *World) Render(s entities.Surface) {
	for _, e := range w.statics {
		e.Render(s)
	}
	for _, d := range w.dynamics {
		d.Render(s)
	}
}
