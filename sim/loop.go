// Package sim runs a world without a window, either as fast as possible or
// at a fixed tick rate.
package sim

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/automoto/quadplat/world"
	"go.uber.org/zap"
)

// Stats summarises the ticks run so far.
type Stats struct {
	Frames  uint64
	Busy    time.Duration // time spent inside ticks
	MaxTick time.Duration
}

type GameLoop struct {
	world    *world.World
	tickRate int
	delta    float64
	log      *zap.Logger

	beforeTick func(frame uint64)

	statsMu sync.Mutex
	stats   Stats

	running  atomic.Bool
	stopOnce sync.Once
	stopChan chan struct{}
}

func NewGameLoop(w *world.World, tickRate int, log *zap.Logger) *GameLoop {
	if log == nil {
		log = zap.NewNop()
	}
	return &GameLoop{
		world:    w,
		tickRate: tickRate,
		delta:    1 / float64(tickRate),
		log:      log,
		stopChan: make(chan struct{}),
	}
}

// BeforeTick registers fn to run before every world update with the number
// of the frame about to run.
func (g *GameLoop) BeforeTick(fn func(frame uint64)) {
	g.beforeTick = fn
}

// Stats is safe to call while Run is ticking on another goroutine.
func (g *GameLoop) Stats() Stats {
	g.statsMu.Lock()
	defer g.statsMu.Unlock()
	return g.stats
}

func (g *GameLoop) Running() bool  { return g.running.Load() }
func (g *GameLoop) Delta() float64 { return g.delta }

// Run ticks at the loop's rate until ctx is done or Stop is called.
func (g *GameLoop) Run(ctx context.Context) {
	g.running.Store(true)
	defer g.running.Store(false)
	ticker := time.NewTicker(time.Second / time.Duration(g.tickRate))
	defer ticker.Stop()

	g.log.Info("game loop started", zap.Int("tps", g.tickRate))
	for {
		select {
		case <-ctx.Done():
			g.log.Info("game loop stopped", zap.Error(ctx.Err()))
			return
		case <-g.stopChan:
			g.log.Info("game loop stopped")
			return
		case <-ticker.C:
			g.tick()
		}
	}
}

// RunFrames runs n ticks back to back, returning early if Stop is called.
func (g *GameLoop) RunFrames(n int) {
	g.running.Store(true)
	defer g.running.Store(false)
	for i := 0; i < n; i++ {
		select {
		case <-g.stopChan:
			return
		default:
		}
		g.tick()
	}
}

// Stop ends Run or RunFrames. It is safe to call more than once.
func (g *GameLoop) Stop() {
	g.stopOnce.Do(func() { close(g.stopChan) })
}

func (g *GameLoop) tick() {
	if g.beforeTick != nil {
		g.beforeTick(g.world.Frame() + 1)
	}
	start := time.Now()
	g.world.Update(g.delta)
	took := time.Since(start)

	g.statsMu.Lock()
	g.stats.Frames++
	g.stats.Busy += took
	if took > g.stats.MaxTick {
		g.stats.MaxTick = took
	}
	g.statsMu.Unlock()
}
