package world

import (
	"testing"

	"github.com/automoto/quadplat/config"
	"github.com/automoto/quadplat/entities"
	"github.com/automoto/quadplat/physics"
	"github.com/automoto/quadplat/shared/leveldata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

const tick = 1.0 / 60

type recordingSurface struct {
	sprites []entities.Sprite
}

func (s *recordingSurface) Draw(sp entities.Sprite) { s.sprites = append(s.sprites, sp) }

func observed(level zapcore.Level) (*zap.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(level)
	return zap.New(core), logs
}

func TestFactoriesValidateBoxes(t *testing.T) {
	w := New(100, 100, nil)

	_, err := w.AddSolid(physics.NewAABB(0, 0, 100, 10))
	require.NoError(t, err)

	_, err = w.AddLadder(physics.NewAABB(90, 50, 20, 10))
	assert.ErrorIs(t, err, ErrOutOfBounds)

	_, err = w.AddObstacle(physics.NewAABB(10, 10, 0, 5))
	assert.ErrorIs(t, err, ErrInvalidBox)

	_, err = w.AddMover(physics.NewAABB(-1, 20, 10, 2), 0, 10, 1)
	assert.ErrorIs(t, err, ErrOutOfBounds)

	assert.Len(t, w.Statics(), 1)
	assert.Empty(t, w.Dynamics())
	assert.Equal(t, 1, w.Quadtree().Len())
}

func TestNextIDIsShared(t *testing.T) {
	w := New(100, 100, nil)
	s, err := w.AddSolid(physics.NewAABB(0, 0, 10, 10))
	require.NoError(t, err)

	custom := entities.NewStatic(w.NextID(), entities.KindCustom, physics.NewAABB(20, 0, 10, 10))
	require.NoError(t, w.AddStatic(custom))
	assert.Greater(t, custom.ID(), s.ID())
}

func TestUpdateSlidesAlongWall(t *testing.T) {
	w := New(200, 200, nil)
	_, err := w.AddSolid(physics.NewAABB(20, 0, 10, 100))
	require.NoError(t, err)
	crate := entities.NewDynamic(w.NextID(), entities.KindDynamic, physics.NewAABB(10, 10, 10, 10))
	require.NoError(t, w.AddDynamic(crate))
	crate.VelocityX, crate.VelocityY = 5, 5

	w.Update(1)

	assert.Equal(t, 10.0, crate.Box().X())
	assert.Equal(t, 15.0, crate.Box().Y())
	assert.Equal(t, uint64(1), w.Frame())
	assert.False(t, crate.Updating(), "guards are re-armed for the next frame")
}

func TestDestructionIsDeferredToEndOfUpdate(t *testing.T) {
	const kindCoin = entities.KindCustom + 1
	w := New(200, 200, nil)
	_, err := w.AddSolid(physics.NewAABB(0, 0, 200, 10))
	require.NoError(t, err)

	coin := entities.NewDynamic(w.NextID(), kindCoin, physics.NewAABB(40, 10, 4, 4))
	require.NoError(t, w.AddDynamic(coin))
	crate, err := w.AddObstacle(physics.NewAABB(30, 10, 10, 10))
	require.NoError(t, err)
	crate.VelocityX = 60

	var seenDuringFrame, queriedDuringFrame bool
	w.Resolver().Register(entities.KindDynamic, kindCoin, func(c *entities.Contact) bool {
		c.Other.MarkForDestruction()
		for _, d := range w.Dynamics() {
			if d == c.Other {
				seenDuringFrame = true
			}
		}
		for _, e := range w.EntitiesAt(c.Other.Box()) {
			if e == c.Other {
				queriedDuringFrame = true
			}
		}
		return false
	})

	w.Update(tick)

	assert.True(t, seenDuringFrame)
	assert.True(t, queriedDuringFrame, "a marked entity is still found by queries until the frame ends")
	assert.True(t, coin.MarkedForDestruction())
	require.Len(t, w.Dynamics(), 1)
	assert.Same(t, crate, w.Dynamics()[0])
	assert.Equal(t, 2, w.Quadtree().Len())
	found := w.EntitiesAt(physics.NewAABB(40, 10, 4, 4))
	require.Len(t, found, 1, "only the crate is left there")
	assert.Same(t, crate, found[0])
}

func TestRemovingStaticLogsError(t *testing.T) {
	log, logs := observed(zap.ErrorLevel)
	w := New(100, 100, nil, WithLogger(log))
	wall, err := w.AddSolid(physics.NewAABB(0, 0, 10, 10))
	require.NoError(t, err)

	wall.MarkForDestruction()
	w.Update(tick)

	assert.Empty(t, w.Statics())
	assert.Zero(t, w.Quadtree().Len())
	entries := logs.FilterMessage("static entity removed").All()
	require.Len(t, entries, 1)
	assert.Equal(t, "solid", entries[0].ContextMap()["kind"])
}

func TestEscapedDynamicIsDestroyed(t *testing.T) {
	log, logs := observed(zap.WarnLevel)
	w := New(100, 100, nil, WithLogger(log))
	crate, err := w.AddObstacle(physics.NewAABB(10, 1, 5, 5))
	require.NoError(t, err)

	for i := 0; i < 30 && len(w.Dynamics()) > 0; i++ {
		w.Update(tick)
	}

	assert.Empty(t, w.Dynamics())
	assert.Zero(t, w.Quadtree().Len())
	assert.True(t, crate.MarkedForDestruction())
	assert.NotEmpty(t, logs.FilterMessage("body outside quadtree bounds").All())
}

func TestEscapeHandlerCanRescue(t *testing.T) {
	var escaped []entities.DynamicEntity
	w := New(100, 100, nil, WithEscapeHandler(func(d entities.DynamicEntity) bool {
		escaped = append(escaped, d)
		d.Motion().VelocityY = 0
		return d.Motion().SetPosition(10, 80)
	}))
	crate, err := w.AddObstacle(physics.NewAABB(10, 1, 5, 5))
	require.NoError(t, err)

	for i := 0; i < 30; i++ {
		w.Update(tick)
	}

	require.NotEmpty(t, escaped)
	assert.Same(t, crate, escaped[0])
	assert.Len(t, w.Dynamics(), 1)
	assert.True(t, crate.Indexed())
	assert.False(t, crate.MarkedForDestruction())
}

func TestRenderDrawsStaticsFirst(t *testing.T) {
	w := New(100, 100, nil)
	crate, err := w.AddObstacle(physics.NewAABB(10, 50, 5, 5))
	require.NoError(t, err)
	floor, err := w.AddSolid(physics.NewAABB(0, 0, 100, 10))
	require.NoError(t, err)

	var s recordingSurface
	w.Render(&s)

	require.Len(t, s.sprites, 2)
	assert.Equal(t, floor.ID(), s.sprites[0].ID)
	assert.Equal(t, crate.ID(), s.sprites[1].ID)
}

func TestPopulate(t *testing.T) {
	layout := &leveldata.Layout{
		Name:      "test",
		Width:     320,
		Height:    240,
		Solids:    []leveldata.Rect{{X: 0, Y: 0, W: 320, H: 16}},
		Platforms: []leveldata.Rect{{X: 40, Y: 60, W: 50, H: 6}},
		Ladders:   []leveldata.Rect{{X: 200, Y: 16, W: 16, H: 80}},
		Obstacles: []leveldata.Rect{{X: 100, Y: 16, W: 10, H: 10}},
		Movers:    []leveldata.MoverPath{{Rect: leveldata.Rect{X: 250, Y: 30, W: 30, H: 6}, DY: 40, Duration: 2}},
		HeroSpawn: leveldata.Point{X: 20, Y: 16},
	}
	log, logs := observed(zap.InfoLevel)

	w, hero, err := FromLayout(layout, nil, nil, config.Defaults().Hero, WithLogger(log))
	require.NoError(t, err)

	assert.Equal(t, 320.0, w.Width())
	assert.Equal(t, 240.0, w.Height())
	assert.Len(t, w.Statics(), 3)
	require.Len(t, w.Dynamics(), 3)
	assert.Same(t, hero, w.Dynamics()[2], "hero steps last")
	assert.Equal(t, 12.0, hero.Box().Width())
	assert.Equal(t, 16.0, hero.Box().Y())
	assert.Len(t, logs.FilterMessage("level populated").All(), 1)

	found := w.EntitiesAt(physics.NewAABB(205, 50, 1, 1))
	require.Len(t, found, 1)
	assert.Equal(t, entities.KindLadder, found[0].Kind())

	for i := 0; i < 60; i++ {
		w.Update(tick)
	}
	assert.Equal(t, 16.0, hero.Box().Y())
	assert.Equal(t, config.Standing, hero.State())
}

func TestPopulateRejectsOutOfBoundsLayout(t *testing.T) {
	layout := &leveldata.Layout{
		Name:   "broken",
		Width:  100,
		Height: 100,
		Solids: []leveldata.Rect{{X: 50, Y: 0, W: 100, H: 10}},
	}
	_, _, err := FromLayout(layout, nil, nil, config.Defaults().Hero)
	assert.ErrorIs(t, err, ErrOutOfBounds)
	assert.ErrorContains(t, err, "populate broken")
}
