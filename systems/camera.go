package systems

import (
	"math"

	"github.com/automoto/quadplat/components"
	"github.com/automoto/quadplat/config"
	"github.com/yohamta/donburi/ecs"
)

// UpdateCamera eases the camera towards the hero, keeping the level filling
// the screen when it is large enough to.
func UpdateCamera(e *ecs.ECS) {
	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return
	}
	camera := components.Camera.Get(cameraEntry)

	level, ok := CurrentLevel(e)
	if !ok || level.Hero == nil {
		return
	}
	targetX, targetY := level.Hero.Box().Center()

	zoom := camera.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	halfW := float64(config.C.Window.Width) / zoom / 2
	halfH := float64(config.C.Window.Height) / zoom / 2
	targetX = clampCamera(targetX, halfW, level.World.Width())
	targetY = clampCamera(targetY, halfH, level.World.Height())

	camera.Position.X += (targetX - camera.Position.X) * config.C.Camera.FollowSmoothing
	camera.Position.Y += (targetY - camera.Position.Y) * config.C.Camera.FollowSmoothing
}

// clampCamera keeps a view of half-size half inside [0, size], centring it
// when the level is smaller than the view.
func clampCamera(target, half, size float64) float64 {
	if size <= 2*half {
		return size / 2
	}
	return math.Max(half, math.Min(size-half, target))
}
