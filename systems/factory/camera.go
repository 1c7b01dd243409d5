package factory

import (
	"github.com/automoto/quadplat/archetypes"
	"github.com/automoto/quadplat/components"
	cfg "github.com/automoto/quadplat/config"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"github.com/yohamta/donburi/features/math"
)

func CreateCamera(ecs *ecs.ECS, x, y float64) *donburi.Entry {
	camera := archetypes.Camera.Spawn(ecs)
	components.Camera.Set(camera, &components.CameraData{
		Position: math.Vec2{X: x, Y: y},
		Zoom:     cfg.C.Camera.Zoom,
	})
	return camera
}
