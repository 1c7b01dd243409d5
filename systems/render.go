package systems

import (
	"image/color"

	"github.com/automoto/quadplat/components"
	cfg "github.com/automoto/quadplat/config"
	"github.com/automoto/quadplat/entities"
	"github.com/automoto/quadplat/physics"
	"github.com/automoto/quadplat/tags"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
)

// view maps world coordinates (y up) to screen pixels (y down) around a
// camera position.
type view struct {
	camX, camY    float64
	zoom          float64
	width, height float64
}

func newView(camera *components.CameraData, screen *ebiten.Image) view {
	zoom := camera.Zoom
	if zoom <= 0 {
		zoom = 1
	}
	return view{
		camX:   camera.Position.X,
		camY:   camera.Position.Y,
		zoom:   zoom,
		width:  float64(screen.Bounds().Dx()),
		height: float64(screen.Bounds().Dy()),
	}
}

// rect returns the screen rectangle of box.
func (v view) rect(box physics.AABB) (x, y, w, h float32) {
	sx := (box.Left()-v.camX)*v.zoom + v.width/2
	sy := v.height/2 - (box.Top()-v.camY)*v.zoom
	return float32(sx), float32(sy), float32(box.Width() * v.zoom), float32(box.Height() * v.zoom)
}

// visible reports whether box intersects the screen, with a small margin.
func (v view) visible(box physics.AABB) bool {
	const padding = 16
	halfW := v.width/2/v.zoom + padding
	halfH := v.height/2/v.zoom + padding
	return box.Right() >= v.camX-halfW && box.Left() <= v.camX+halfW &&
		box.Top() >= v.camY-halfH && box.Bottom() <= v.camY+halfH
}

// screenSurface draws sprites as filled rectangles.
type screenSurface struct {
	screen *ebiten.Image
	view   view
}

func (s *screenSurface) Draw(sp entities.Sprite) {
	if !s.view.visible(sp.Box) {
		return
	}
	x, y, w, h := s.view.rect(sp.Box)
	vector.DrawFilledRect(s.screen, x, y, w, h, spriteColor(sp), false)

	if sp.Kind == entities.KindHero {
		// A notch on the side the hero faces.
		eyeX := x + w - 4
		if !sp.FacingRight {
			eyeX = x + 1
		}
		vector.DrawFilledRect(s.screen, eyeX, y+4, 3, 3, cfg.DarkBlue, false)
	}
}

func spriteColor(sp entities.Sprite) color.RGBA {
	switch sp.Kind {
	case entities.KindStatic:
		return cfg.DarkBlue
	case entities.KindOneWayPlatform:
		return cfg.LightBlue
	case entities.KindLadder:
		return cfg.Orange
	case entities.KindDynamic:
		return cfg.Yellow
	case entities.KindMover:
		return cfg.Purple
	case entities.KindHero:
		switch sp.State {
		case cfg.Standing:
			return cfg.BrightGreen
		case cfg.Running:
			return cfg.LightGreen
		case cfg.ClimbingIdle, cfg.ClimbingMoving:
			return cfg.Magenta
		default:
			return cfg.White
		}
	}
	return cfg.Red
}

type eachable interface {
	Each(w donburi.World, callback func(*donburi.Entry))
}

// drawOrder lists the object tags back to front.
var drawOrder = []eachable{
	tags.Solid, tags.Platform, tags.Ladder, tags.Obstacle, tags.Mover, tags.Hero,
}

// DrawWorld renders every object entry, statics first so that moving
// things stay on top.
func DrawWorld(e *ecs.ECS, screen *ebiten.Image) {
	screen.Fill(cfg.Background)

	cameraEntry, ok := components.Camera.First(e.World)
	if !ok {
		return // No camera yet
	}
	surface := &screenSurface{screen: screen, view: newView(components.Camera.Get(cameraEntry), screen)}

	for _, tag := range drawOrder {
		tag.Each(e.World, func(entry *donburi.Entry) {
			components.Object.Get(entry).Render(surface)
		})
	}
}
