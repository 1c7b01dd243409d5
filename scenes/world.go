package scenes

import (
	"sync"

	"github.com/automoto/quadplat/assets"
	cfg "github.com/automoto/quadplat/config"
	"github.com/automoto/quadplat/systems"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

type SceneChanger interface {
	ChangeScene(scene interface{})
}

type PlatformerScene struct {
	ecs          *ecs.ECS
	sceneChanger SceneChanger
	loader       *assets.LevelLoader
	levelIndex   int
	once         sync.Once
}

// NewPlatformerScene creates a scene that starts at the given level index.
func NewPlatformerScene(sc SceneChanger, loader *assets.LevelLoader, levelIndex int) *PlatformerScene {
	return &PlatformerScene{sceneChanger: sc, loader: loader, levelIndex: levelIndex}
}

func (ps *PlatformerScene) Update() {
	ps.once.Do(ps.configure)
	ps.ecs.Update()
}

func (ps *PlatformerScene) Draw(screen *ebiten.Image) {
	if ps.ecs == nil {
		screen.Fill(cfg.Background)
		return
	}
	ps.ecs.Draw(screen)
}

func (ps *PlatformerScene) configure() {
	ecs := ecs.NewECS(donburi.NewWorld())

	// Systems that always run
	ecs.AddSystem(systems.UpdateInput)
	ecs.AddSystem(systems.UpdatePause)
	ecs.AddSystem(systems.UpdateSettings)

	// Gameplay systems stop while paused
	ecs.AddSystem(systems.WithPauseCheck(systems.UpdateWorld))
	ecs.AddSystem(systems.WithPauseCheck(systems.UpdateStates))
	ecs.AddSystem(systems.WithPauseCheck(systems.UpdateLevelSwitch))
	ecs.AddSystem(systems.WithPauseCheck(systems.UpdateCamera))

	ecs.AddRenderer(cfg.Default, systems.DrawWorld)
	ecs.AddRenderer(cfg.Default, systems.DrawDebug)
	ecs.AddRenderer(cfg.Overlay, systems.DrawStats)
	ecs.AddRenderer(cfg.Overlay, systems.DrawPause)

	ps.ecs = ecs

	if err := systems.LoadLevel(ps.ecs, ps.loader, ps.levelIndex); err != nil {
		systems.Logger().Fatal("load level", zap.Int("index", ps.levelIndex), zap.Error(err))
	}
}
