package systems

import (
	"github.com/automoto/quadplat/assets"
	"github.com/automoto/quadplat/components"
	cfg "github.com/automoto/quadplat/config"
	"github.com/automoto/quadplat/systems/factory"
	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/ecs"
	"go.uber.org/zap"
)

// UpdateWorld advances the simulation by one tick and drops the entries of
// entities the world destroyed.
func UpdateWorld(e *ecs.ECS) {
	level, ok := CurrentLevel(e)
	if !ok {
		return
	}
	level.World.Update(1 / float64(cfg.C.Window.TPS))
	pruneObjects(e)
}

func pruneObjects(e *ecs.ECS) {
	var doomed []donburi.Entity
	components.Object.Each(e.World, func(entry *donburi.Entry) {
		if components.Object.Get(entry).MarkedForDestruction() {
			doomed = append(doomed, entry.Entity())
		}
	})
	for _, entity := range doomed {
		e.World.Remove(entity)
	}
}

// UpdateLevelSwitch loads the next level when asked to.
func UpdateLevelSwitch(e *ecs.ECS) {
	input := getOrCreateInput(e)
	if !GetAction(input, cfg.ActionNextLevel).JustPressed {
		return
	}
	level, ok := CurrentLevel(e)
	if !ok {
		return
	}
	if err := LoadLevel(e, level.Loader, level.LevelIndex+1); err != nil {
		logger.Error("switch level", zap.Error(err))
	}
}

// LoadLevel replaces the running level and recentres the camera.
func LoadLevel(e *ecs.ECS, loader *assets.LevelLoader, index int) error {
	factory.DestroyLevel(e)
	entry, err := factory.CreateLevelAtIndex(e, loader, index, getOrCreateInput(e), logger.Named("world"))
	if err != nil {
		return err
	}
	level := components.Level.Get(entry)

	cx, cy := level.Hero.Box().Center()
	if cameraEntry, ok := components.Camera.First(e.World); ok {
		camera := components.Camera.Get(cameraEntry)
		camera.Position.X, camera.Position.Y = cx, cy
	} else {
		factory.CreateCamera(e, cx, cy)
	}

	settings := GetOrCreateSettings(e)
	SaveCurrentSettings(settings, level.LevelIndex)
	logger.Info("level loaded", zap.String("level", level.Layout.Name), zap.Int("index", level.LevelIndex))
	return nil
}

// CurrentLevel returns the running level, if any.
func CurrentLevel(e *ecs.ECS) (*components.LevelData, bool) {
	entry, ok := components.Level.First(e.World)
	if !ok {
		return nil, false
	}
	return components.Level.Get(entry), true
}
