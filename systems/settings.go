package systems

import (
	"github.com/automoto/quadplat/components"
	cfg "github.com/automoto/quadplat/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/yohamta/donburi/ecs"
)

// UpdateSettings handles the runtime toggles and saves them on change.
// F3 shows the stats without the full debug overlay; F9 cycles the window
// size.
func UpdateSettings(e *ecs.ECS) {
	settings := GetOrCreateSettings(e)
	input := getOrCreateInput(e)
	changed := false

	if GetAction(input, cfg.ActionToggleDebug).JustPressed {
		settings.Debug = !settings.Debug
		changed = true
	}
	if GetAction(input, cfg.ActionToggleFullscreen).JustPressed {
		settings.Fullscreen = !settings.Fullscreen
		ebiten.SetFullscreen(settings.Fullscreen)
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		settings.ShowStats = !settings.ShowStats
		changed = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF9) && !settings.Fullscreen {
		settings.ResolutionIndex = (settings.ResolutionIndex + 1) % len(cfg.Settings.Resolutions)
		res := cfg.Settings.ResolutionAt(settings.ResolutionIndex)
		ebiten.SetWindowSize(res.Width, res.Height)
		changed = true
	}

	if changed {
		levelIndex := 0
		if level, ok := CurrentLevel(e); ok {
			levelIndex = level.LevelIndex
		}
		SaveCurrentSettings(settings, levelIndex)
	}
}

// GetOrCreateSettings returns the singleton Settings component. A new one
// starts from the config file and then the saved settings.
func GetOrCreateSettings(e *ecs.ECS) *components.SettingsData {
	if entry, ok := components.Settings.First(e.World); ok {
		return components.Settings.Get(entry)
	}
	entry := e.World.Entry(e.World.Create(components.Settings))
	settings := components.Settings.Get(entry)
	settings.Debug = cfg.C.Debug.ShowQuadtree
	settings.ShowStats = cfg.C.Debug.ShowStats
	settings.ResolutionIndex = cfg.Settings.DefaultResolutionIndex
	if saved, _ := LoadSettings(); saved != nil {
		ApplySavedSettings(settings, saved)
	}
	return settings
}
