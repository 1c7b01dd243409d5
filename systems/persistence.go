package systems

import (
	"encoding/json"

	"github.com/automoto/quadplat/components"
	cfg "github.com/automoto/quadplat/config"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/quasilyte/gdata"
	"go.uber.org/zap"
)

// SavedSettings represents the settings data stored on disk
type SavedSettings struct {
	Debug           bool `json:"debug"`
	ShowStats       bool `json:"showStats"`
	Fullscreen      bool `json:"fullscreen"`
	ResolutionIndex int  `json:"resolutionIndex"`
	LevelIndex      int  `json:"levelIndex"`
}

const settingsKey = "settings"

var gdataManager *gdata.Manager

// InitPersistence initializes the gdata manager for settings storage
func InitPersistence(appName string) error {
	m, err := gdata.Open(gdata.Config{
		AppName: appName,
	})
	if err != nil {
		return err
	}
	gdataManager = m
	return nil
}

// LoadSettings loads settings from disk. It returns nil when persistence is
// unavailable or nothing was saved yet.
func LoadSettings() (*SavedSettings, error) {
	if gdataManager == nil {
		return nil, nil
	}

	data, err := gdataManager.LoadItem(settingsKey)
	if err != nil {
		logger.Warn("could not load settings", zap.Error(err))
		return nil, nil
	}
	if len(data) == 0 {
		return nil, nil
	}

	var settings SavedSettings
	if err := json.Unmarshal(data, &settings); err != nil {
		logger.Warn("could not parse saved settings", zap.Error(err))
		return nil, err
	}
	return &settings, nil
}

// SaveSettings saves settings to disk
func SaveSettings(s *SavedSettings) error {
	if gdataManager == nil {
		return nil
	}

	data, err := json.Marshal(s)
	if err != nil {
		return err
	}
	if err := gdataManager.SaveItem(settingsKey, data); err != nil {
		logger.Warn("could not save settings", zap.Error(err))
		return err
	}
	return nil
}

// SaveCurrentSettings saves the current settings component
func SaveCurrentSettings(s *components.SettingsData, levelIndex int) {
	_ = SaveSettings(&SavedSettings{
		Debug:           s.Debug,
		ShowStats:       s.ShowStats,
		Fullscreen:      s.Fullscreen,
		ResolutionIndex: s.ResolutionIndex,
		LevelIndex:      levelIndex,
	})
}

// ApplySavedSettings copies saved toggles into the settings component.
func ApplySavedSettings(s *components.SettingsData, saved *SavedSettings) {
	s.Debug = saved.Debug
	s.ShowStats = saved.ShowStats
	s.Fullscreen = saved.Fullscreen
	s.ResolutionIndex = saved.ResolutionIndex
}

// ApplySavedWindow applies the saved window mode before the game starts.
func ApplySavedWindow(saved *SavedSettings) {
	if saved == nil {
		return
	}
	ebiten.SetFullscreen(saved.Fullscreen)
	if !saved.Fullscreen {
		res := cfg.Settings.ResolutionAt(saved.ResolutionIndex)
		ebiten.SetWindowSize(res.Width, res.Height)
	}
}
