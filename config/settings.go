package config

// Resolution represents a window size option
type Resolution struct {
	Width  int
	Height int
	Label  string
}

// SettingsConfig contains the options cycled by the settings hotkeys
type SettingsConfig struct {
	Resolutions            []Resolution
	DefaultResolutionIndex int
}

// Settings is the global settings configuration
var Settings SettingsConfig

func init() {
	Settings = SettingsConfig{
		Resolutions: []Resolution{
			{Width: 1280, Height: 720, Label: "1280 x 720"},
			{Width: 1600, Height: 900, Label: "1600 x 900"},
			{Width: 1920, Height: 1080, Label: "1920 x 1080"},
		},
		DefaultResolutionIndex: 0,
	}
}

// ResolutionAt clamps i into range and returns that resolution.
func (s SettingsConfig) ResolutionAt(i int) Resolution {
	if i < 0 || i >= len(s.Resolutions) {
		i = s.DefaultResolutionIndex
	}
	return s.Resolutions[i]
}
