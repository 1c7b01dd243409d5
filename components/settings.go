package components

import "github.com/yohamta/donburi"

// SettingsData holds the toggles the player can flip at runtime. They are
// persisted between sessions.
type SettingsData struct {
	Debug           bool
	ShowStats       bool
	Fullscreen      bool
	ResolutionIndex int
}

var Settings = donburi.NewComponentType[SettingsData]()
