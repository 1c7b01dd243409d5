package config

// ActionID represents a logical game action
type ActionID int

const (
	ActionNone ActionID = iota
	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionJump
	ActionPause
	ActionToggleDebug
	ActionToggleFullscreen
	ActionNextLevel
	ActionCount // Must be last - used for array sizing
)

var actionNames = [ActionCount]string{
	ActionNone:             "none",
	ActionMoveLeft:         "left",
	ActionMoveRight:        "right",
	ActionMoveUp:           "up",
	ActionMoveDown:         "down",
	ActionJump:             "jump",
	ActionPause:            "pause",
	ActionToggleDebug:      "debug",
	ActionToggleFullscreen: "fullscreen",
	ActionNextLevel:        "next_level",
}

func (a ActionID) String() string {
	if a < 0 || a >= ActionCount {
		return "unknown"
	}
	return actionNames[a]
}

// ParseAction maps a script token such as "left" back to its ActionID.
func ParseAction(name string) (ActionID, bool) {
	for id, n := range actionNames {
		if n == name {
			return ActionID(id), true
		}
	}
	return ActionNone, false
}
