package config

// StateID identifies a hero movement state.
type StateID int

const (
	StateNone StateID = iota
	Standing
	Running
	Airborne
	ClimbingIdle
	ClimbingMoving
)

var StateToName = map[StateID]string{
	StateNone:      "none",
	Standing:       "standing",
	Running:        "running",
	Airborne:       "airborne",
	ClimbingIdle:   "climbing_idle",
	ClimbingMoving: "climbing_moving",
}

func (s StateID) String() string {
	if name, ok := StateToName[s]; ok {
		return name
	}
	return "unknown"
}

// Climbing reports whether s is one of the ladder states.
func (s StateID) Climbing() bool {
	return s == ClimbingIdle || s == ClimbingMoving
}
