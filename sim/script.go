package sim

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/automoto/quadplat/components"
	"github.com/automoto/quadplat/config"
)

// Step holds a set of actions for a number of frames.
type Step struct {
	Actions []config.ActionID
	Frames  int
}

// Script replays input steps in order, then releases everything.
type Script struct {
	steps []Step
}

// ParseScript reads steps written as "action+action:frames" separated by
// commas, e.g. "right:60,right+jump:1,none:30".
func ParseScript(src string) (*Script, error) {
	s := &Script{}
	for _, field := range strings.Split(src, ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		names, count, ok := strings.Cut(field, ":")
		if !ok {
			return nil, fmt.Errorf("script step %q: missing frame count", field)
		}
		frames, err := strconv.Atoi(count)
		if err != nil || frames <= 0 {
			return nil, fmt.Errorf("script step %q: bad frame count", field)
		}
		step := Step{Frames: frames}
		for _, name := range strings.Split(names, "+") {
			id, ok := config.ParseAction(name)
			if !ok {
				return nil, fmt.Errorf("script step %q: unknown action %q", field, name)
			}
			if id != config.ActionNone {
				step.Actions = append(step.Actions, id)
			}
		}
		s.steps = append(s.steps, step)
	}
	return s, nil
}

// Len returns the number of frames the script covers.
func (s *Script) Len() int {
	n := 0
	for _, st := range s.steps {
		n += st.Frames
	}
	return n
}

// Apply advances input to frame (counted from 1) and presses that frame's
// actions.
func (s *Script) Apply(frame uint64, input *components.InputData) {
	input.Advance()
	remaining := int(frame) - 1
	for _, st := range s.steps {
		if remaining < st.Frames {
			for _, id := range st.Actions {
				input.Current[id] = true
			}
			return
		}
		remaining -= st.Frames
	}
}
