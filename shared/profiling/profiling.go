// Package profiling wraps pkg/profile behind a flag value.
package profiling

import (
	"fmt"

	"github.com/pkg/profile"
)

// Stopper ends a profiling session and writes its output.
type Stopper interface {
	Stop()
}

type nop struct{}

func (nop) Stop() {}

// Start begins a profile of the given mode ("cpu", "mem", "allocs" or
// "trace") written under dir. An empty mode profiles nothing.
func Start(mode, dir string) (Stopper, error) {
	var opt func(*profile.Profile)
	switch mode {
	case "":
		return nop{}, nil
	case "cpu":
		opt = profile.CPUProfile
	case "mem":
		opt = profile.MemProfile
	case "allocs":
		opt = profile.MemProfileAllocs
	case "trace":
		opt = profile.TraceProfile
	default:
		return nil, fmt.Errorf("unknown profile mode %q", mode)
	}
	return profile.Start(opt, profile.ProfilePath(dir), profile.NoShutdownHook, profile.Quiet), nil
}
