// Package leveldata provides level layout parsing shared between the game
// and the headless runner. It has no dependencies on ebitengine or donburi,
// pure data only.
package leveldata

import (
	"errors"
	"fmt"
)

// Layout holds everything needed to populate a world. Coordinates are in
// world units with the origin at the bottom-left and y pointing up.
type Layout struct {
	Name      string      `yaml:"name"`
	Width     float64     `yaml:"width"`
	Height    float64     `yaml:"height"`
	Solids    []Rect      `yaml:"solids"`
	Platforms []Rect      `yaml:"platforms"`
	Ladders   []Rect      `yaml:"ladders"`
	Obstacles []Rect      `yaml:"obstacles"`
	Movers    []MoverPath `yaml:"movers"`
	HeroSpawn Point       `yaml:"hero"`
}

// Rect is an axis-aligned box anchored at its bottom-left corner.
type Rect struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

// MoverPath is a moving platform travelling between its rect and the rect
// shifted by (DX, DY), Duration seconds per leg.
type MoverPath struct {
	Rect     `yaml:",inline"`
	DX       float64 `yaml:"dx"`
	DY       float64 `yaml:"dy"`
	Duration float64 `yaml:"duration"`
}

type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

var ErrInvalidLayout = errors.New("invalid level layout")

// Validate checks the layout has a positive size and that every rect has a
// positive size.
func (l *Layout) Validate() error {
	if l.Width <= 0 || l.Height <= 0 {
		return fmt.Errorf("%w: size %gx%g", ErrInvalidLayout, l.Width, l.Height)
	}
	groups := map[string][]Rect{
		"solid":    l.Solids,
		"platform": l.Platforms,
		"ladder":   l.Ladders,
		"obstacle": l.Obstacles,
	}
	for name, rects := range groups {
		for i, r := range rects {
			if r.W <= 0 || r.H <= 0 {
				return fmt.Errorf("%w: %s %d has size %gx%g", ErrInvalidLayout, name, i, r.W, r.H)
			}
		}
	}
	for i, m := range l.Movers {
		if m.W <= 0 || m.H <= 0 || m.Duration <= 0 {
			return fmt.Errorf("%w: mover %d", ErrInvalidLayout, i)
		}
	}
	return nil
}
