package components

import (
	"github.com/automoto/quadplat/assets"
	"github.com/automoto/quadplat/entities"
	"github.com/automoto/quadplat/shared/leveldata"
	"github.com/automoto/quadplat/world"
	"github.com/yohamta/donburi"
)

// LevelData is the running level. Respawns counts how often the hero fell
// out of the world and was put back at its spawn.
type LevelData struct {
	Loader     *assets.LevelLoader
	World      *world.World
	Hero       *entities.Hero
	Layout     *leveldata.Layout
	LevelIndex int
	Respawns   int
}

var Level = donburi.NewComponentType[LevelData]()
