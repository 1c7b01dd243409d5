package components

import (
	"github.com/automoto/quadplat/entities"
	"github.com/yohamta/donburi"
)

// ObjectData links a donburi entry to the core entity it presents.
type ObjectData struct {
	entities.Entity
}

var Object = donburi.NewComponentType[ObjectData]()
