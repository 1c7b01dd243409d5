package tags

import "github.com/yohamta/donburi"

var (
	Hero     = donburi.NewTag().SetName("Hero")
	Solid    = donburi.NewTag().SetName("Solid")
	Platform = donburi.NewTag().SetName("Platform")
	Ladder   = donburi.NewTag().SetName("Ladder")
	Obstacle = donburi.NewTag().SetName("Obstacle")
	Mover    = donburi.NewTag().SetName("Mover")
)
