package config

// Render layers. They convert to ecs.LayerID where they are used.
const (
	Default = iota
	Overlay
)
