package entities

// Kind tags the concrete type of an entity for collision dispatch.
// KindStatic and KindDynamic double as the family fallbacks every other
// kind resolves to when no rule is registered for it.
type Kind uint8

const (
	KindStatic Kind = iota
	KindOneWayPlatform
	KindLadder
	KindDynamic
	KindMover
	KindHero

	// KindCustom is the first value free for kinds defined outside this
	// package.
	KindCustom Kind = 32
)

var kindNames = map[Kind]string{
	KindStatic:         "solid",
	KindOneWayPlatform: "one_way_platform",
	KindLadder:         "ladder",
	KindDynamic:        "obstacle",
	KindMover:          "mover",
	KindHero:           "hero",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "custom"
}

func familyOf(static bool) Kind {
	if static {
		return KindStatic
	}
	return KindDynamic
}
