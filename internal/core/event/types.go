package event

// Events emitted during PhaseUpdate and dispatched to the recorder at
// PhaseOutput of the same turn.

type CreatureSpawned struct {
	Turn       int
	CreatureID int32
	Species    string
	X, Y       int
}

type ActionApplied struct {
	Turn         int
	CreatureID   int32
	Species      string
	Kind         string // wait, move, melee, purify
	DX, DY       int
	FromX, FromY int
	ToX, ToY     int
	Outcome      string // ok, noop, rejected
}

type CreatureKilled struct {
	Turn       int
	CreatureID int32
	Species    string
	KillerID   int32
	X, Y       int
}

type TilePurified struct {
	Turn int
	X, Y int
}
