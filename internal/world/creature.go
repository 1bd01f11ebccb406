package world

import "sync/atomic"

// creatureIDCounter generates unique creature ids across the process.
var creatureIDCounter atomic.Int32

// NextCreatureID returns a unique id for a creature instance.
func NextCreatureID() int32 {
	return creatureIDCounter.Add(1)
}

// Creature is one actor placed on the grid. Accessed only from the
// simulation goroutine, so there are no locks.
type Creature struct {
	ID      int32
	Species string // species table id
	Name    string
	Glyph   string
	Faction int    // equal faction = ally; player-aligned is 0
	X       int
	Y       int

	// Combat stats, read by the action applier only. Decision logic never
	// touches them.
	HP      int
	MaxHP   int
	Power   int
	Defense int

	// BlocksMovement marks the creature as an obstacle for movement and a
	// congestion source for pathfinding.
	BlocksMovement bool

	// InputDriven creatures act on the external input source instead of a
	// species policy.
	InputDriven bool
}

// Cell returns the creature's current position.
func (c *Creature) Cell() Cell {
	return Cell{X: c.X, Y: c.Y}
}

// Alive reports whether the creature can still act this turn.
func (c *Creature) Alive() bool {
	return c.HP > 0
}
