package ai

import (
	"fmt"

	"github.com/mirewood/sim/internal/world"
)

// Policy decides one creature's action each turn. Implementations own all
// cross-turn memory (path, home) privately; the creature itself carries
// none of it. Decide runs at most once per creature per turn and mutates
// nothing beyond its own state.
type Policy interface {
	Decide(c *world.Creature) Action
}

// New returns the policy implementation a species table entry names.
func New(impl string, st *world.State) (Policy, error) {
	switch impl {
	case "hostile":
		return NewHostile(st), nil
	case "orc":
		return NewOrc(st), nil
	case "troll":
		return NewTroll(st), nil
	case "animal":
		return NewAnimal(st), nil
	}
	return nil, fmt.Errorf("ai: unknown policy impl %q", impl)
}

// blockedCells collects the cells of every movement-blocking creature, the
// asker included, as congestion input for FindPath.
func blockedCells(st *world.State) []world.Cell {
	var out []world.Cell
	for _, c := range st.All() {
		if c.BlocksMovement {
			out = append(out, c.Cell())
		}
	}
	return out
}

// homeAnchor remembers where a territorial creature first acted. The zero
// value means "not set yet"; once set it never moves.
type homeAnchor struct {
	set  bool
	x, y int
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
