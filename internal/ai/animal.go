package ai

import "github.com/mirewood/sim/internal/world"

// Animal never fights. It flees the nearest visible stranger one step at a
// time, purifies corrupted ground it stands on, and otherwise wanders the
// map.
type Animal struct {
	st   *world.State
	path []world.Cell
}

func NewAnimal(st *world.State) *Animal {
	return &Animal{st: st}
}

func (p *Animal) Decide(c *world.Creature) Action {
	targets := FindTargets(p.st.Grid, c, p.st.All())
	if len(targets) > 0 {
		// Reflex flight: step straight away from the nearest threat,
		// abandoning any wander plan. No route is computed.
		p.path = nil
		t := targets[0]
		return Move(-sign(t.Creature.X-c.X), -sign(t.Creature.Y-c.Y))
	}

	if p.st.Grid.Kind(c.X, c.Y) == world.TileCorrupted {
		return Purify()
	}

	if len(p.path) == 0 {
		if dest, ok := p.st.RandomWalkableCellExcept(c.X, c.Y); ok {
			p.path = FindPath(p.st.Grid, c.Cell(), dest, blockedCells(p.st))
		}
	}

	if len(p.path) > 0 {
		next := p.path[0]
		p.path = p.path[1:]
		// Same stride as the territorial species: the step taken plus one
		// further waypoint leave the plan every moving turn.
		if len(p.path) > 0 {
			p.path = p.path[1:]
		}
		return Move(next.X-c.X, next.Y-c.Y)
	}
	return Wait()
}
