package ai

import "github.com/mirewood/sim/internal/world"

// Hostile chases and attacks the nearest visible creature of another
// faction. It keeps no territory: the route to the target is recomputed
// from scratch every turn, never reused.
type Hostile struct {
	st   *world.State
	path []world.Cell
}

func NewHostile(st *world.State) *Hostile {
	return &Hostile{st: st}
}

func (p *Hostile) Decide(c *world.Creature) Action {
	targets := FindTargets(p.st.Grid, c, p.st.All())
	if len(targets) == 0 {
		return Wait()
	}

	t := targets[0]
	if t.Distance <= 1 {
		return Melee(t.Creature.X-c.X, t.Creature.Y-c.Y)
	}

	p.path = FindPath(p.st.Grid, c.Cell(), t.Creature.Cell(), blockedCells(p.st))
	if len(p.path) > 0 {
		next := p.path[0]
		p.path = p.path[1:]
		return Move(next.X-c.X, next.Y-c.Y)
	}
	return Wait()
}
