package ai

import "github.com/mirewood/sim/internal/world"

// territorial is the shared home/path memory and decision cycle behind Orc
// and Troll: chase what it sees, otherwise walk back to the cell it first
// woke up on. Species with wander set also roam from there.
type territorial struct {
	st     *world.State
	home   homeAnchor
	path   []world.Cell
	wander bool
}

func (p *territorial) decide(c *world.Creature) Action {
	if !p.home.set {
		p.home = homeAnchor{set: true, x: c.X, y: c.Y}
	}

	targets := FindTargets(p.st.Grid, c, p.st.All())
	if len(targets) > 0 {
		t := targets[0]
		if t.Distance <= 1 {
			return Melee(t.Creature.X-c.X, t.Creature.Y-c.Y)
		}
		p.path = FindPath(p.st.Grid, c.Cell(), t.Creature.Cell(), blockedCells(p.st))
	}

	if len(p.path) == 0 {
		if c.X == p.home.x && c.Y == p.home.y {
			if p.wander {
				if dest, ok := p.st.RandomWalkableCellExcept(c.X, c.Y); ok {
					p.path = FindPath(p.st.Grid, c.Cell(), dest, blockedCells(p.st))
				}
			}
		} else {
			p.path = FindPath(p.st.Grid, c.Cell(), world.Cell{X: p.home.x, Y: p.home.y}, blockedCells(p.st))
		}
	}

	if len(p.path) > 0 {
		next := p.path[0]
		p.path = p.path[1:]
		// Each moving turn consumes the step taken plus one further
		// waypoint, so planned routes are walked at every other cell.
		if len(p.path) > 0 {
			p.path = p.path[1:]
		}
		return Move(next.X-c.X, next.Y-c.Y)
	}
	return Wait()
}

// Orc holds ground around its first cell: it chases visible hostiles,
// wanders the map when idle at home, and returns home after straying.
type Orc struct {
	territorial
}

func NewOrc(st *world.State) *Orc {
	return &Orc{territorial{st: st, wander: true}}
}

func (p *Orc) Decide(c *world.Creature) Action {
	return p.decide(c)
}
