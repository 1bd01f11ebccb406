package ai

import "github.com/mirewood/sim/internal/world"

// Troll is an orc that never roams: away from home it walks back, and at
// home with nothing in sight it stands its ground.
type Troll struct {
	territorial
}

func NewTroll(st *world.State) *Troll {
	return &Troll{territorial{st: st}}
}

func (p *Troll) Decide(c *world.Creature) Action {
	return p.decide(c)
}
