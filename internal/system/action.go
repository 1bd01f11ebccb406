package system

import (
	"github.com/mirewood/sim/internal/ai"
	"github.com/mirewood/sim/internal/core/event"
	"github.com/mirewood/sim/internal/scripting"
	"github.com/mirewood/sim/internal/world"
	"go.uber.org/zap"
)

// apply executes one action against the world and emits the outcome.
// Outcomes: "ok" took effect, "noop" legal but nothing happened,
// "rejected" the action made no sense where it was attempted.
func (s *TurnSystem) apply(c *world.Creature, act ai.Action) {
	fromX, fromY := c.X, c.Y

	outcome := "ok"
	switch act.Kind {
	case ai.ActMove:
		outcome = s.applyMove(c, act)
	case ai.ActMelee:
		outcome = s.applyMelee(c, act)
	case ai.ActPurify:
		outcome = s.applyPurify(c)
	}

	event.Emit(s.bus, event.ActionApplied{
		Turn:       s.world.Turn,
		CreatureID: c.ID,
		Species:    c.Species,
		Kind:       act.Kind.String(),
		DX:         act.DX,
		DY:         act.DY,
		FromX:      fromX,
		FromY:      fromY,
		ToX:        c.X,
		ToY:        c.Y,
		Outcome:    outcome,
	})
}

func (s *TurnSystem) applyMove(c *world.Creature, act ai.Action) string {
	nx, ny := c.X+act.DX, c.Y+act.DY
	if !s.world.Grid.Walkable(nx, ny) {
		return "noop"
	}
	if s.world.BlockedAt(nx, ny, c.ID) {
		return "noop"
	}
	s.world.MoveCreature(c, nx, ny)
	return "ok"
}

func (s *TurnSystem) applyMelee(c *world.Creature, act ai.Action) string {
	tx, ty := c.X+act.DX, c.Y+act.DY

	var target *world.Creature
	for _, o := range s.world.CreaturesAt(tx, ty) {
		if o.ID == c.ID || !o.Alive() {
			continue
		}
		target = o
		break
	}
	if target == nil {
		return "rejected"
	}

	dmg := s.scripting.CalcDamage(scripting.DamageContext{
		AttackerPower:   c.Power,
		AttackerHP:      c.HP,
		AttackerMaxHP:   c.MaxHP,
		DefenderDefense: target.Defense,
		DefenderHP:      target.HP,
		DefenderMaxHP:   target.MaxHP,
	})
	target.HP -= dmg
	s.log.Debug("melee hit",
		zap.Int32("attacker", c.ID),
		zap.Int32("target", target.ID),
		zap.Int("damage", dmg),
		zap.Int("target_hp", target.HP),
	)

	if target.HP <= 0 {
		s.world.QueueDestroy(target.ID)
		event.Emit(s.bus, event.CreatureKilled{
			Turn:       s.world.Turn,
			CreatureID: target.ID,
			Species:    target.Species,
			KillerID:   c.ID,
			X:          target.X,
			Y:          target.Y,
		})
	}
	return "ok"
}

func (s *TurnSystem) applyPurify(c *world.Creature) string {
	if s.world.Grid.Kind(c.X, c.Y) != world.TileCorrupted {
		return "noop"
	}
	s.world.QueuePurify(c.X, c.Y)
	event.Emit(s.bus, event.TilePurified{
		Turn: s.world.Turn,
		X:    c.X,
		Y:    c.Y,
	})
	return "ok"
}
