package system

import (
	"time"

	"github.com/mirewood/sim/internal/ai"
	"github.com/mirewood/sim/internal/core/event"
	coresys "github.com/mirewood/sim/internal/core/system"
	"github.com/mirewood/sim/internal/scripting"
	"github.com/mirewood/sim/internal/world"
	"go.uber.org/zap"
)

// override is a temporary replacement policy with a turn countdown.
type override struct {
	policy    ai.Policy
	turnsLeft int
}

// TurnSystem walks all living creatures in ascending id order, asks each
// one for an action and applies it immediately. Precedence per creature:
// active override, then queued input, then the attached species policy.
// Phase 1 (Update).
type TurnSystem struct {
	world     *world.State
	bus       *event.Bus
	scripting *scripting.Engine
	log       *zap.Logger
	input     *InputSystem
	policies  map[int32]ai.Policy
	overrides map[int32]*override
}

func NewTurnSystem(deps *Deps, input *InputSystem) *TurnSystem {
	return &TurnSystem{
		world:     deps.World,
		bus:       deps.Bus,
		scripting: deps.Scripting,
		log:       deps.Log,
		input:     input,
		policies:  make(map[int32]ai.Policy),
		overrides: make(map[int32]*override),
	}
}

// Attach binds a species policy to a creature, replacing any previous one.
func (s *TurnSystem) Attach(id int32, p ai.Policy) {
	s.policies[id] = p
}

// SetOverride makes the creature follow p for the next turns decisions,
// shadowing input and its attached policy. turns <= 0 clears instead.
func (s *TurnSystem) SetOverride(id int32, p ai.Policy, turns int) {
	if turns <= 0 {
		delete(s.overrides, id)
		return
	}
	s.overrides[id] = &override{policy: p, turnsLeft: turns}
}

// ClearOverride drops any active override for the creature.
func (s *TurnSystem) ClearOverride(id int32) {
	delete(s.overrides, id)
}

// Forget drops all decision state for a creature. Called after removal so
// ids of dead creatures do not pin policies alive.
func (s *TurnSystem) Forget(id int32) {
	delete(s.policies, id)
	delete(s.overrides, id)
}

func (s *TurnSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *TurnSystem) Update(_ time.Duration) {
	for _, c := range s.world.All() {
		if !c.Alive() {
			continue
		}
		s.apply(c, s.actionFor(c))
	}
}

func (s *TurnSystem) actionFor(c *world.Creature) ai.Action {
	if ov, ok := s.overrides[c.ID]; ok {
		act := ov.policy.Decide(c)
		ov.turnsLeft--
		if ov.turnsLeft <= 0 {
			delete(s.overrides, c.ID)
		}
		return act
	}
	if c.InputDriven {
		if act, ok := s.input.Take(c.ID); ok {
			return act
		}
		return ai.Wait()
	}
	if p, ok := s.policies[c.ID]; ok {
		return p.Decide(c)
	}
	s.log.Warn("creature has no policy", zap.Int32("id", c.ID), zap.String("species", c.Species))
	return ai.Wait()
}
