package system

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/mirewood/sim/internal/ai"
	coresys "github.com/mirewood/sim/internal/core/system"
	"github.com/mirewood/sim/internal/world"
	"go.uber.org/zap"
)

// Source supplies the next action for one input-driven creature. A source
// that returns ok=false is exhausted; the creature waits from then on.
type Source interface {
	Next() (ai.Action, bool)
}

// StandStill is the trivial source: the creature waits forever.
type StandStill struct{}

func (StandStill) Next() (ai.Action, bool) { return ai.Wait(), true }

// QueueSource replays a fixed list of actions, then reports exhaustion.
type QueueSource struct {
	queue []ai.Action
}

func NewQueueSource(actions []ai.Action) *QueueSource {
	return &QueueSource{queue: actions}
}

func (q *QueueSource) Next() (ai.Action, bool) {
	if len(q.queue) == 0 {
		return ai.Action{}, false
	}
	act := q.queue[0]
	q.queue = q.queue[1:]
	return act, true
}

// ParseScript converts script lines into a playable action queue. Each
// line is one of "wait", "purify", "move DX DY" or "melee DX DY"; blank
// lines are skipped.
func ParseScript(lines []string) ([]ai.Action, error) {
	actions := make([]ai.Action, 0, len(lines))
	for i, line := range lines {
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "wait":
			actions = append(actions, ai.Wait())
		case "purify":
			actions = append(actions, ai.Purify())
		case "move", "melee":
			if len(fields) != 3 {
				return nil, fmt.Errorf("script line %d: %s takes two offsets", i+1, fields[0])
			}
			dx, err := strconv.Atoi(fields[1])
			if err != nil {
				return nil, fmt.Errorf("script line %d: bad dx %q", i+1, fields[1])
			}
			dy, err := strconv.Atoi(fields[2])
			if err != nil {
				return nil, fmt.Errorf("script line %d: bad dy %q", i+1, fields[2])
			}
			if fields[0] == "move" {
				actions = append(actions, ai.Move(dx, dy))
			} else {
				actions = append(actions, ai.Melee(dx, dy))
			}
		default:
			return nil, fmt.Errorf("script line %d: unknown action %q", i+1, fields[0])
		}
	}
	return actions, nil
}

// InputSystem collects one pending action per input-driven creature at the
// start of each turn. TurnSystem takes them during the update phase.
// Phase 0 (Input).
type InputSystem struct {
	world   *world.State
	log     *zap.Logger
	sources map[int32]Source
	pending map[int32]ai.Action
}

func NewInputSystem(deps *Deps) *InputSystem {
	return &InputSystem{
		world:   deps.World,
		log:     deps.Log,
		sources: make(map[int32]Source),
		pending: make(map[int32]ai.Action),
	}
}

// Bind attaches a source to a creature, replacing any previous one.
func (s *InputSystem) Bind(id int32, src Source) {
	s.sources[id] = src
}

func (s *InputSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *InputSystem) Update(_ time.Duration) {
	for id := range s.pending {
		delete(s.pending, id)
	}
	for id, src := range s.sources {
		c := s.world.Get(id)
		if c == nil || !c.Alive() {
			delete(s.sources, id)
			continue
		}
		act, ok := src.Next()
		if !ok {
			s.pending[id] = ai.Wait()
			continue
		}
		s.pending[id] = act
	}
}

// Take removes and returns the pending action for a creature.
func (s *InputSystem) Take(id int32) (ai.Action, bool) {
	act, ok := s.pending[id]
	if ok {
		delete(s.pending, id)
	}
	return act, ok
}
