package system

import (
	"context"
	"fmt"
	"time"

	"github.com/mirewood/sim/internal/core/event"
	coresys "github.com/mirewood/sim/internal/core/system"
	"github.com/mirewood/sim/internal/persist"
	"go.uber.org/zap"
)

// RecorderSystem rotates the event bus once per turn and feeds the turn's
// events to the run recorder. It owns the bus cycle, so it must be
// registered even when recording is disabled. Phase 2 (Output).
type RecorderSystem struct {
	bus      *event.Bus
	recorder *persist.Recorder
	log      *zap.Logger
}

func NewRecorderSystem(deps *Deps) *RecorderSystem {
	s := &RecorderSystem{
		bus:      deps.Bus,
		recorder: deps.Recorder,
		log:      deps.Log,
	}
	if s.recorder != nil {
		event.Subscribe(s.bus, s.onSpawned)
		event.Subscribe(s.bus, s.onAction)
		event.Subscribe(s.bus, s.onKilled)
		event.Subscribe(s.bus, s.onPurified)
	}
	return s
}

func (s *RecorderSystem) Phase() coresys.Phase { return coresys.PhaseOutput }

func (s *RecorderSystem) Update(_ time.Duration) {
	s.bus.SwapBuffers()
	s.bus.DispatchAll()

	if s.recorder == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.recorder.Flush(ctx); err != nil {
		s.log.Error("recorder flush failed", zap.Error(err))
	}
}

func (s *RecorderSystem) onSpawned(ev event.CreatureSpawned) {
	s.recorder.Record(persist.EventRow{
		Turn:       ev.Turn,
		CreatureID: ev.CreatureID,
		Species:    ev.Species,
		Kind:       "spawn",
		X:          ev.X,
		Y:          ev.Y,
	})
}

func (s *RecorderSystem) onAction(ev event.ActionApplied) {
	s.recorder.Record(persist.EventRow{
		Turn:       ev.Turn,
		CreatureID: ev.CreatureID,
		Species:    ev.Species,
		Kind:       ev.Kind,
		DX:         ev.DX,
		DY:         ev.DY,
		X:          ev.ToX,
		Y:          ev.ToY,
		Detail:     ev.Outcome,
	})
}

func (s *RecorderSystem) onKilled(ev event.CreatureKilled) {
	s.recorder.Record(persist.EventRow{
		Turn:       ev.Turn,
		CreatureID: ev.CreatureID,
		Species:    ev.Species,
		Kind:       "death",
		X:          ev.X,
		Y:          ev.Y,
		Detail:     fmt.Sprintf("killer=%d", ev.KillerID),
	})
}

func (s *RecorderSystem) onPurified(ev event.TilePurified) {
	s.recorder.Record(persist.EventRow{
		Turn:   ev.Turn,
		Kind:   "purified",
		X:      ev.X,
		Y:      ev.Y,
		Detail: "",
	})
}
