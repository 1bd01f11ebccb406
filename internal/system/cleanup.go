package system

import (
	"time"

	coresys "github.com/mirewood/sim/internal/core/system"
	"github.com/mirewood/sim/internal/world"
	"go.uber.org/zap"
)

// CleanupSystem flushes the deferred destruction and purification queues
// at turn end, then advances the turn counter. Phase 3 (Cleanup).
type CleanupSystem struct {
	world    *world.State
	log      *zap.Logger
	onRemove func(id int32)
}

// NewCleanupSystem builds the cleanup phase. onRemove runs once for every
// creature actually removed, after it has left the world; nil is allowed.
func NewCleanupSystem(deps *Deps, onRemove func(id int32)) *CleanupSystem {
	return &CleanupSystem{world: deps.World, log: deps.Log, onRemove: onRemove}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	removed := s.world.FlushDestroyQueue()
	for _, id := range removed {
		if s.onRemove != nil {
			s.onRemove(id)
		}
	}
	if len(removed) > 0 {
		s.log.Debug("creatures removed", zap.Int("count", len(removed)))
	}

	if n := s.world.FlushPurifications(); n > 0 {
		s.log.Debug("tiles purified", zap.Int("count", n))
	}

	s.world.Turn++
}
