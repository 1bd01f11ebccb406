package system

import (
	"github.com/mirewood/sim/internal/core/event"
	"github.com/mirewood/sim/internal/persist"
	"github.com/mirewood/sim/internal/scripting"
	"github.com/mirewood/sim/internal/world"
	"go.uber.org/zap"
)

// Deps holds shared dependencies injected into the turn systems.
type Deps struct {
	World     *world.State
	Bus       *event.Bus
	Scripting *scripting.Engine
	Recorder  *persist.Recorder // nil when run recording is disabled
	Log       *zap.Logger
}
