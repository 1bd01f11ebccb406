package system

import "time"

// Phase defines execution ordering within a single turn.
type Phase int

const (
	PhaseInput   Phase = iota // 0: pump external action sources
	PhaseUpdate               // 1: decide + apply creature actions
	PhaseOutput               // 2: dispatch events, record telemetry
	PhaseCleanup              // 3: destroy queued creatures, settle tiles
)

// System is the interface every turn-pipeline system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
