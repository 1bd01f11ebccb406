package ai

import (
	"fmt"
	"sort"

	"github.com/mirewood/sim/internal/world"
)

// Target pairs a perceived creature with its Chebyshev distance from the
// observer.
type Target struct {
	Creature *world.Creature
	Distance int
}

// FindTargets returns the creatures the observer can act against: not
// itself, a different faction, and inside its radius-8 visibility mask.
// Results are ordered nearest first; equal distances keep the caller's
// order. The result is empty, never nil, when no target qualifies.
func FindTargets(g *world.Grid, observer *world.Creature, all []*world.Creature) []Target {
	if !g.InBounds(observer.X, observer.Y) {
		panic(fmt.Sprintf("ai: observer %d off grid at (%d,%d)", observer.ID, observer.X, observer.Y))
	}
	mask := ComputeVisibility(g, observer.Cell(), VisionRadius)

	targets := make([]Target, 0, 4)
	for _, c := range all {
		if c.ID == observer.ID || c.Faction == observer.Faction {
			continue
		}
		if !mask.At(c.X, c.Y) {
			continue
		}
		targets = append(targets, Target{
			Creature: c,
			Distance: chebyshev(observer.X, observer.Y, c.X, c.Y),
		})
	}
	sort.SliceStable(targets, func(i, j int) bool { return targets[i].Distance < targets[j].Distance })
	return targets
}
