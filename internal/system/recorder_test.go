package system

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mirewood/sim/internal/ai"
	"github.com/mirewood/sim/internal/core/event"
	"github.com/mirewood/sim/internal/persist"
)

func withRecorder(t *testing.T, deps *Deps) *persist.Recorder {
	t.Helper()
	db, err := persist.Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	if err := persist.RunMigrations(context.Background(), db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	rec, err := persist.NewRecorder(context.Background(), db, 1, 1, deps.World.Len())
	if err != nil {
		t.Fatalf("recorder: %v", err)
	}
	deps.Recorder = rec
	return rec
}

func TestRecorderSystem_PersistsTurnEvents(t *testing.T) {
	deps := testDeps(t, 8, 8)
	spawn(t, deps.World, 1, 1, 2, 2)
	rec := withRecorder(t, deps)

	rs := NewRecorderSystem(deps)
	ts := NewTurnSystem(deps, NewInputSystem(deps))
	ts.Attach(1, fixedPolicy{ai.Move(1, 0)})

	event.Emit(deps.Bus, event.CreatureSpawned{Turn: 1, CreatureID: 1, Species: "test", X: 2, Y: 2})
	ts.Update(0)
	rs.Update(0)

	rows, err := rec.EventsForTurn(context.Background(), 1)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("stored %d rows, want spawn + move", len(rows))
	}
	byKind := map[string]persist.EventRow{}
	for _, row := range rows {
		byKind[row.Kind] = row
	}
	if row, ok := byKind["spawn"]; !ok || row.X != 2 || row.Y != 2 {
		t.Fatalf("spawn row missing or mangled: %+v", row)
	}
	if row, ok := byKind["move"]; !ok || row.Detail != "ok" || row.X != 3 || row.Y != 2 {
		t.Fatalf("move row missing or mangled: %+v", row)
	}
}

func TestRecorderSystem_RecordsDeaths(t *testing.T) {
	deps := testDeps(t, 8, 8)
	// One hit from power 4 finishes a defender on 1 hp.
	spawn(t, deps.World, 1, 1, 2, 2)
	def := spawn(t, deps.World, 2, 0, 3, 2)
	def.HP = 1
	rec := withRecorder(t, deps)

	rs := NewRecorderSystem(deps)
	ts := NewTurnSystem(deps, NewInputSystem(deps))
	ts.Attach(1, fixedPolicy{ai.Melee(1, 0)})

	ts.Update(0)
	rs.Update(0)

	rows, err := rec.EventsForTurn(context.Background(), 1)
	if err != nil {
		t.Fatalf("events: %v", err)
	}
	var death *persist.EventRow
	for i := range rows {
		if rows[i].Kind == "death" {
			death = &rows[i]
		}
	}
	if death == nil {
		t.Fatal("no death row recorded")
	}
	if death.CreatureID != 2 || death.Detail != "killer=1" {
		t.Fatalf("death row %+v", *death)
	}
}

func TestRecorderSystem_DrivesBusWithoutRecorder(t *testing.T) {
	deps := testDeps(t, 8, 8)
	rs := NewRecorderSystem(deps)

	seen := 0
	event.Subscribe(deps.Bus, func(event.TilePurified) { seen++ })
	event.Emit(deps.Bus, event.TilePurified{Turn: 1, X: 1, Y: 1})

	rs.Update(0)
	if seen != 1 {
		t.Fatal("bus cycle did not run with recording disabled")
	}
}
