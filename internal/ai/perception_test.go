package ai

import (
	"testing"

	"github.com/mirewood/sim/internal/world"
)

func testCreature(id int32, faction, x, y int) *world.Creature {
	return &world.Creature{
		ID:      id,
		Species: "test",
		Faction: faction,
		X:       x,
		Y:       y,
		HP:      10,
		MaxHP:   10,
	}
}

func TestFindTargets_SkipsAlliesAndSelf(t *testing.T) {
	g := openGrid(12, 12)
	observer := testCreature(1, 1, 5, 5)
	ally := testCreature(2, 1, 6, 5)
	enemy := testCreature(3, 0, 7, 5)
	all := []*world.Creature{observer, ally, enemy}

	targets := FindTargets(g, observer, all)
	if len(targets) != 1 {
		t.Fatalf("got %d targets, want 1", len(targets))
	}
	if targets[0].Creature.ID != enemy.ID {
		t.Fatalf("target id %d, want %d", targets[0].Creature.ID, enemy.ID)
	}
	if targets[0].Distance != 2 {
		t.Fatalf("target distance %d, want 2", targets[0].Distance)
	}
}

func TestFindTargets_RequiresLineOfSight(t *testing.T) {
	g := openGrid(12, 12)
	g.SetKind(6, 5, world.TileWall)
	observer := testCreature(1, 1, 4, 5)
	hidden := testCreature(2, 0, 8, 5)

	targets := FindTargets(g, observer, []*world.Creature{observer, hidden})
	if len(targets) != 0 {
		t.Fatalf("creature behind a wall should not be a target, got %d", len(targets))
	}
}

func TestFindTargets_RespectsRadius(t *testing.T) {
	g := openGrid(30, 30)
	observer := testCreature(1, 1, 5, 5)
	far := testCreature(2, 0, 15, 5) // distance 10, beyond radius 8

	targets := FindTargets(g, observer, []*world.Creature{observer, far})
	if len(targets) != 0 {
		t.Fatalf("creature beyond vision radius should not be a target, got %d", len(targets))
	}
}

func TestFindTargets_SortedNearestFirst(t *testing.T) {
	g := openGrid(20, 20)
	observer := testCreature(1, 1, 9, 9)
	farther := testCreature(2, 0, 9, 14) // distance 5
	near := testCreature(3, 0, 10, 9)    // distance 1
	middle := testCreature(4, 0, 12, 9)  // distance 3
	all := []*world.Creature{observer, farther, near, middle}

	targets := FindTargets(g, observer, all)
	if len(targets) != 3 {
		t.Fatalf("got %d targets, want 3", len(targets))
	}
	wantIDs := []int32{3, 4, 2}
	for i, want := range wantIDs {
		if targets[i].Creature.ID != want {
			t.Fatalf("target %d has id %d, want %d", i, targets[i].Creature.ID, want)
		}
	}
}

func TestFindTargets_TiesKeepInputOrder(t *testing.T) {
	g := openGrid(20, 20)
	observer := testCreature(1, 1, 9, 9)
	a := testCreature(7, 0, 12, 9) // distance 3
	b := testCreature(9, 0, 9, 12) // distance 3
	all := []*world.Creature{observer, a, b}

	targets := FindTargets(g, observer, all)
	if len(targets) != 2 {
		t.Fatalf("got %d targets, want 2", len(targets))
	}
	if targets[0].Creature.ID != 7 || targets[1].Creature.ID != 9 {
		t.Fatalf("equal distances must keep input order, got %d then %d",
			targets[0].Creature.ID, targets[1].Creature.ID)
	}
}

func TestFindTargets_EmptyNeverNil(t *testing.T) {
	g := openGrid(8, 8)
	observer := testCreature(1, 1, 3, 3)
	targets := FindTargets(g, observer, []*world.Creature{observer})
	if targets == nil {
		t.Fatal("result must be an empty slice, not nil")
	}
	if len(targets) != 0 {
		t.Fatalf("got %d targets, want 0", len(targets))
	}
}
