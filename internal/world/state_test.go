package world

import "testing"

func testCreature(id int32, x, y int) *Creature {
	return &Creature{
		ID:             id,
		Species:        "test",
		Faction:        1,
		X:              x,
		Y:              y,
		HP:             5,
		MaxHP:          5,
		BlocksMovement: true,
	}
}

func TestState_PlaceAndGet(t *testing.T) {
	st := NewState(floorGrid(6, 6), 1)
	c := testCreature(1, 2, 3)
	st.Place(c)

	if st.Get(1) != c {
		t.Fatal("placed creature not retrievable by id")
	}
	if st.Get(99) != nil {
		t.Fatal("unknown id should return nil")
	}
	if st.Len() != 1 {
		t.Fatalf("len = %d, want 1", st.Len())
	}
}

func TestState_PlaceOffGridPanics(t *testing.T) {
	st := NewState(floorGrid(4, 4), 1)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic placing a creature off the grid")
		}
	}()
	st.Place(testCreature(1, 9, 9))
}

func TestState_AllSortedByID(t *testing.T) {
	st := NewState(floorGrid(8, 8), 1)
	for _, id := range []int32{4, 1, 3, 2} {
		st.Place(testCreature(id, int(id), 1))
	}
	all := st.All()
	if len(all) != 4 {
		t.Fatalf("len = %d, want 4", len(all))
	}
	for i, c := range all {
		if c.ID != int32(i+1) {
			t.Fatalf("position %d has id %d, want %d", i, c.ID, i+1)
		}
	}
}

func TestState_OccupancyFollowsMoves(t *testing.T) {
	st := NewState(floorGrid(6, 6), 1)
	c := testCreature(1, 1, 1)
	st.Place(c)

	st.MoveCreature(c, 4, 2)
	if got := st.CreaturesAt(1, 1); len(got) != 0 {
		t.Fatalf("old cell still holds %d creatures", len(got))
	}
	got := st.CreaturesAt(4, 2)
	if len(got) != 1 || got[0].ID != 1 {
		t.Fatal("new cell does not hold the moved creature")
	}
	if c.X != 4 || c.Y != 2 {
		t.Fatalf("creature coords are (%d,%d), want (4,2)", c.X, c.Y)
	}
}

func TestState_CreaturesAtSortedByID(t *testing.T) {
	st := NewState(floorGrid(6, 6), 1)
	st.Place(testCreature(5, 3, 3))
	st.Place(testCreature(2, 3, 3))
	st.Place(testCreature(9, 3, 3))

	got := st.CreaturesAt(3, 3)
	if len(got) != 3 {
		t.Fatalf("len = %d, want 3", len(got))
	}
	for i, want := range []int32{2, 5, 9} {
		if got[i].ID != want {
			t.Fatalf("position %d has id %d, want %d", i, got[i].ID, want)
		}
	}
}

func TestState_BlockedAt(t *testing.T) {
	st := NewState(floorGrid(6, 6), 1)
	st.Place(testCreature(1, 2, 2))

	ghost := testCreature(2, 3, 3)
	ghost.BlocksMovement = false
	st.Place(ghost)

	if !st.BlockedAt(2, 2, 0) {
		t.Fatal("blocking creature should block its cell")
	}
	if st.BlockedAt(2, 2, 1) {
		t.Fatal("excluded id should not block")
	}
	if st.BlockedAt(3, 3, 0) {
		t.Fatal("non-blocking creature should not block")
	}
	if st.BlockedAt(5, 5, 0) {
		t.Fatal("empty cell should not block")
	}
}

func TestState_RemoveClearsOccupancy(t *testing.T) {
	st := NewState(floorGrid(6, 6), 1)
	st.Place(testCreature(1, 2, 2))
	st.Remove(1)

	if st.Get(1) != nil {
		t.Fatal("removed creature still retrievable")
	}
	if len(st.CreaturesAt(2, 2)) != 0 {
		t.Fatal("removed creature still occupies its cell")
	}
	st.Remove(1) // idempotent
}

func TestState_DestroyQueueIsDeferred(t *testing.T) {
	st := NewState(floorGrid(6, 6), 1)
	st.Place(testCreature(1, 1, 1))
	st.Place(testCreature(2, 2, 2))

	st.QueueDestroy(2)
	st.QueueDestroy(2)
	if st.Get(2) == nil {
		t.Fatal("queued creature must survive until the flush")
	}

	removed := st.FlushDestroyQueue()
	if len(removed) != 1 || removed[0] != 2 {
		t.Fatalf("flush returned %v, want [2]", removed)
	}
	if st.Get(2) != nil {
		t.Fatal("flushed creature still present")
	}
	if st.FlushDestroyQueue() != nil {
		t.Fatal("second flush should return nil")
	}
}

func TestState_PurifyQueueIsDeferred(t *testing.T) {
	g := floorGrid(6, 6)
	g.SetKind(3, 3, TileCorrupted)
	st := NewState(g, 1)

	st.QueuePurify(3, 3)
	st.QueuePurify(1, 1) // already floor, no effect
	if g.Kind(3, 3) != TileCorrupted {
		t.Fatal("tile must stay corrupted until the flush")
	}

	if n := st.FlushPurifications(); n != 1 {
		t.Fatalf("flush purified %d tiles, want 1", n)
	}
	if g.Kind(3, 3) != TileFloor {
		t.Fatal("flushed tile should be floor")
	}
}

func TestState_RandomWalkableCellExcept(t *testing.T) {
	g := NewGrid(4, 4)
	g.SetKind(1, 1, TileFloor)
	g.SetKind(2, 2, TileFloor)
	st := NewState(g, 7)

	for i := 0; i < 50; i++ {
		cell, ok := st.RandomWalkableCellExcept(1, 1)
		if !ok {
			t.Fatal("expected a candidate cell")
		}
		if cell.X != 2 || cell.Y != 2 {
			t.Fatalf("draw %d returned (%d,%d), want the only other open cell (2,2)", i, cell.X, cell.Y)
		}
	}
}

func TestState_RandomWalkableCellExceptExhausted(t *testing.T) {
	g := NewGrid(3, 3)
	g.SetKind(1, 1, TileFloor)
	st := NewState(g, 1)

	if _, ok := st.RandomWalkableCellExcept(1, 1); ok {
		t.Fatal("no cell should qualify when the only open cell is excluded")
	}
}
