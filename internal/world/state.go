package world

import (
	"fmt"
	"math/rand"
	"sort"
)

// State is the authoritative creature set for one running simulation.
// Accessed only from the simulation goroutine, so there are no locks.
type State struct {
	Grid *Grid
	Turn int
	Rand *rand.Rand

	creatures map[int32]*Creature
	occupancy map[Cell]map[int32]struct{}

	// Deferred mutations, flushed by the cleanup phase so the grid and
	// creature set stay stable while a turn is in flight.
	destroyQueue []int32
	purifyQueue  []Cell
}

// NewState builds an empty world over the given grid with a seeded
// random stream.
func NewState(g *Grid, seed int64) *State {
	return &State{
		Grid:      g,
		Turn:      1,
		Rand:      rand.New(rand.NewSource(seed)),
		creatures: make(map[int32]*Creature),
		occupancy: make(map[Cell]map[int32]struct{}),
	}
}

// Place inserts a creature into the world at its current coordinates.
// Placing off the grid is a contract violation.
func (s *State) Place(c *Creature) {
	if !s.Grid.InBounds(c.X, c.Y) {
		panic(fmt.Sprintf("world: creature %d placed off grid at (%d,%d)", c.ID, c.X, c.Y))
	}
	s.creatures[c.ID] = c
	s.occupy(c.Cell(), c.ID)
}

// Remove deletes a creature immediately. Systems running mid-turn should
// use QueueDestroy instead.
func (s *State) Remove(id int32) {
	c := s.creatures[id]
	if c == nil {
		return
	}
	s.vacate(c.Cell(), id)
	delete(s.creatures, id)
}

// Get returns the creature with the given id, or nil.
func (s *State) Get(id int32) *Creature {
	return s.creatures[id]
}

// Len returns the number of placed creatures.
func (s *State) Len() int {
	return len(s.creatures)
}

// All returns every creature in ascending id order. The slice is freshly
// allocated per call.
func (s *State) All() []*Creature {
	out := make([]*Creature, 0, len(s.creatures))
	for _, c := range s.creatures {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// CreaturesAt returns the creatures standing on (x,y) in ascending id order.
func (s *State) CreaturesAt(x, y int) []*Creature {
	cell := s.occupancy[Cell{X: x, Y: y}]
	if len(cell) == 0 {
		return nil
	}
	out := make([]*Creature, 0, len(cell))
	for id := range cell {
		out = append(out, s.creatures[id])
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// BlockedAt reports whether a movement-blocking creature other than
// excludeID stands on (x,y).
func (s *State) BlockedAt(x, y int, excludeID int32) bool {
	for id := range s.occupancy[Cell{X: x, Y: y}] {
		if id == excludeID {
			continue
		}
		if c := s.creatures[id]; c != nil && c.BlocksMovement {
			return true
		}
	}
	return false
}

// MoveCreature repositions a creature and keeps the occupancy index in sync.
func (s *State) MoveCreature(c *Creature, x, y int) {
	if c.X == x && c.Y == y {
		return
	}
	s.vacate(c.Cell(), c.ID)
	c.X, c.Y = x, y
	s.occupy(c.Cell(), c.ID)
}

func (s *State) occupy(cell Cell, id int32) {
	occ := s.occupancy[cell]
	if occ == nil {
		occ = make(map[int32]struct{}, 1)
		s.occupancy[cell] = occ
	}
	occ[id] = struct{}{}
}

func (s *State) vacate(cell Cell, id int32) {
	occ := s.occupancy[cell]
	if occ != nil {
		delete(occ, id)
		if len(occ) == 0 {
			delete(s.occupancy, cell)
		}
	}
}

// QueueDestroy marks a creature for removal at turn-end cleanup.
func (s *State) QueueDestroy(id int32) {
	s.destroyQueue = append(s.destroyQueue, id)
}

// FlushDestroyQueue removes every queued creature and returns their ids.
func (s *State) FlushDestroyQueue() []int32 {
	if len(s.destroyQueue) == 0 {
		return nil
	}
	removed := make([]int32, 0, len(s.destroyQueue))
	for _, id := range s.destroyQueue {
		if s.creatures[id] == nil {
			continue // queued twice
		}
		s.Remove(id)
		removed = append(removed, id)
	}
	s.destroyQueue = s.destroyQueue[:0]
	return removed
}

// QueuePurify marks a corrupted cell to become floor at turn-end cleanup.
func (s *State) QueuePurify(x, y int) {
	s.purifyQueue = append(s.purifyQueue, Cell{X: x, Y: y})
}

// FlushPurifications applies queued tile changes and returns the count.
func (s *State) FlushPurifications() int {
	n := 0
	for _, cell := range s.purifyQueue {
		if s.Grid.Kind(cell.X, cell.Y) == TileCorrupted {
			s.Grid.SetKind(cell.X, cell.Y, TileFloor)
			n++
		}
	}
	s.purifyQueue = s.purifyQueue[:0]
	return n
}

// RandomWalkableCellExcept picks a uniformly random walkable cell other
// than (ex,ey). Reports false when no such cell exists.
func (s *State) RandomWalkableCellExcept(ex, ey int) (Cell, bool) {
	// Rejection sampling first; a full scan settles sparse grids.
	for i := 0; i < 4*s.Grid.Width*s.Grid.Height; i++ {
		x := s.Rand.Intn(s.Grid.Width)
		y := s.Rand.Intn(s.Grid.Height)
		if (x != ex || y != ey) && s.Grid.Walkable(x, y) {
			return Cell{X: x, Y: y}, true
		}
	}
	var open []Cell
	for x := 0; x < s.Grid.Width; x++ {
		for y := 0; y < s.Grid.Height; y++ {
			if (x != ex || y != ey) && s.Grid.Walkable(x, y) {
				open = append(open, Cell{X: x, Y: y})
			}
		}
	}
	if len(open) == 0 {
		return Cell{}, false
	}
	return open[s.Rand.Intn(len(open))], true
}
