package ai

import (
	"container/heap"
	"fmt"

	"github.com/mirewood/sim/internal/world"
)

// congestionPenalty is added to a walkable cell's cost for each blocking
// creature standing on it. It discourages pathing through occupied cells
// without forbidding it, so crowds flow around each other instead of
// deadlocking.
const congestionPenalty = 10

type pathNode struct {
	x, y   int
	g, h   int
	parent *pathNode
	index  int // heap index
}

type openList []*pathNode

func (ol openList) Len() int { return len(ol) }

func (ol openList) Less(i, j int) bool { return (ol[i].g + ol[i].h) < (ol[j].g + ol[j].h) }

func (ol openList) Swap(i, j int) {
	ol[i], ol[j] = ol[j], ol[i]
	ol[i].index = i
	ol[j].index = j
}

func (ol *openList) Push(x interface{}) {
	n := x.(*pathNode)
	n.index = len(*ol)
	*ol = append(*ol, n)
}
func (ol *openList) Pop() interface{} {
	old := *ol
	n := old[len(old)-1]
	old[len(old)-1] = nil
	*ol = old[:len(old)-1]
	return n
}

var dirs = [8][2]int{
	{1, 0}, {-1, 0}, {0, 1}, {0, -1},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// FindPath returns the cheapest 8-directional route from origin to dest,
// ordered start to goal with the origin cell stripped. Entering a cell
// costs twice its cell cost for a cardinal step and three times for a
// diagonal one; cell cost is 1 for walkable ground plus a congestion
// penalty per blocking creature in blockers. Non-walkable cells are never
// traversable. Returns an empty path when dest is unreachable or equals
// origin.
func FindPath(g *world.Grid, origin, dest world.Cell, blockers []world.Cell) []world.Cell {
	if !g.InBounds(origin.X, origin.Y) {
		panic(fmt.Sprintf("ai: path origin (%d,%d) off grid", origin.X, origin.Y))
	}
	if origin == dest || !g.InBounds(dest.X, dest.Y) {
		return nil
	}

	key := func(x, y int) int { return x*g.Height + y }

	cost := make([]int, g.Width*g.Height)
	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			if g.Walkable(x, y) {
				cost[key(x, y)] = 1
			}
		}
	}
	for _, b := range blockers {
		if g.InBounds(b.X, b.Y) && cost[key(b.X, b.Y)] > 0 {
			cost[key(b.X, b.Y)] += congestionPenalty
		}
	}

	// Cheapest possible step is 2, so 2×Chebyshev never overestimates.
	heuristic := func(x, y int) int { return 2 * chebyshev(x, y, dest.X, dest.Y) }

	start := &pathNode{x: origin.X, y: origin.Y, h: heuristic(origin.X, origin.Y)}
	ol := &openList{start}
	heap.Init(ol)

	closed := make(map[int]bool)
	best := make(map[int]*pathNode)
	best[key(origin.X, origin.Y)] = start

	for ol.Len() > 0 {
		cur := heap.Pop(ol).(*pathNode)
		if cur.x == dest.X && cur.y == dest.Y {
			return buildPath(cur)
		}
		k := key(cur.x, cur.y)
		if closed[k] {
			continue
		}
		closed[k] = true

		for _, d := range dirs {
			nx, ny := cur.x+d[0], cur.y+d[1]
			if !g.InBounds(nx, ny) {
				continue
			}
			nk := key(nx, ny)
			if cost[nk] == 0 || closed[nk] {
				continue
			}
			step := 2 * cost[nk]
			if d[0] != 0 && d[1] != 0 {
				step = 3 * cost[nk]
			}
			tg := cur.g + step
			if prev, ok := best[nk]; ok && tg >= prev.g {
				continue
			}
			node := &pathNode{x: nx, y: ny, g: tg, h: heuristic(nx, ny), parent: cur}
			best[nk] = node
			heap.Push(ol, node)
		}
	}
	return nil
}

// buildPath walks the parent chain back to the start, reverses it, and
// drops the origin cell.
func buildPath(end *pathNode) []world.Cell {
	var cells []world.Cell
	for n := end; n != nil; n = n.parent {
		cells = append(cells, world.Cell{X: n.x, Y: n.y})
	}
	for i, j := 0, len(cells)-1; i < j; i, j = i+1, j-1 {
		cells[i], cells[j] = cells[j], cells[i]
	}
	return cells[1:]
}

func chebyshev(ax, ay, bx, by int) int {
	dx := ax - bx
	if dx < 0 {
		dx = -dx
	}
	dy := ay - by
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}
