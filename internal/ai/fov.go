package ai

import (
	"fmt"

	"github.com/mirewood/sim/internal/world"
)

// VisionRadius is the sight radius every behavior policy perceives with.
const VisionRadius = 8

// Mask is a per-cell visibility flag set over one grid.
type Mask struct {
	Width  int
	Height int
	vis    []bool // flat, indexed [x*Height+y]
}

func newMask(width, height int) *Mask {
	return &Mask{Width: width, Height: height, vis: make([]bool, width*height)}
}

// At reports whether (x,y) is visible. Out-of-bounds cells are not.
func (m *Mask) At(x, y int) bool {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return false
	}
	return m.vis[x*m.Height+y]
}

func (m *Mask) set(x, y int) {
	m.vis[x*m.Height+y] = true
}

// ComputeVisibility returns the visibility mask seen from origin. A cell is
// visible when it lies within the Euclidean radius and no non-transparent
// cell sits strictly between it and the origin on the sight line; the
// origin itself is always visible. Pure function of the grid and origin.
func ComputeVisibility(g *world.Grid, origin world.Cell, radius int) *Mask {
	if !g.InBounds(origin.X, origin.Y) {
		panic(fmt.Sprintf("ai: visibility origin (%d,%d) off grid", origin.X, origin.Y))
	}
	m := newMask(g.Width, g.Height)
	m.set(origin.X, origin.Y)
	r2 := radius * radius
	for x := 0; x < g.Width; x++ {
		for y := 0; y < g.Height; y++ {
			dx, dy := x-origin.X, y-origin.Y
			if dx*dx+dy*dy > r2 {
				continue
			}
			if lineClear(g, origin.X, origin.Y, x, y) {
				m.set(x, y)
			}
		}
	}
	return m
}

// lineClear walks the Bresenham line between the endpoints and reports
// whether every cell strictly between them is transparent. Endpoints are
// canonicalized first so sight is symmetric.
func lineClear(g *world.Grid, x0, y0, x1, y1 int) bool {
	if x1 < x0 || (x1 == x0 && y1 < y0) {
		x0, y0, x1, y1 = x1, y1, x0, y0
	}

	dx := x1 - x0
	dy := y1 - y0
	absDx, absDy := dx, dy
	if absDx < 0 {
		absDx = -absDx
	}
	if absDy < 0 {
		absDy = -absDy
	}

	stepX, stepY := 1, 1
	if dx < 0 {
		stepX = -1
	}
	if dy < 0 {
		stepY = -1
	}

	err := absDx - absDy
	x, y := x0, y0

	for {
		if x == x1 && y == y1 {
			return true
		}
		if (x != x0 || y != y0) && !g.Transparent(x, y) {
			return false
		}
		e2 := 2 * err
		if e2 > -absDy {
			err -= absDy
			x += stepX
		}
		if e2 < absDx {
			err += absDx
			y += stepY
		}
	}
}
