package world

// TileKind identifies the terrain variant of one cell.
type TileKind uint8

const (
	TileWall      TileKind = iota // 0: opaque, impassable
	TileFloor                     // 1: open ground
	TileCorrupted                 // 2: open ground an animal can purify
)

// Cell is an integer grid coordinate.
type Cell struct {
	X, Y int
}

// Grid is the static tile layout of one map. Tiles never change during a
// turn; purification queued by the applier lands at turn-end cleanup.
type Grid struct {
	Width  int
	Height int
	kinds  []TileKind // flat, indexed [x*Height+y]
}

// NewGrid returns a Width×Height grid of solid wall. Loaders and tests
// carve it with SetKind.
func NewGrid(width, height int) *Grid {
	return &Grid{
		Width:  width,
		Height: height,
		kinds:  make([]TileKind, width*height),
	}
}

func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Width && y >= 0 && y < g.Height
}

// Kind returns the tile kind at (x,y). Out-of-bounds cells read as wall.
func (g *Grid) Kind(x, y int) TileKind {
	if !g.InBounds(x, y) {
		return TileWall
	}
	return g.kinds[x*g.Height+y]
}

func (g *Grid) SetKind(x, y int, k TileKind) {
	if !g.InBounds(x, y) {
		return
	}
	g.kinds[x*g.Height+y] = k
}

// Walkable reports whether a creature may stand on (x,y).
func (g *Grid) Walkable(x, y int) bool {
	return g.Kind(x, y) != TileWall
}

// Transparent reports whether sight passes through (x,y).
func (g *Grid) Transparent(x, y int) bool {
	return g.Kind(x, y) != TileWall
}
