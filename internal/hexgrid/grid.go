// Package hexgrid implements the hex battle board: offset coordinates,
// world-space layout, cell occupancy and breadth-first pathfinding.
//
// The board is pointy-top with odd rows shifted half a cell to the right
// ("odd-r" layout). World positions live in the X/Z plane; Y is height and
// is never touched by the layout.
package hexgrid

import (
	"fmt"
	"math"
)

// Sqrt3 is used by the pointy-top layout formula.
const Sqrt3 = 1.7320508075688772

// Cell is an offset hex coordinate.
type Cell struct {
	Row int
	Col int
}

// C is a convenience constructor for Cell.
func C(row, col int) Cell {
	return Cell{Row: row, Col: col}
}

// String returns a string representation of the cell.
func (c Cell) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Vec3 is a world-space position.
type Vec3 struct {
	X, Y, Z float64
}

// Sub returns v - o.
func (v Vec3) Sub(o Vec3) Vec3 {
	return Vec3{X: v.X - o.X, Y: v.Y - o.Y, Z: v.Z - o.Z}
}

// Add returns v + o.
func (v Vec3) Add(o Vec3) Vec3 {
	return Vec3{X: v.X + o.X, Y: v.Y + o.Y, Z: v.Z + o.Z}
}

// Scale multiplies every component by f.
func (v Vec3) Scale(f float64) Vec3 {
	return Vec3{X: v.X * f, Y: v.Y * f, Z: v.Z * f}
}

// PlanarDistSq returns the squared distance in the X/Z plane.
func (v Vec3) PlanarDistSq(o Vec3) float64 {
	dx := v.X - o.X
	dz := v.Z - o.Z
	return dx*dx + dz*dz
}

// PlanarDist returns the distance in the X/Z plane.
func (v Vec3) PlanarDist(o Vec3) float64 {
	return math.Sqrt(v.PlanarDistSq(o))
}

// Grid is a rectangular hex board of Rows x Cols cells.
type Grid struct {
	Rows    int
	Cols    int
	HexSize float64 // Center-to-corner radius in world units

	offsetX  float64
	offsetZ  float64
	cells    []Cell
	centers  []Vec3
	occupied map[Cell]struct{}
}

// New creates a board centered on the world origin.
func New(rows, cols int, hexSize float64) *Grid {
	if rows < 1 {
		rows = 1
	}
	if cols < 1 {
		cols = 1
	}
	if hexSize <= 0 {
		hexSize = 1
	}

	g := &Grid{
		Rows:     rows,
		Cols:     cols,
		HexSize:  hexSize,
		occupied: make(map[Cell]struct{}),
	}

	// Center the board: widest row extent is cols-1 plus the odd-row shift.
	width := Sqrt3 * hexSize
	shift := 0.0
	if rows > 1 {
		shift = 0.5
	}
	g.offsetX = (float64(cols-1) + shift) * width / 2
	g.offsetZ = float64(rows-1) * 1.5 * hexSize / 2

	g.cells = make([]Cell, 0, rows*cols)
	g.centers = make([]Vec3, 0, rows*cols)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			g.cells = append(g.cells, C(r, c))
			g.centers = append(g.centers, g.GetWorldPosition(r, c))
		}
	}
	return g
}

// InBounds reports whether the cell lies on the board.
func (g *Grid) InBounds(c Cell) bool {
	return c.Row >= 0 && c.Row < g.Rows && c.Col >= 0 && c.Col < g.Cols
}

// Cells returns every cell on the board in row-major order.
// The returned slice must not be modified.
func (g *Grid) Cells() []Cell {
	return g.cells
}

// GetWorldPosition returns the world-space center of the cell at (row, col).
func (g *Grid) GetWorldPosition(row, col int) Vec3 {
	width := Sqrt3 * g.HexSize
	x := (float64(col) + 0.5*float64(row&1)) * width
	z := float64(row) * 1.5 * g.HexSize
	return Vec3{X: x - g.offsetX, Y: 0, Z: z - g.offsetZ}
}

// CellCenter is GetWorldPosition for a Cell value.
func (g *Grid) CellCenter(c Cell) Vec3 {
	return g.GetWorldPosition(c.Row, c.Col)
}

// GetGridPosition returns the cell whose center is nearest to pos.
//
// Hot path: this is an exhaustive scan over every cell, which is fine for
// the small boards used here. Larger boards should convert to axial
// coordinates and round instead.
func (g *Grid) GetGridPosition(pos Vec3) Cell {
	best := g.cells[0]
	bestDist := math.Inf(1)
	for i, center := range g.centers {
		d := center.PlanarDistSq(pos)
		if d < bestDist {
			bestDist = d
			best = g.cells[i]
		}
	}
	return best
}

// SnapToGrid moves pos to the center of its nearest cell, keeping its height.
func (g *Grid) SnapToGrid(pos Vec3) Vec3 {
	cell := g.GetGridPosition(pos)
	center := g.CellCenter(cell)
	center.Y = pos.Y
	return center
}

// SetCellOccupied marks or clears occupancy of a cell.
func (g *Grid) SetCellOccupied(c Cell, occupied bool) {
	if occupied {
		g.occupied[c] = struct{}{}
		return
	}
	delete(g.occupied, c)
}

// IsCellOccupied reports whether a cell is occupied.
func (g *Grid) IsCellOccupied(c Cell) bool {
	_, ok := g.occupied[c]
	return ok
}

// ClearOccupancy empties the occupancy set.
func (g *Grid) ClearOccupancy() {
	for c := range g.occupied {
		delete(g.occupied, c)
	}
}

// OccupiedCount returns the number of occupied cells.
func (g *Grid) OccupiedCount() int {
	return len(g.occupied)
}

// neighbor offsets by row parity (odd-r layout).
var (
	evenRowDirs = [6][2]int{{-1, -1}, {-1, 0}, {0, -1}, {0, 1}, {1, -1}, {1, 0}}
	oddRowDirs  = [6][2]int{{-1, 0}, {-1, 1}, {0, -1}, {0, 1}, {1, 0}, {1, 1}}
)

// Neighbors returns the on-board neighbors of a cell.
func (g *Grid) Neighbors(c Cell) []Cell {
	dirs := evenRowDirs
	if c.Row&1 == 1 {
		dirs = oddRowDirs
	}
	result := make([]Cell, 0, 6)
	for _, d := range dirs {
		n := C(c.Row+d[0], c.Col+d[1])
		if g.InBounds(n) {
			result = append(result, n)
		}
	}
	return result
}

// cube converts an offset cell to cube coordinates.
func cube(c Cell) (x, y, z int) {
	x = c.Col - (c.Row-(c.Row&1))/2
	z = c.Row
	y = -x - z
	return x, y, z
}

// Distance returns the hex distance between two cells, in cells.
func Distance(a, b Cell) int {
	ax, ay, az := cube(a)
	bx, by, bz := cube(b)
	return max(abs(ax-bx), abs(ay-by), abs(az-bz))
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
