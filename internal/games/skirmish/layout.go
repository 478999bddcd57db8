package skirmish

import (
	"math"

	"github.com/vovakirdan/hex-skirmish/internal/combat"
	"github.com/vovakirdan/hex-skirmish/internal/hexgrid"
	"github.com/vovakirdan/hex-skirmish/internal/interaction"
)

const (
	cellW = 4 // Terminal columns per hex
	cellH = 2 // Terminal rows per hex
)

// Layout maps the hex board onto terminal cells. Odd rows are shifted
// right by half a hex, mirroring the grid's world layout.
//
//	row 0:  K↓  .   .   .
//	        ███
//	row 1:    .   b←  .   .
//	          ░░░
type Layout struct {
	grid    *hexgrid.Grid
	originX int
	originY int
	ref     hexgrid.Vec3 // World center of cell (0,0)
}

// NewLayout places the board's top-left hex at (x, y).
func NewLayout(g *hexgrid.Grid, x, y int) Layout {
	return Layout{grid: g, originX: x, originY: y, ref: g.CellCenter(hexgrid.C(0, 0))}
}

// Width returns the board width in terminal columns.
func (l Layout) Width() int {
	w := l.grid.Cols * cellW
	if l.grid.Rows > 1 {
		w += cellW / 2
	}
	return w
}

// Height returns the board height in terminal rows.
func (l Layout) Height() int {
	return l.grid.Rows * cellH
}

// Origin returns the screen position of the top-left hex.
func (l Layout) Origin() (x, y int) {
	return l.originX, l.originY
}

// CellOrigin returns the top-left terminal cell of a hex.
func (l Layout) CellOrigin(c hexgrid.Cell) (x, y int) {
	return l.originX + c.Col*cellW + (c.Row&1)*cellW/2, l.originY + c.Row*cellH
}

// CellAt returns the hex drawn at terminal cell (x, y).
func (l Layout) CellAt(x, y int) (hexgrid.Cell, bool) {
	dy := y - l.originY
	if dy < 0 {
		return hexgrid.Cell{}, false
	}
	row := dy / cellH
	dx := x - l.originX - (row&1)*cellW/2
	if dx < 0 {
		return hexgrid.Cell{}, false
	}
	c := hexgrid.C(row, dx/cellW)
	if !l.grid.InBounds(c) {
		return hexgrid.Cell{}, false
	}
	return c, true
}

// Project converts a world position to the terminal cell of its glyph.
// Positions between hex centers land between their screen cells, so moving
// tokens slide across the board.
func (l Layout) Project(pos hexgrid.Vec3) (x, y int) {
	colW := hexgrid.Sqrt3 * l.grid.HexSize
	rowH := 1.5 * l.grid.HexSize
	fx := (pos.X - l.ref.X) / colW * cellW
	fy := (pos.Z - l.ref.Z) / rowH * cellH
	return l.originX + int(math.Round(fx)), l.originY + int(math.Round(fy))
}

// HitTest resolves what lies under terminal cell (x, y): the topmost
// visible token whose glyph block covers it, and the board hex.
func (l Layout) HitTest(x, y int, units []*combat.Unit) interaction.Hit {
	var hit interaction.Hit
	if c, ok := l.CellAt(x, y); ok {
		hit.Cell = c
		hit.OnBoard = true
	}
	for i := len(units) - 1; i >= 0; i-- {
		u := units[i]
		tok, ok := u.Entity.(*Token)
		if !ok || !u.Alive || !tok.Visible() {
			continue
		}
		tx, ty := l.Project(tok.Position())
		if x >= tx && x < tx+cellW-1 && y >= ty && y < ty+cellH {
			hit.Entity = tok
			break
		}
	}
	return hit
}
