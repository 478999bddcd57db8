// Package interaction turns pointer input into combat intents. It owns unit
// selection and, before combat starts, drag-to-place of friendly units.
package interaction

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hex-skirmish/internal/combat"
	"github.com/vovakirdan/hex-skirmish/internal/event"
	"github.com/vovakirdan/hex-skirmish/internal/hexgrid"
)

// Kind is the type of a pointer event.
type Kind int

const (
	Down Kind = iota
	Move
	Up
	ContextMenu
)

// Hit is what lies under the pointer, resolved by the presentation layer.
type Hit struct {
	Entity  combat.Entity // Nil when no entity is under the pointer
	Cell    hexgrid.Cell  // Valid when OnBoard is set
	OnBoard bool
}

// PointerEvent is one pointer event with its pre-resolved hit test.
// X and Y are in presentation units (pixels or terminal cells).
type PointerEvent struct {
	Kind Kind
	X, Y int
	Hit  Hit
}

// Options configures a Translator.
type Options struct {
	// DragThreshold is the pointer travel that turns a press into a drag.
	DragThreshold int
	// Zone reports whether a friendly unit may be placed on a cell during
	// setup. Defaults to RowZone(2).
	Zone   func(hexgrid.Cell) bool
	Events *event.Dispatcher
	Logger *log.Logger
}

// RowZone allows placement on the first rows rows of the board.
func RowZone(rows int) func(hexgrid.Cell) bool {
	return func(c hexgrid.Cell) bool {
		return c.Row >= 0 && c.Row < rows
	}
}

type press struct {
	unit *combat.Unit
	x, y int
}

type drag struct {
	unit       *combat.Unit
	origin     hexgrid.Vec3
	originCell hexgrid.Cell
	over       Hit
}

// Translator converts pointer events into orchestrator intents.
type Translator struct {
	o         *combat.Orchestrator
	grid      *hexgrid.Grid
	zone      func(hexgrid.Cell) bool
	threshold int
	events    *event.Dispatcher
	log       *log.Logger

	selected *combat.Unit
	hover    *hexgrid.Cell
	pressed  *press
	dragging *drag
}

// New creates a translator bound to an orchestrator.
func New(o *combat.Orchestrator, opts Options) *Translator {
	if opts.DragThreshold <= 0 {
		opts.DragThreshold = 4
	}
	if opts.Zone == nil {
		opts.Zone = RowZone(2)
	}
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Translator{
		o:         o,
		grid:      o.Grid(),
		zone:      opts.Zone,
		threshold: opts.DragThreshold,
		events:    opts.Events,
		log:       logger,
	}
}

// HandlePointer processes one pointer event.
func (t *Translator) HandlePointer(ev PointerEvent) {
	switch ev.Kind {
	case Down:
		t.pressed = &press{unit: t.resolve(ev.Hit), x: ev.X, y: ev.Y}
	case Move:
		t.onMove(ev)
	case Up:
		t.onUp(ev)
	case ContextMenu:
		t.cancelDrag()
		t.pressed = nil
		t.Select(nil)
	}
}

func (t *Translator) onMove(ev PointerEvent) {
	if ev.Hit.OnBoard {
		c := ev.Hit.Cell
		t.hover = &c
	} else {
		t.hover = nil
	}

	if t.dragging != nil {
		t.dragging.over = ev.Hit
		return
	}
	p := t.pressed
	if p == nil || p.unit == nil || !p.unit.Friendly || !t.o.InSetup() {
		return
	}
	if abs(ev.X-p.x)+abs(ev.Y-p.y) < t.threshold || !p.unit.HasCell() {
		return
	}
	t.dragging = &drag{
		unit:       p.unit,
		origin:     p.unit.Entity.Position(),
		originCell: *p.unit.Cell,
		over:       ev.Hit,
	}
	t.Select(p.unit)
	t.log.Debug("drag started", "unit", p.unit.Name, "cell", p.unit.Cell.String())
}

func (t *Translator) onUp(ev PointerEvent) {
	defer func() { t.pressed = nil }()
	if t.dragging != nil {
		t.drop(ev.Hit)
		return
	}
	if t.pressed != nil {
		t.click(ev.Hit)
	}
}

// click applies the click semantics: attack an enemy in range, move onto
// empty ground, or otherwise select.
func (t *Translator) click(hit Hit) {
	target := t.resolve(hit)
	active := t.activeFriendly()

	if target != nil {
		if active != nil && !target.Friendly && t.o.InRange(active, target) {
			t.o.ExecuteAttack(active, target)
			return
		}
		t.Select(target)
		return
	}

	if hit.OnBoard && active != nil && active.HasCell() {
		path := t.grid.GetPath(*active.Cell, hit.Cell)
		if len(path) > active.Stats.CurrentMovement {
			path = path[:active.Stats.CurrentMovement]
		}
		t.o.ExecuteMove(active, path)
		return
	}
	t.Select(nil)
}

// drop ends a setup drag: snap to an empty zone cell, swap with a friendly
// unit, or revert to the pre-drag position.
func (t *Translator) drop(hit Hit) {
	d := t.dragging
	t.dragging = nil
	u := d.unit

	if !hit.OnBoard || !t.grid.InBounds(hit.Cell) || !t.zone(hit.Cell) || !t.o.InSetup() {
		u.Entity.SetPosition(d.origin)
		t.log.Debug("drop rejected", "unit", u.Name, "reverted", d.originCell.String())
		return
	}

	other := t.o.UnitAt(hit.Cell)
	switch {
	case other == u:
		u.Entity.SetPosition(d.origin)
	case other == nil:
		t.place(u, hit.Cell)
	case other.Friendly:
		t.place(other, d.originCell)
		t.place(u, hit.Cell)
		t.log.Debug("units swapped", "a", u.Name, "b", other.Name)
	default:
		u.Entity.SetPosition(d.origin)
	}
}

func (t *Translator) place(u *combat.Unit, cell hexgrid.Cell) {
	pos := t.grid.CellCenter(cell)
	pos.Y = u.Entity.Position().Y
	u.Entity.SetPosition(pos)
	c := cell
	u.Cell = &c
}

func (t *Translator) cancelDrag() {
	if t.dragging == nil {
		return
	}
	t.dragging.unit.Entity.SetPosition(t.dragging.origin)
	t.dragging = nil
}

// resolve maps a hit to a living unit, by entity first, then by cell.
func (t *Translator) resolve(hit Hit) *combat.Unit {
	if hit.Entity != nil {
		if u := t.o.UnitForEntity(hit.Entity); u != nil && u.Alive {
			return u
		}
	}
	if hit.OnBoard {
		return t.o.UnitAt(hit.Cell)
	}
	return nil
}

// activeFriendly returns the unit holding a human-driven turn, or nil.
func (t *Translator) activeFriendly() *combat.Unit {
	u := t.o.ActiveUnit()
	if u == nil || !u.Friendly || t.o.Phase() != combat.PhasePlayerTurn {
		return nil
	}
	return u
}

// Select changes the selection and announces it. Nil clears it.
func (t *Translator) Select(u *combat.Unit) {
	if t.selected == u {
		return
	}
	t.selected = u
	id := ""
	if u != nil {
		id = u.ID
	}
	t.events.Emit(event.UnitSelected, event.UnitSelectedData{UnitID: id})
}

// Selected returns the selected unit, or nil.
func (t *Translator) Selected() *combat.Unit {
	return t.selected
}

// Dragging reports whether a setup drag is in progress.
func (t *Translator) Dragging() bool {
	return t.dragging != nil
}

// Reset drops selection, hover and any drag in progress.
func (t *Translator) Reset() {
	t.cancelDrag()
	t.selected = nil
	t.hover = nil
	t.pressed = nil
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
