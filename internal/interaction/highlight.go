package interaction

import (
	"sort"

	"github.com/vovakirdan/hex-skirmish/internal/combat"
	"github.com/vovakirdan/hex-skirmish/internal/hexgrid"
)

// HighlightKind tells the presentation layer how to draw a cell overlay.
type HighlightKind int

const (
	Selected     HighlightKind = iota // The selected unit's cell
	MoveTarget                        // Reachable with remaining movement
	AttackTarget                      // Enemy in attack range
	PathStep                          // Route preview to the hovered cell
	Threat                            // Cells a non-active unit could strike next turn
	DropValid                         // Setup drop target accepted
	DropInvalid                       // Setup drop target rejected
)

// String returns the kind's name.
func (k HighlightKind) String() string {
	switch k {
	case Selected:
		return "selected"
	case MoveTarget:
		return "move"
	case AttackTarget:
		return "attack"
	case PathStep:
		return "path"
	case Threat:
		return "threat"
	case DropValid:
		return "drop-valid"
	case DropInvalid:
		return "drop-invalid"
	default:
		return "unknown"
	}
}

// Highlight is one declarative cell overlay.
type Highlight struct {
	Cell hexgrid.Cell
	Kind HighlightKind
}

// Highlights returns the overlays for the current selection, hover and
// drag state, sorted by cell then kind.
func (t *Translator) Highlights() []Highlight {
	var out []Highlight
	if d := t.dragging; d != nil {
		out = append(out, Highlight{Cell: d.originCell, Kind: Selected})
		if d.over.OnBoard {
			kind := DropInvalid
			if t.dropAllowed(d.over.Cell) {
				kind = DropValid
			}
			out = append(out, Highlight{Cell: d.over.Cell, Kind: kind})
		}
		return sortHighlights(out)
	}

	active := t.activeFriendly()
	sel := t.selected
	if sel == nil || !sel.Alive {
		sel = active
	}
	if sel == nil || !sel.HasCell() {
		return nil
	}
	out = append(out, Highlight{Cell: *sel.Cell, Kind: Selected})

	if sel == active {
		out = append(out, t.turnOverlay(active)...)
	} else {
		for _, c := range t.threatCells(sel) {
			out = append(out, Highlight{Cell: c, Kind: Threat})
		}
	}
	return sortHighlights(out)
}

// turnOverlay shows where the active unit can still move and whom it can
// still attack, plus the route to the hovered cell.
func (t *Translator) turnOverlay(u *combat.Unit) []Highlight {
	var out []Highlight
	if u.State != combat.StateIdle {
		return nil
	}

	if !u.Stats.HasMovedThisTurn && u.Stats.CurrentMovement > 0 {
		reach := t.grid.Reachable(*u.Cell, u.Stats.CurrentMovement)
		for c := range reach {
			out = append(out, Highlight{Cell: c, Kind: MoveTarget})
		}
		if t.hover != nil {
			if _, ok := reach[*t.hover]; ok {
				for _, c := range t.grid.GetPath(*u.Cell, *t.hover) {
					out = append(out, Highlight{Cell: c, Kind: PathStep})
				}
			}
		}
	}

	if !u.Stats.HasActedThisTurn {
		for _, enemy := range t.o.Alive(!u.Friendly) {
			if enemy.HasCell() && t.o.InRange(u, enemy) {
				out = append(out, Highlight{Cell: *enemy.Cell, Kind: AttackTarget})
			}
		}
	}
	return out
}

// threatCells returns every cell u could attack after a full move.
func (t *Translator) threatCells(u *combat.Unit) []hexgrid.Cell {
	reach := t.grid.Reachable(*u.Cell, u.Stats.MovementPoints)
	reach[*u.Cell] = 0

	var out []hexgrid.Cell
	for _, c := range t.grid.Cells() {
		if c == *u.Cell {
			continue
		}
		for from := range reach {
			if hexgrid.Distance(from, c) <= u.Stats.AttackRange {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

func (t *Translator) dropAllowed(c hexgrid.Cell) bool {
	if !t.grid.InBounds(c) || !t.zone(c) {
		return false
	}
	other := t.o.UnitAt(c)
	return other == nil || other.Friendly
}

func sortHighlights(hs []Highlight) []Highlight {
	sort.Slice(hs, func(i, j int) bool {
		a, b := hs[i], hs[j]
		if a.Cell.Row != b.Cell.Row {
			return a.Cell.Row < b.Cell.Row
		}
		if a.Cell.Col != b.Cell.Col {
			return a.Cell.Col < b.Cell.Col
		}
		return a.Kind < b.Kind
	})
	return hs
}
