package skirmish

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/hex-skirmish/internal/combat"
	"github.com/vovakirdan/hex-skirmish/internal/core"
	"github.com/vovakirdan/hex-skirmish/internal/event"
	"github.com/vovakirdan/hex-skirmish/internal/interaction"
)

var highlightColors = map[interaction.HighlightKind]core.Color{
	interaction.Selected:     core.ColorTeal,
	interaction.MoveTarget:   core.ColorNavy,
	interaction.AttackTarget: core.ColorMaroon,
	interaction.PathStep:     core.ColorOlive,
	interaction.Threat:       core.ColorDarkGray,
	interaction.DropValid:    core.ColorGreen,
	interaction.DropInvalid:  core.ColorRed,
}

var logColors = map[event.LogKind]core.Color{
	event.KindInfo:    core.ColorWhite,
	event.KindAttack:  core.ColorOrange,
	event.KindDeath:   core.ColorBrightRed,
	event.KindTurn:    core.ColorCyan,
	event.KindWarning: core.ColorYellow,
	event.KindVictory: core.ColorBrightGreen,
}

// Render draws the battle to the screen.
func (g *Game) Render(dst *core.Screen) {
	dst.Clear()

	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHeader(dst)
	g.renderBoard(dst)
	g.renderTokens(dst)
	g.renderPanel(dst)
	g.renderStatus(dst)
	g.renderOverlays(dst)
}

func (g *Game) renderTooSmall(dst *core.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small", core.ColorBrightYellow)
	need := fmt.Sprintf("Need at least %dx%d", boardX+g.layout.Width()+3+panelMin, boardY+g.layout.Height()+3)
	dst.DrawTextCentered(y+1, need, core.ColorGray)
}

func (g *Game) renderHeader(dst *core.Screen) {
	dst.DrawText(boardX, 0, "HEX SKIRMISH · "+g.Title(), core.ColorBrightWhite)

	st := g.State()
	info := fmt.Sprintf("Round %d  Score %d", st.Round, st.Score)
	if g.orch.InSetup() {
		info = "Deployment"
	}
	dst.DrawText(g.screenW-len([]rune(info))-1, 0, info, core.ColorGray)
}

// renderBoard draws cell markers and highlight tints.
func (g *Game) renderBoard(dst *core.Screen) {
	setup := g.orch.InSetup()
	zone := interaction.RowZone(g.cfg.Board.FriendlyRows)

	for _, h := range g.trans.Highlights() {
		x, y := g.layout.CellOrigin(h.Cell)
		bg := highlightColors[h.Kind]
		for dy := 0; dy < cellH; dy++ {
			for dx := 0; dx < cellW-1; dx++ {
				dst.Tint(x+dx, y+dy, bg)
			}
		}
	}

	for _, c := range g.grid.Cells() {
		x, y := g.layout.CellOrigin(c)
		fg := core.ColorDarkGray
		if setup && zone(c) {
			fg = core.ColorGreen
		}
		dst.SetColor(x, y, '·', fg)
	}
}

// renderTokens draws dead units as markers, then living tokens with their
// facing arrow and HP bar.
func (g *Game) renderTokens(dst *core.Screen) {
	active := g.orch.ActiveUnit()
	units := g.orch.Units()

	for _, u := range units {
		tok, ok := u.Entity.(*Token)
		if !ok || u.Alive {
			continue
		}
		x, y := g.layout.Project(tok.Position())
		dst.SetColor(x, y, 'x', core.ColorDarkGray)
	}

	for _, u := range units {
		tok, ok := u.Entity.(*Token)
		if !ok || !u.Alive || !tok.Visible() {
			continue
		}
		x, y := g.layout.Project(tok.Position())

		fg := core.ColorBrightRed
		if u.Friendly {
			fg = core.ColorBrightBlue
		}
		switch {
		case tok.Attacking():
			fg = core.ColorBrightWhite
		case u == active:
			fg = core.ColorBrightYellow
		case tok.Blink():
			fg = core.ColorGray
		}
		dst.SetColor(x, y, tok.Glyph(), fg)
		dst.SetColor(x+1, y, tok.Arrow(), fg)

		barFg := core.ColorGreen
		switch f := u.HealthFraction(); {
		case f <= 0.25:
			barFg = core.ColorRed
		case f <= 0.5:
			barFg = core.ColorYellow
		}
		dst.DrawText(x, y+1, tok.HealthBar(cellW-1), barFg)
	}
}

// renderPanel draws turn order, unit cards and the combat log to the right
// of the board.
func (g *Game) renderPanel(dst *core.Screen) {
	px := boardX + g.layout.Width() + 3
	pw := g.screenW - px - 1
	r := core.NewRect(px, boardY-1, pw, g.screenH-boardY)
	dst.DrawBox(r, core.ColorDarkGray)

	x := px + 2
	w := pw - 4
	y := r.Y + 1

	y = g.renderOrder(dst, x, y, w)
	y++

	active := g.orch.ActiveUnit()
	if active != nil {
		y = g.renderCard(dst, active, x, y, w, "Active")
	}
	if sel := g.trans.Selected(); sel != nil && sel != active {
		y = g.renderCard(dst, sel, x, y, w, "Selected")
	}

	dst.DrawText(x, y, "Log", core.ColorBrightWhite)
	y++
	rows := r.Bottom() - 1 - y
	if rows <= 0 {
		return
	}
	start := len(g.entries) - rows
	if start < 0 {
		start = 0
	}
	for _, e := range g.entries[start:] {
		fg, ok := logColors[e.Kind]
		if !ok {
			fg = core.ColorWhite
		}
		dst.DrawText(x, y, fit(e.Text, w), fg)
		y++
	}
}

func (g *Game) renderOrder(dst *core.Screen, x, y, w int) int {
	dst.DrawText(x, y, "Turn order", core.ColorBrightWhite)
	y++
	if !g.orch.Started() {
		dst.DrawText(x, y, "rolled when battle starts", core.ColorGray)
		return y + 1
	}

	order := g.orch.Queue()
	if a := g.orch.ActiveUnit(); a != nil {
		order = append([]*combat.Unit{a}, order...)
	}
	cx := x
	for i, u := range order {
		if cx+2 > x+w {
			break
		}
		fg := core.ColorBrightRed
		if u.Friendly {
			fg = core.ColorBrightBlue
		}
		if i == 0 && u == g.orch.ActiveUnit() {
			fg = core.ColorBrightYellow
		}
		if tok, ok := u.Entity.(*Token); ok {
			dst.SetColor(cx, y, tok.Glyph(), fg)
		}
		cx += 2
	}

	// Units that waited act after the queue drains.
	waited := g.orch.Waiting()
	if len(waited) > 0 && cx+4 <= x+w {
		dst.SetColor(cx, y, '|', core.ColorGray)
		cx += 2
		for _, u := range waited {
			if cx+2 > x+w {
				break
			}
			if tok, ok := u.Entity.(*Token); ok {
				dst.SetColor(cx, y, tok.Glyph(), core.ColorGray)
			}
			cx += 2
		}
	}
	return y + 1
}

func (g *Game) renderCard(dst *core.Screen, u *combat.Unit, x, y, w int, label string) int {
	fg := core.ColorBrightRed
	if u.Friendly {
		fg = core.ColorBrightBlue
	}
	dst.DrawText(x, y, fit(fmt.Sprintf("%s: %s (%s)", label, u.Name, u.Side()), w), fg)
	s := u.Stats
	lines := []string{
		fmt.Sprintf("HP %.0f/%.0f  DEF %.0f  DMG %.0f", s.Health, s.MaxHealth, s.Defense, s.Damage),
		fmt.Sprintf("MOVE %d/%d  RANGE %d  INIT %d", s.CurrentMovement, s.MovementPoints, s.AttackRange, u.CurrentInitiative),
	}
	var flags []string
	if s.HasMovedThisTurn {
		flags = append(flags, "moved")
	}
	if s.HasActedThisTurn {
		flags = append(flags, "acted")
	}
	if u.State != combat.StateIdle {
		flags = append(flags, strings.ToLower(u.State.String()))
	}
	if len(flags) > 0 {
		lines = append(lines, strings.Join(flags, ", "))
	}
	for i, line := range lines {
		dst.DrawText(x+1, y+1+i, fit(line, w-1), core.ColorWhite)
	}
	return y + len(lines) + 2
}

func (g *Game) renderStatus(dst *core.Screen) {
	var hint string
	over, _ := g.orch.Outcome()
	switch {
	case over:
		hint = "R restart · C copy log · Esc menu · Q quit"
	case g.orch.InSetup():
		hint = "Drag units in the green zone · S start battle · Q quit"
	case g.playerUnit() != nil:
		hint = "Click ground: move · Click enemy: attack · D defend · W wait · E end turn · Tab select"
	default:
		hint = "Enemy turn · Tab select · P pause"
	}
	dst.DrawText(boardX, g.screenH-1, fit(hint, g.screenW-boardX-1), core.ColorGray)
}

func (g *Game) renderOverlays(dst *core.Screen) {
	over, won := g.orch.Outcome()
	switch {
	case g.paused:
		g.drawBanner(dst, []string{"PAUSED", "P to resume"}, core.ColorBrightYellow)
	case over && won:
		g.drawBanner(dst, []string{"VICTORY", fmt.Sprintf("Score %d", g.orch.Score()), "R to fight again"}, core.ColorBrightGreen)
	case over:
		g.drawBanner(dst, []string{"DEFEAT", fmt.Sprintf("Score %d", g.orch.Score()), "R to try again"}, core.ColorBrightRed)
	}
}

// drawBanner draws a boxed message centered over the board.
func (g *Game) drawBanner(dst *core.Screen, lines []string, fg core.Color) {
	w := 0
	for _, l := range lines {
		if n := len([]rune(l)); n > w {
			w = n
		}
	}
	w += 4
	h := len(lines) + 2
	x := boardX + (g.layout.Width()-w)/2
	y := boardY + (g.layout.Height()-h)/2

	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			dst.SetCell(x+dx, y+dy, core.Cell{Rune: ' '})
		}
	}
	dst.DrawBox(core.NewRect(x, y, w, h), fg)
	for i, l := range lines {
		lx := x + (w-len([]rune(l)))/2
		dst.DrawText(lx, y+1+i, l, fg)
	}
}

// fit truncates s to w runes.
func fit(s string, w int) string {
	if w <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= w {
		return s
	}
	if w == 1 {
		return "…"
	}
	return string(r[:w-1]) + "…"
}
