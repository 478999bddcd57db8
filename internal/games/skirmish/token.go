package skirmish

import (
	"math"
	"unicode"
	"unicode/utf8"

	"github.com/vovakirdan/hex-skirmish/internal/hexgrid"
)

// attackFlashTime is how long a token stays highlighted after PlayAttack.
const attackFlashTime = 0.3

// Token is the on-board representation of a combat unit. It implements
// combat.Entity and every optional capability.
type Token struct {
	Name     string
	Friendly bool

	pos      hexgrid.Vec3
	facing   float64
	external bool
	visible  bool
	health   float64
	maxHP    float64

	flash float64 // Remaining attack flash time
	idle  float64 // Idle animation clock, runs while not externally controlled
}

// NewToken creates a visible token at pos.
func NewToken(name string, friendly bool, pos hexgrid.Vec3) *Token {
	return &Token{
		Name:     name,
		Friendly: friendly,
		pos:      pos,
		visible:  true,
	}
}

// Position returns the live world position.
func (t *Token) Position() hexgrid.Vec3 { return t.pos }

// SetPosition moves the token.
func (t *Token) SetPosition(p hexgrid.Vec3) { t.pos = p }

// Facing returns the yaw in radians.
func (t *Token) Facing() float64 { return t.facing }

// SetFacing sets the yaw in radians.
func (t *Token) SetFacing(a float64) { t.facing = a }

// SetExternalControl toggles engine control. A released token idles.
func (t *Token) SetExternalControl(on bool) {
	t.external = on
	t.idle = 0
}

// SetVisible shows or hides the token.
func (t *Token) SetVisible(v bool) { t.visible = v }

// SetHealth mirrors combat health for the HP bar.
func (t *Token) SetHealth(current, max float64) {
	t.health = current
	t.maxHP = max
}

// PlayAttack starts the attack flash.
func (t *Token) PlayAttack() { t.flash = attackFlashTime }

// Visible reports whether the token is drawn.
func (t *Token) Visible() bool { return t.visible }

// Controlled reports whether the engine drives the token.
func (t *Token) Controlled() bool { return t.external }

// Attacking reports whether the attack flash is showing.
func (t *Token) Attacking() bool { return t.flash > 0 }

// Tick advances cosmetic animation by dt seconds.
func (t *Token) Tick(dt float64) {
	if t.flash > 0 {
		t.flash = math.Max(0, t.flash-dt)
	}
	if !t.external {
		t.idle += dt
	}
}

// Glyph is the token's letter: upper case for friendly units.
func (t *Token) Glyph() rune {
	r, _ := utf8.DecodeRuneInString(t.Name)
	if r == utf8.RuneError {
		r = 'U'
	}
	if t.Friendly {
		return unicode.ToUpper(r)
	}
	return unicode.ToLower(r)
}

// Blink reports the idle blink phase of a released token.
func (t *Token) Blink() bool {
	return !t.external && math.Mod(t.idle, 1.0) > 0.5
}

// Arrow returns a glyph for the facing direction. Yaw 0 faces +Z, which is
// down the screen.
func (t *Token) Arrow() rune {
	arrows := [...]rune{'↓', '↘', '→', '↗', '↑', '↖', '←', '↙'}
	// atan2(dx, dz) puts +X at +pi/2.
	sector := int(math.Round(t.facing/(math.Pi/4))) % len(arrows)
	if sector < 0 {
		sector += len(arrows)
	}
	return arrows[sector]
}

// HealthBar renders a width-wide bar of the mirrored health.
func (t *Token) HealthBar(width int) string {
	filled := 0
	if t.maxHP > 0 && t.health > 0 {
		filled = int(math.Ceil(t.health / t.maxHP * float64(width)))
		if filled > width {
			filled = width
		}
	}
	bar := make([]rune, width)
	for i := range bar {
		if i < filled {
			bar[i] = '█'
		} else {
			bar[i] = '░'
		}
	}
	return string(bar)
}
