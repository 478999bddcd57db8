// Package config provides YAML-based battle configuration, difficulty
// presets and environment overrides.
package config

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/hex-skirmish/internal/combat"
	"github.com/vovakirdan/hex-skirmish/internal/hexgrid"
)

// SkirmishConfig is the full battle configuration.
type SkirmishConfig struct {
	Board        BoardConfig           `yaml:"board"`
	Timing       TimingConfig          `yaml:"timing"`
	Movement     MovementConfig        `yaml:"movement"`
	AI           AIConfig              `yaml:"ai"`
	Interaction  InteractionConfig     `yaml:"interaction"`
	DefaultStats combat.StatsOverrides `yaml:"default_stats"`
	Scenarios    []ScenarioConfig      `yaml:"scenarios"`
}

// BoardConfig defines the hex board.
type BoardConfig struct {
	Rows         int     `yaml:"rows"`
	Cols         int     `yaml:"cols"`
	HexSize      float64 `yaml:"hex_size"`
	FriendlyRows int     `yaml:"friendly_rows"` // Setup placement zone
}

// TimingConfig defines deferred-action delays in seconds.
type TimingConfig struct {
	AIDeliberation float64 `yaml:"ai_deliberation"`
	AttackRecover  float64 `yaml:"attack_recover"`
	DefendEnd      float64 `yaml:"defend_end"`
	AIEndTurn      float64 `yaml:"ai_end_turn"`
	AIPoll         float64 `yaml:"ai_poll"`
}

// MovementConfig defines unit movement animation.
type MovementConfig struct {
	Speed       float64 `yaml:"speed"`     // World units per second
	TurnRate    float64 `yaml:"turn_rate"` // Radians per second
	AutoEndTurn bool    `yaml:"auto_end_turn"`
}

// AIConfig defines target scoring weights.
type AIConfig struct {
	HealthWeight   float64 `yaml:"health_weight"`
	DamageWeight   float64 `yaml:"damage_weight"`
	DistanceWeight float64 `yaml:"distance_weight"`
	DamageCap      float64 `yaml:"damage_cap"`
	DistanceNorm   float64 `yaml:"distance_norm"`
	LethalBonus    float64 `yaml:"lethal_bonus"`
}

// InteractionConfig defines pointer handling.
type InteractionConfig struct {
	DragThreshold int `yaml:"drag_threshold"`
}

// ScenarioConfig is one built-in battle.
type ScenarioConfig struct {
	ID          string       `yaml:"id"`
	Title       string       `yaml:"title"`
	Description string       `yaml:"description"`
	Friendly    []UnitConfig `yaml:"friendly"`
	Enemy       []UnitConfig `yaml:"enemy"`
}

// Clone returns a copy that shares no unit slices or stat overrides with s,
// so presets can rescale it without touching the original.
func (s ScenarioConfig) Clone() ScenarioConfig {
	s.Friendly = cloneUnits(s.Friendly)
	s.Enemy = cloneUnits(s.Enemy)
	return s
}

func cloneUnits(units []UnitConfig) []UnitConfig {
	if units == nil {
		return nil
	}
	out := make([]UnitConfig, len(units))
	for i, u := range units {
		st := &u.Stats
		st.Health = clonePtr(st.Health)
		st.MaxHealth = clonePtr(st.MaxHealth)
		st.Defense = clonePtr(st.Defense)
		st.Damage = clonePtr(st.Damage)
		st.Dexterity = clonePtr(st.Dexterity)
		st.Initiative = clonePtr(st.Initiative)
		st.MovementPoints = clonePtr(st.MovementPoints)
		st.AttackRange = clonePtr(st.AttackRange)
		out[i] = u
	}
	return out
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// UnitConfig places one unit. Stats are layered over default_stats.
type UnitConfig struct {
	Name  string                `yaml:"name"`
	Row   int                   `yaml:"row"`
	Col   int                   `yaml:"col"`
	Stats combat.StatsOverrides `yaml:"stats"`
}

// Cell returns the unit's starting cell.
func (u UnitConfig) Cell() hexgrid.Cell {
	return hexgrid.C(u.Row, u.Col)
}

// Scenario looks up a scenario by id.
func (c SkirmishConfig) Scenario(id string) (ScenarioConfig, bool) {
	for _, s := range c.Scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return ScenarioConfig{}, false
}

// UnitStats resolves a unit's overrides on top of the configured defaults.
func (c SkirmishConfig) UnitStats(u UnitConfig) combat.StatsOverrides {
	return c.DefaultStats.Merge(u.Stats)
}

// CombatOptions converts the config into orchestrator options.
func (c SkirmishConfig) CombatOptions() combat.Options {
	opts := combat.DefaultOptions()
	opts.Timing = combat.Timing{
		AIDeliberation: c.Timing.AIDeliberation,
		AttackRecover:  c.Timing.AttackRecover,
		DefendEnd:      c.Timing.DefendEnd,
		AIEndTurn:      c.Timing.AIEndTurn,
		AIPoll:         c.Timing.AIPoll,
	}
	opts.MoveSpeed = c.Movement.Speed
	opts.TurnRate = c.Movement.TurnRate
	opts.AutoEndTurn = c.Movement.AutoEndTurn
	opts.AI = combat.AIWeights{
		Health:       c.AI.HealthWeight,
		Damage:       c.AI.DamageWeight,
		Distance:     c.AI.DistanceWeight,
		DamageCap:    c.AI.DamageCap,
		DistanceNorm: c.AI.DistanceNorm,
		LethalBonus:  c.AI.LethalBonus,
	}
	return opts
}

// Validate checks board dimensions and scenario placement.
func (c SkirmishConfig) Validate() error {
	if c.Board.Rows < 1 || c.Board.Cols < 1 {
		return fmt.Errorf("board: invalid size %dx%d", c.Board.Rows, c.Board.Cols)
	}
	if c.Board.HexSize <= 0 {
		return fmt.Errorf("board: hex_size must be positive, got %v", c.Board.HexSize)
	}
	if len(c.Scenarios) == 0 {
		return errors.New("no scenarios configured")
	}

	grid := hexgrid.New(c.Board.Rows, c.Board.Cols, c.Board.HexSize)
	ids := make(map[string]bool)
	var errs []error
	for _, s := range c.Scenarios {
		if s.ID == "" {
			errs = append(errs, errors.New("scenario without id"))
			continue
		}
		if ids[s.ID] {
			errs = append(errs, fmt.Errorf("scenario %s: duplicate id", s.ID))
		}
		ids[s.ID] = true
		if len(s.Friendly) == 0 || len(s.Enemy) == 0 {
			errs = append(errs, fmt.Errorf("scenario %s: both sides need at least one unit", s.ID))
		}

		taken := make(map[hexgrid.Cell]string)
		for _, u := range append(append([]UnitConfig(nil), s.Friendly...), s.Enemy...) {
			cell := u.Cell()
			if !grid.InBounds(cell) {
				errs = append(errs, fmt.Errorf("scenario %s: unit %s at %s is off the board", s.ID, u.Name, cell))
				continue
			}
			if other, ok := taken[cell]; ok {
				errs = append(errs, fmt.Errorf("scenario %s: units %s and %s share %s", s.ID, other, u.Name, cell))
			}
			taken[cell] = u.Name
		}
	}
	return errors.Join(errs...)
}
