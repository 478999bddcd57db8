package config

import (
	"fmt"
	"math"

	"github.com/vovakirdan/hex-skirmish/internal/combat"
)

// DifficultyPreset is a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Modifiers scale the enemy side and the AI's pacing.
type Modifiers struct {
	EnemyHealth  float64 // Multiplier on enemy health
	EnemyDamage  float64 // Multiplier on enemy damage
	Deliberation float64 // Multiplier on AI deliberation delay
}

// ParsePreset validates a preset name. Empty means normal.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch p := DifficultyPreset(s); p {
	case "":
		return DifficultyNormal, nil
	case DifficultyEasy, DifficultyNormal, DifficultyHard:
		return p, nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ModifiersFor returns the scaling applied by a preset.
func ModifiersFor(preset DifficultyPreset) Modifiers {
	switch preset {
	case DifficultyEasy:
		return Modifiers{EnemyHealth: 0.8, EnemyDamage: 0.75, Deliberation: 1.5}
	case DifficultyHard:
		return Modifiers{EnemyHealth: 1.25, EnemyDamage: 1.25, Deliberation: 0.6}
	default:
		return Modifiers{EnemyHealth: 1, EnemyDamage: 1, Deliberation: 1}
	}
}

// ApplyPreset scales every scenario's enemy units and the AI deliberation
// delay in place. Normal leaves the config untouched.
func ApplyPreset(cfg *SkirmishConfig, preset DifficultyPreset) {
	m := ModifiersFor(preset)
	if m == ModifiersFor(DifficultyNormal) {
		return
	}
	cfg.Timing.AIDeliberation *= m.Deliberation
	for i := range cfg.Scenarios {
		enemies := cfg.Scenarios[i].Enemy
		for j := range enemies {
			// Resolve against the defaults first so units that rely on
			// default_stats are scaled too.
			resolved := combat.NewStats(cfg.UnitStats(enemies[j]))
			health := math.Round(resolved.MaxHealth * m.EnemyHealth)
			damage := math.Round(resolved.Damage*m.EnemyDamage*10) / 10
			enemies[j].Stats.Health = combat.Float(health)
			enemies[j].Stats.MaxHealth = combat.Float(health)
			enemies[j].Stats.Damage = combat.Float(damage)
		}
	}
}
