package config

import (
	_ "embed"

	"github.com/vovakirdan/hex-skirmish/internal/combat"
)

//go:embed defaults/skirmish.yaml
var defaultSkirmishYAML []byte

// DefaultConfig returns the hard-coded configuration used when even the
// embedded YAML cannot be parsed. It carries a single duel scenario.
func DefaultConfig() SkirmishConfig {
	return SkirmishConfig{
		Board: BoardConfig{
			Rows:         8,
			Cols:         10,
			HexSize:      1,
			FriendlyRows: 2,
		},
		Timing: TimingConfig{
			AIDeliberation: 0.8,
			AttackRecover:  0.6,
			DefendEnd:      0.5,
			AIEndTurn:      0.6,
			AIPoll:         0.1,
		},
		Movement: MovementConfig{
			Speed:       4,
			TurnRate:    10,
			AutoEndTurn: true,
		},
		AI: AIConfig{
			HealthWeight:   0.3,
			DamageWeight:   0.2,
			DistanceWeight: 0.5,
			DamageCap:      20,
			DistanceNorm:   15,
			LethalBonus:    40,
		},
		Interaction: InteractionConfig{
			DragThreshold: 4,
		},
		Scenarios: []ScenarioConfig{
			{
				ID:          "duel",
				Title:       "Duel",
				Description: "One champion each. Pure stat check.",
				Friendly: []UnitConfig{
					{Name: "Knight", Row: 0, Col: 4, Stats: combat.StatsOverrides{
						Health: combat.Float(120), Damage: combat.Float(15), Defense: combat.Float(6),
					}},
				},
				Enemy: []UnitConfig{
					{Name: "Brute", Row: 7, Col: 5, Stats: combat.StatsOverrides{
						Health: combat.Float(110), Damage: combat.Float(14), Defense: combat.Float(4), Dexterity: combat.Int(8),
					}},
				},
			},
		},
	}
}
