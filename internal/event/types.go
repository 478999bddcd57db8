package event

// LogKind classifies a combat log line for presentation.
type LogKind string

const (
	KindInfo    LogKind = "info"
	KindAttack  LogKind = "attack"
	KindDeath   LogKind = "death"
	KindTurn    LogKind = "turn"
	KindWarning LogKind = "warning" // Rejected intents and AI notices
	KindVictory LogKind = "victory"
)

// LogData is the payload of a Log event.
type LogData struct {
	Message string
	Kind    LogKind
}

// CombatEndedData is the payload of a CombatEnded event.
type CombatEndedData struct {
	FriendlyWon bool
	Round       int
}

// UnitAttackedData is the payload of a UnitAttacked event.
// Units are passed as opaque IDs so this package has no engine dependency.
type UnitAttackedData struct {
	AttackerID string
	DefenderID string
	Damage     float64
	Lethal     bool
}

// UnitDiedData is the payload of a UnitDied event.
type UnitDiedData struct {
	UnitID   string
	Friendly bool
}

// TurnChangedData is the payload of a TurnChanged event.
type TurnChangedData struct {
	UnitID   string
	Friendly bool
	Round    int
}

// UnitSelectedData is the payload of a UnitSelected event.
// UnitID is empty when the selection was cleared.
type UnitSelectedData struct {
	UnitID string
}
