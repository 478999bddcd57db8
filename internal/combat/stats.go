package combat

// Stats is the combat-relevant stat block of a unit.
type Stats struct {
	Health    float64
	MaxHealth float64
	Defense   float64
	Damage    float64

	Dexterity       int
	Initiative      int // Initiative seed; equals Dexterity unless overridden
	MovementPoints  int
	CurrentMovement int
	AttackRange     int // In cells

	HasActedThisTurn bool
	HasMovedThisTurn bool
}

// DefaultStats returns the documented default stat block.
func DefaultStats() Stats {
	return Stats{
		Health:          100,
		MaxHealth:       100,
		Defense:         5,
		Damage:          10,
		Dexterity:       10,
		Initiative:      10,
		MovementPoints:  3,
		CurrentMovement: 3,
		AttackRange:     1,
	}
}

// StatsOverrides is a partial stat block. Nil fields keep the default.
type StatsOverrides struct {
	Health         *float64 `yaml:"health,omitempty"`
	MaxHealth      *float64 `yaml:"max_health,omitempty"`
	Defense        *float64 `yaml:"defense,omitempty"`
	Damage         *float64 `yaml:"damage,omitempty"`
	Dexterity      *int     `yaml:"dexterity,omitempty"`
	Initiative     *int     `yaml:"initiative,omitempty"`
	MovementPoints *int     `yaml:"movement_points,omitempty"`
	AttackRange    *int     `yaml:"attack_range,omitempty"`
}

// Float returns a pointer to v, for building overrides.
func Float(v float64) *float64 { return &v }

// Int returns a pointer to v, for building overrides.
func Int(v int) *int { return &v }

// NewStats merges overrides over DefaultStats.
func NewStats(o StatsOverrides) Stats {
	return NewStatsFrom(DefaultStats(), o)
}

// NewStatsFrom merges overrides over base and normalizes the result:
//   - if only health is given, max health follows it
//   - health is clamped to max health
//   - the initiative seed falls back to dexterity
//   - current movement starts at movement points
//   - per-turn flags start cleared
func NewStatsFrom(base Stats, o StatsOverrides) Stats {
	s := base
	if o.Health != nil {
		s.Health = *o.Health
		if o.MaxHealth == nil {
			s.MaxHealth = *o.Health
		}
	}
	if o.MaxHealth != nil {
		s.MaxHealth = *o.MaxHealth
	}
	if o.Defense != nil {
		s.Defense = *o.Defense
	}
	if o.Damage != nil {
		s.Damage = *o.Damage
	}
	if o.Dexterity != nil {
		s.Dexterity = *o.Dexterity
	}
	s.Initiative = s.Dexterity
	if o.Initiative != nil {
		s.Initiative = *o.Initiative
	}
	if o.MovementPoints != nil {
		s.MovementPoints = *o.MovementPoints
	}
	if o.AttackRange != nil {
		s.AttackRange = *o.AttackRange
	}

	if s.MaxHealth < 1 {
		s.MaxHealth = 1
	}
	if s.Health > s.MaxHealth {
		s.Health = s.MaxHealth
	}
	if s.Defense < 0 {
		s.Defense = 0
	}
	if s.Damage < 0 {
		s.Damage = 0
	}
	if s.MovementPoints < 0 {
		s.MovementPoints = 0
	}
	if s.AttackRange < 1 {
		s.AttackRange = 1
	}
	s.CurrentMovement = s.MovementPoints
	s.HasActedThisTurn = false
	s.HasMovedThisTurn = false
	return s
}

// Merge layers o on top of the receiver: fields set in o win.
func (base StatsOverrides) Merge(o StatsOverrides) StatsOverrides {
	out := base
	if o.Health != nil {
		out.Health = o.Health
	}
	if o.MaxHealth != nil {
		out.MaxHealth = o.MaxHealth
	}
	if o.Defense != nil {
		out.Defense = o.Defense
	}
	if o.Damage != nil {
		out.Damage = o.Damage
	}
	if o.Dexterity != nil {
		out.Dexterity = o.Dexterity
	}
	if o.Initiative != nil {
		out.Initiative = o.Initiative
	}
	if o.MovementPoints != nil {
		out.MovementPoints = o.MovementPoints
	}
	if o.AttackRange != nil {
		out.AttackRange = o.AttackRange
	}
	return out
}
