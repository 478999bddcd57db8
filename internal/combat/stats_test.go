package combat

import "testing"

func TestNewStatsDefaults(t *testing.T) {
	s := NewStats(StatsOverrides{})
	want := DefaultStats()
	if s != want {
		t.Errorf("NewStats({}) = %+v, want %+v", s, want)
	}
}

func TestNewStatsOverrides(t *testing.T) {
	tests := []struct {
		name  string
		o     StatsOverrides
		check func(t *testing.T, s Stats)
	}{
		{
			name: "health only sets max health",
			o:    StatsOverrides{Health: Float(40)},
			check: func(t *testing.T, s Stats) {
				if s.Health != 40 || s.MaxHealth != 40 {
					t.Errorf("health=%v max=%v, want 40/40", s.Health, s.MaxHealth)
				}
			},
		},
		{
			name: "health clamped to max",
			o:    StatsOverrides{Health: Float(150), MaxHealth: Float(120)},
			check: func(t *testing.T, s Stats) {
				if s.Health != 120 {
					t.Errorf("health=%v, want 120", s.Health)
				}
			},
		},
		{
			name: "initiative falls back to dexterity",
			o:    StatsOverrides{Dexterity: Int(14)},
			check: func(t *testing.T, s Stats) {
				if s.Initiative != 14 {
					t.Errorf("initiative=%d, want 14", s.Initiative)
				}
			},
		},
		{
			name: "explicit initiative wins",
			o:    StatsOverrides{Dexterity: Int(14), Initiative: Int(3)},
			check: func(t *testing.T, s Stats) {
				if s.Initiative != 3 {
					t.Errorf("initiative=%d, want 3", s.Initiative)
				}
			},
		},
		{
			name: "current movement follows movement points",
			o:    StatsOverrides{MovementPoints: Int(5)},
			check: func(t *testing.T, s Stats) {
				if s.CurrentMovement != 5 {
					t.Errorf("current movement=%d, want 5", s.CurrentMovement)
				}
			},
		},
		{
			name: "attack range at least one",
			o:    StatsOverrides{AttackRange: Int(0)},
			check: func(t *testing.T, s Stats) {
				if s.AttackRange != 1 {
					t.Errorf("attack range=%d, want 1", s.AttackRange)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, NewStats(tt.o))
		})
	}
}

func TestStatsOverridesMerge(t *testing.T) {
	base := StatsOverrides{Health: Float(80), Damage: Float(12)}
	top := StatsOverrides{Damage: Float(20), Defense: Float(3)}

	got := NewStats(base.Merge(top))
	if got.Health != 80 {
		t.Errorf("health=%v, want 80", got.Health)
	}
	if got.Damage != 20 {
		t.Errorf("damage=%v, want 20", got.Damage)
	}
	if got.Defense != 3 {
		t.Errorf("defense=%v, want 3", got.Defense)
	}
}

func TestStateTransitions(t *testing.T) {
	tests := []struct {
		from, to State
		ok       bool
	}{
		{StateIdle, StateMoving, true},
		{StateMoving, StateIdle, true},
		{StateIdle, StateAttacking, true},
		{StateAttacking, StateIdle, true},
		{StateIdle, StateDefending, true},
		{StateDefending, StateIdle, false},
		{StateMoving, StateAttacking, false},
		{StateAttacking, StateDead, true},
		{StateDead, StateIdle, false},
	}
	for _, tt := range tests {
		if got := tt.from.canTransition(tt.to); got != tt.ok {
			t.Errorf("%s -> %s = %v, want %v", tt.from, tt.to, got, tt.ok)
		}
	}
}
