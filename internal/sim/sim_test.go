package sim

import (
	"context"
	"errors"
	"testing"

	"github.com/vovakirdan/hex-skirmish/internal/config"
)

func TestRunFinishesEveryBattle(t *testing.T) {
	r := New(config.DefaultConfig(), WithSeed(7))
	rep, err := r.Run(context.Background(), "duel", 4)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if rep.Battles != 4 || len(rep.Results) != 4 {
		t.Fatalf("battles = %d, results = %d, want 4", rep.Battles, len(rep.Results))
	}
	if rep.TimedOut != 0 {
		t.Errorf("timed out = %d, want 0", rep.TimedOut)
	}
	if rep.FriendlyWins+rep.EnemyWins != 4 {
		t.Errorf("wins %d + %d != 4", rep.FriendlyWins, rep.EnemyWins)
	}
	for i, res := range rep.Results {
		if res.Seed != 7+int64(i) {
			t.Errorf("result %d seed = %d", i, res.Seed)
		}
		if !res.Summary.Over || res.Summary.Rounds < 1 {
			t.Errorf("result %d summary = %+v", i, res.Summary)
		}
		if res.Summary.FriendlySurvivors > 0 && res.Summary.EnemySurvivors > 0 {
			t.Errorf("result %d ended with both sides alive", i)
		}
	}
	if rep.AvgRounds < 1 || rep.AvgGameTime <= 0 {
		t.Errorf("averages rounds=%v time=%v", rep.AvgRounds, rep.AvgGameTime)
	}
}

func TestBattleIsDeterministic(t *testing.T) {
	r := New(config.DefaultConfig())
	a, err := r.Battle("duel", 99)
	if err != nil {
		t.Fatalf("Battle: %v", err)
	}
	b, _ := r.Battle("duel", 99)
	if a != b {
		t.Errorf("same seed gave %+v and %+v", a, b)
	}
}

func TestTimeoutIsADraw(t *testing.T) {
	r := New(config.DefaultConfig(), WithMaxTime(0.5))
	rep, err := r.Run(context.Background(), "duel", 2)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if rep.TimedOut != 2 || rep.FriendlyWins+rep.EnemyWins != 0 {
		t.Errorf("report = %+v, want two timeouts", rep)
	}
	if rep.WinRate() != 0 {
		t.Errorf("win rate = %v, want 0 with no finished battles", rep.WinRate())
	}
}

func TestRunErrors(t *testing.T) {
	r := New(config.DefaultConfig())
	if _, err := r.Run(context.Background(), "nope", 1); err == nil {
		t.Error("unknown scenario accepted")
	}
	if _, err := r.Battle("nope", 1); err == nil {
		t.Error("unknown scenario accepted by Battle")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	rep, err := r.Run(ctx, "duel", 3)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
	if rep.Battles != 0 {
		t.Errorf("battles = %d after cancel", rep.Battles)
	}
}

func TestHardDifficultyHurtsFriendlyOdds(t *testing.T) {
	cfg := config.DefaultConfig()
	easy, err := New(cfg, WithDifficulty(config.DifficultyEasy)).Run(context.Background(), "duel", 10)
	if err != nil {
		t.Fatalf("Run easy: %v", err)
	}
	hard, err := New(cfg, WithDifficulty(config.DifficultyHard)).Run(context.Background(), "duel", 10)
	if err != nil {
		t.Fatalf("Run hard: %v", err)
	}
	if hard.WinRate() > easy.WinRate() {
		t.Errorf("hard win rate %v above easy %v", hard.WinRate(), easy.WinRate())
	}
}

func TestWinRate(t *testing.T) {
	tests := []struct {
		rep  Report
		want float64
	}{
		{Report{}, 0},
		{Report{FriendlyWins: 3, EnemyWins: 1}, 0.75},
		{Report{FriendlyWins: 2, EnemyWins: 0, TimedOut: 5}, 1},
	}
	for _, tt := range tests {
		if got := tt.rep.WinRate(); got != tt.want {
			t.Errorf("WinRate(%+v) = %v, want %v", tt.rep, got, tt.want)
		}
	}
}
