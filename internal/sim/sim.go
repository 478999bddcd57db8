// Package sim runs headless AI-vs-AI battles for balancing scenarios.
// Both sides are driven by the combat AI policy and time advances in fixed
// steps, so a seed fully determines a battle.
package sim

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/hex-skirmish/internal/combat"
	"github.com/vovakirdan/hex-skirmish/internal/config"
	"github.com/vovakirdan/hex-skirmish/internal/games/skirmish"
	"github.com/vovakirdan/hex-skirmish/internal/hexgrid"
)

// Runner plays batches of battles for one configuration.
type Runner struct {
	cfg        config.SkirmishConfig
	seed       int64
	step       float64 // Seconds per simulated frame
	maxTime    float64 // Game seconds before a battle is called a draw
	difficulty config.DifficultyPreset
	log        *log.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithSeed sets the seed of the first battle; battle i uses seed+i.
func WithSeed(seed int64) Option {
	return func(r *Runner) { r.seed = seed }
}

// WithStep sets the simulated frame length in seconds.
func WithStep(step float64) Option {
	return func(r *Runner) {
		if step > 0 {
			r.step = step
		}
	}
}

// WithMaxTime caps a battle's game time in seconds.
func WithMaxTime(seconds float64) Option {
	return func(r *Runner) {
		if seconds > 0 {
			r.maxTime = seconds
		}
	}
}

// WithDifficulty scales the enemy side with a preset.
func WithDifficulty(p config.DifficultyPreset) Option {
	return func(r *Runner) { r.difficulty = p }
}

// WithLogger sets the logger. Engine logs go to the same logger at debug.
func WithLogger(l *log.Logger) Option {
	return func(r *Runner) {
		if l != nil {
			r.log = l
		}
	}
}

// New creates a runner over cfg.
func New(cfg config.SkirmishConfig, opts ...Option) *Runner {
	r := &Runner{
		cfg:        cfg,
		seed:       1,
		step:       0.05,
		maxTime:    3600,
		difficulty: config.DifficultyNormal,
		log:        log.New(io.Discard),
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Result is the outcome of one battle.
type Result struct {
	Seed     int64
	Summary  combat.Summary
	GameTime time.Duration
	TimedOut bool
}

// Report aggregates a batch of battles of one scenario.
type Report struct {
	ScenarioID   string
	Battles      int
	FriendlyWins int
	EnemyWins    int
	TimedOut     int
	AvgRounds    float64
	AvgScore     float64
	AvgGameTime  time.Duration
	Results      []Result
}

// WinRate returns the friendly win fraction over finished battles.
func (r Report) WinRate() float64 {
	finished := r.FriendlyWins + r.EnemyWins
	if finished == 0 {
		return 0
	}
	return float64(r.FriendlyWins) / float64(finished)
}

// Run plays battles battles of a scenario. It stops early, returning the
// partial report and the context error, when ctx is cancelled.
func (r *Runner) Run(ctx context.Context, scenarioID string, battles int) (Report, error) {
	sc, ok := r.cfg.Scenario(scenarioID)
	if !ok {
		return Report{}, fmt.Errorf("sim: unknown scenario %q", scenarioID)
	}
	if battles < 1 {
		battles = 1
	}

	cfg := r.cfg
	cfg.Scenarios = []config.ScenarioConfig{sc.Clone()}
	config.ApplyPreset(&cfg, r.difficulty)

	rep := Report{ScenarioID: scenarioID}
	for i := 0; i < battles; i++ {
		if err := ctx.Err(); err != nil {
			return rep.finish(), err
		}
		res := r.battle(cfg, cfg.Scenarios[0], r.seed+int64(i))
		r.log.Info("battle finished",
			"scenario", scenarioID,
			"seed", res.Seed,
			"friendly_won", res.Summary.FriendlyWon,
			"rounds", res.Summary.Rounds,
			"timed_out", res.TimedOut,
		)
		rep.add(res)
	}
	return rep.finish(), nil
}

// Battle plays a single battle with the given seed.
func (r *Runner) Battle(scenarioID string, seed int64) (Result, error) {
	sc, ok := r.cfg.Scenario(scenarioID)
	if !ok {
		return Result{}, fmt.Errorf("sim: unknown scenario %q", scenarioID)
	}
	cfg := r.cfg
	cfg.Scenarios = []config.ScenarioConfig{sc.Clone()}
	config.ApplyPreset(&cfg, r.difficulty)
	return r.battle(cfg, cfg.Scenarios[0], seed), nil
}

func (r *Runner) battle(cfg config.SkirmishConfig, sc config.ScenarioConfig, seed int64) Result {
	grid := hexgrid.New(cfg.Board.Rows, cfg.Board.Cols, cfg.Board.HexSize)
	opts := cfg.CombatOptions()
	opts.AutoFriendly = true
	opts.Seed = seed
	opts.Logger = r.log.WithPrefix("engine")
	o := combat.New(grid, opts)

	side := func(units []config.UnitConfig, friendly bool) []combat.Participant {
		out := make([]combat.Participant, 0, len(units))
		for _, u := range units {
			tok := skirmish.NewToken(u.Name, friendly, grid.CellCenter(u.Cell()))
			out = append(out, combat.Participant{Name: u.Name, Entity: tok, Stats: cfg.UnitStats(u)})
		}
		return out
	}
	o.Prepare(side(sc.Friendly, true), side(sc.Enemy, false))
	o.Start()

	elapsed := 0.0
	for elapsed < r.maxTime {
		if over, _ := o.Outcome(); over {
			break
		}
		o.Update(r.step)
		elapsed += r.step
	}

	res := Result{
		Seed:     seed,
		Summary:  o.Summary(),
		GameTime: time.Duration(elapsed * float64(time.Second)),
	}
	res.TimedOut = !res.Summary.Over
	o.Reset()
	return res
}

func (rep *Report) add(res Result) {
	rep.Battles++
	switch {
	case res.TimedOut:
		rep.TimedOut++
	case res.Summary.FriendlyWon:
		rep.FriendlyWins++
	default:
		rep.EnemyWins++
	}
	rep.Results = append(rep.Results, res)
}

func (rep Report) finish() Report {
	if rep.Battles == 0 {
		return rep
	}
	var rounds, score float64
	var gameTime time.Duration
	for _, res := range rep.Results {
		rounds += float64(res.Summary.Rounds)
		score += float64(res.Summary.Score)
		gameTime += res.GameTime
	}
	n := float64(rep.Battles)
	rep.AvgRounds = rounds / n
	rep.AvgScore = score / n
	rep.AvgGameTime = gameTime / time.Duration(rep.Battles)
	return rep
}
