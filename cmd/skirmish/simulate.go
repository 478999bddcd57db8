package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/hex-skirmish/internal/sim"
)

var (
	flagBattles  int
	flagMaxTime  time.Duration
	flagLogLevel string
	flagVerbose  bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate <scenario>",
	Short: "Run AI-vs-AI battles headless",
	Long: `Play a scenario many times with the AI driving both sides and report
win rates, so scenarios and difficulty presets can be balanced.

Battle i uses seed --seed + i, so a run is reproducible. A battle that
exceeds --max-time of game time is counted as a draw.

Examples:
  skirmish simulate duel
  skirmish simulate skirmish --battles 500 --difficulty hard
  skirmish simulate ambush --seed 7 --verbose
  skirmish simulate duel --log-level debug`,
	Args: cobra.ExactArgs(1),
	Run:  runSimulate,
}

func init() {
	simulateCmd.Flags().IntVar(&flagBattles, "battles", 100, "Number of battles to play")
	simulateCmd.Flags().DurationVar(&flagMaxTime, "max-time", time.Hour, "Game time before a battle is a draw")
	simulateCmd.Flags().StringVar(&flagLogLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	simulateCmd.Flags().BoolVarP(&flagVerbose, "verbose", "v", false, "Print every battle")
}

func runSimulate(_ *cobra.Command, args []string) {
	scenarioID := args[0]
	preset := checkDifficulty()

	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "sim",
		Level:           level,
	})

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	runner := sim.New(loadConfig(),
		sim.WithSeed(seed),
		sim.WithDifficulty(preset),
		sim.WithMaxTime(flagMaxTime.Seconds()),
		sim.WithLogger(logger),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	start := time.Now()
	rep, err := runner.Run(ctx, scenarioID, flagBattles)
	if err != nil && rep.Battles == 0 {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Interrupted after %d battles\n", rep.Battles)
	}

	if flagVerbose {
		fmt.Printf("  %-20s  %-8s  %-6s  %-6s  %s\n", "Seed", "Result", "Rounds", "Score", "Game time")
		fmt.Printf("  %-20s  %-8s  %-6s  %-6s  %s\n", "----", "------", "------", "-----", "---------")
		for _, r := range rep.Results {
			fmt.Printf("  %-20d  %-8s  %-6d  %-6d  %s\n",
				r.Seed, outcome(r), r.Summary.Rounds, r.Summary.Score, r.GameTime.Round(time.Second))
		}
		fmt.Println()
	}

	fmt.Printf("Scenario:     %s (%s)\n", rep.ScenarioID, preset)
	fmt.Printf("Battles:      %d in %s\n", rep.Battles, time.Since(start).Round(time.Millisecond))
	fmt.Printf("Friendly won: %d\n", rep.FriendlyWins)
	fmt.Printf("Enemy won:    %d\n", rep.EnemyWins)
	fmt.Printf("Draws:        %d\n", rep.TimedOut)
	fmt.Printf("Win rate:     %s\n", percent(rep.WinRate()))
	fmt.Printf("Avg rounds:   %.1f\n", rep.AvgRounds)
	fmt.Printf("Avg score:    %.1f\n", rep.AvgScore)
	fmt.Printf("Avg length:   %s\n", rep.AvgGameTime.Round(time.Second))
}

func outcome(r sim.Result) string {
	switch {
	case r.TimedOut:
		return "Draw"
	case r.Summary.FriendlyWon:
		return "Victory"
	default:
		return "Defeat"
	}
}
