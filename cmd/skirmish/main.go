// skirmish is a turn-based hex battle played in the terminal.
//
// Usage:
//
//	skirmish list                   - List available scenarios
//	skirmish play <scenario>        - Fight a scenario
//	skirmish menu                   - Pick scenarios interactively
//	skirmish history [scenario]     - Show recorded battles
//	skirmish simulate <scenario>    - Run AI-vs-AI battles headless
//	skirmish serve                  - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 30)
//	--seed <value>        - Set RNG seed for reproducible battles
//	--db <path>           - Set database path (default: ~/.skirmish/battles.db)
//	--config <path>       - Use a custom skirmish.yaml
//	--difficulty <level>  - easy, normal or hard
//	--log-file <path>     - Write engine logs to a file
//
// Every flag default can be set through the matching SKIRMISH_* variable.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/hex-skirmish/internal/config"
	"github.com/vovakirdan/hex-skirmish/internal/core"
	"github.com/vovakirdan/hex-skirmish/internal/games/skirmish"
	"github.com/vovakirdan/hex-skirmish/internal/registry"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
)

// env supplies the flag defaults.
var env = loadEnv()

func loadEnv() config.Env {
	e, err := config.LoadEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		return config.Env{
			DBPath:     "~/.skirmish/battles.db",
			FPS:        30,
			SSHAddr:    "0.0.0.0:2323",
			Difficulty: "normal",
		}
	}
	return e
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "skirmish",
	Short: "Hex Skirmish - turn-based hex battles in your terminal",
	Long: `Hex Skirmish is a turn-based tactics game on a hex board.
Deploy your units, then outmaneuver the enemy one initiative turn at a time.

Available commands:
  list      - Show all scenarios
  play      - Fight a scenario directly
  menu      - Interactive scenario picker
  history   - Show recorded battles
  simulate  - Run AI-vs-AI battles for balancing
  serve     - Start SSH server for remote play

Examples:
  skirmish list
  skirmish play duel
  skirmish play ambush --difficulty hard
  skirmish simulate skirmish --battles 200
  skirmish serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", env.FPS, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", env.Seed, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", env.DBPath, "Path to battle history database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", env.ConfigPath, "Path to custom skirmish YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", env.Difficulty, "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", env.LogFile, "Write engine logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(serveCmd)
}

// loadConfig loads the skirmish configuration or exits.
func loadConfig() config.SkirmishConfig {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// loadRegistry registers every configured scenario or exits.
func loadRegistry(logger *log.Logger) *registry.Registry {
	reg := registry.New()
	if err := skirmish.Register(reg, loadConfig(), skirmish.Options{Logger: logger}); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return reg
}

// newLogger returns a file logger when --log-file is set. The terminal belongs
// to the UI, so otherwise logs are discarded. The closer must be called on exit.
func newLogger() (*log.Logger, io.Closer) {
	if flagLogFile == "" {
		return log.New(io.Discard), io.NopCloser(nil)
	}
	f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open log file: %v\n", err)
		return log.New(io.Discard), io.NopCloser(nil)
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Prefix:          "skirmish",
		Level:           log.DebugLevel,
	})
	return logger, f
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.TickRate = flagFPS
	cfg.Seed = flagSeed
	cfg.Difficulty = flagDifficulty
	return cfg
}

// checkDifficulty exits on an unknown --difficulty value.
func checkDifficulty() config.DifficultyPreset {
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return preset
}
