package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hex-skirmish/internal/platform/tui"
	"github.com/vovakirdan/hex-skirmish/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play <scenario>",
	Short: "Fight a scenario",
	Long: `Start a battle in the specified scenario.

Setup:
  Drag your units inside the green zone, then press S to start.

Controls:
  Mouse      - Select a unit, click a cell to move, click an enemy to attack
  Right/Esc  - Clear the selection
  E/Space    - End turn
  W          - Wait (act later this round)
  D          - Defend
  Tab        - Select the next unit
  C          - Copy the combat log
  P          - Pause
  R          - New battle (after it ends)
  Q/Ctrl+C   - Quit

Difficulty options:
  easy    - Weaker enemies
  normal  - Scenario as configured
  hard    - Stronger enemies

Examples:
  skirmish play duel
  skirmish play ambush --difficulty hard
  skirmish play skirmish --seed 42
  skirmish play duel --config ./my-skirmish.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	scenarioID := args[0]
	checkDifficulty()

	logger, closer := newLogger()
	defer closer.Close()

	reg := loadRegistry(logger)
	if !reg.Exists(scenarioID) {
		fmt.Fprintf(os.Stderr, "Error: unknown scenario %q\n", scenarioID)
		fmt.Fprintln(os.Stderr, "Run 'skirmish list' to see available scenarios.")
		os.Exit(1)
	}

	game, err := reg.Create(scenarioID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating battle: %v\n", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		// Continue without storage - the battle still works
		store = nil
	}

	_, runErr := tui.Run(game, store, runtimeConfig())
	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
