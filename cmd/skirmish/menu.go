package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hex-skirmish/internal/platform/tui"
	"github.com/vovakirdan/hex-skirmish/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Pick scenarios from an interactive menu",
	Long: `Start in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to start a battle.
After a battle you return to the menu to fight again.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Start the scenario
  D            - Cycle difficulty
  H/Tab        - Battle history
  Q            - Quit

Examples:
  skirmish menu
  skirmish menu --fps 60
  skirmish menu --db ./battles.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	checkDifficulty()

	logger, closer := newLogger()
	defer closer.Close()
	reg := loadRegistry(logger)

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open history database: %v\n", err)
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	cfg := runtimeConfig()

	for {
		menuResult, err := tui.RunMenu(reg, cfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return
		}

		// Keep size and difficulty changes
		cfg = menuResult.Config

		if menuResult.Quit {
			return
		}

		if menuResult.WantsHistory {
			goBack, hErr := tui.RunHistory(reg, store, cfg.ScreenW, cfg.ScreenH)
			if hErr != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", hErr)
			}
			if goBack {
				continue
			}
			return
		}

		game, err := reg.Create(menuResult.ScenarioID)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating battle: %v\n", err)
			continue
		}

		// A fresh seed for every battle unless --seed pins it
		battleCfg := cfg
		if flagSeed == 0 {
			battleCfg.Seed = time.Now().UnixNano()
		}

		quit, err := tui.Run(game, store, battleCfg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error running battle: %v\n", err)
		}
		if quit {
			return
		}
	}
}
