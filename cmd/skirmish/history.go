package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/hex-skirmish/internal/storage"
)

var (
	flagHistoryLimit int
	flagHistoryClear bool
)

var historyCmd = &cobra.Command{
	Use:   "history [scenario]",
	Short: "Show recorded battles",
	Long: `Display recorded battles.

Without a scenario, lists the most recent battles of every scenario followed
by per-scenario totals. With a scenario, lists its best battles by score.

Examples:
  skirmish history
  skirmish history duel
  skirmish history duel --limit 25
  skirmish history duel --clear`,
	Args: cobra.MaximumNArgs(1),
	Run:  runHistory,
}

func init() {
	historyCmd.Flags().IntVar(&flagHistoryLimit, "limit", 10, "Number of battles to show")
	historyCmd.Flags().BoolVar(&flagHistoryClear, "clear", false, "Delete the history of the scenario")
}

func runHistory(_ *cobra.Command, args []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening history database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if len(args) == 0 {
		if flagHistoryClear {
			fmt.Fprintln(os.Stderr, "Error: --clear needs a scenario")
			os.Exit(1)
		}
		printRecent(store)
		return
	}

	scenarioID := args[0]
	reg := loadRegistry(nil)
	info, ok := reg.Lookup(scenarioID)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown scenario %q\n", scenarioID)
		fmt.Fprintln(os.Stderr, "Run 'skirmish list' to see available scenarios.")
		os.Exit(1)
	}

	if flagHistoryClear {
		if err := store.ClearBattles(scenarioID); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("History of %s cleared.\n", info.Title)
		return
	}

	printScenario(store, scenarioID, info.Title)
}

func printRecent(store *storage.Store) {
	battles, err := store.RecentBattles(flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving battles: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Recent battles")
	fmt.Println()

	if len(battles) == 0 {
		fmt.Println("No battles recorded yet.")
		fmt.Println()
		fmt.Println("Run 'skirmish play <scenario>' to fight the first one!")
		return
	}

	fmt.Printf("  %-16s  %-10s  %-7s  %-6s  %-6s  %s\n", "Date", "Scenario", "Result", "Rounds", "Score", "Difficulty")
	fmt.Printf("  %-16s  %-10s  %-7s  %-6s  %-6s  %s\n", "----", "--------", "------", "------", "-----", "----------")
	for _, b := range battles {
		fmt.Printf("  %-16s  %-10s  %-7s  %-6d  %-6d  %s\n",
			b.CreatedAt.Format("2006-01-02 15:04"), b.ScenarioID, result(b.FriendlyWon), b.Rounds, b.Score, b.Difficulty)
	}

	stats, err := store.AllScenarioStats()
	if err != nil || len(stats) == 0 {
		return
	}
	fmt.Println()
	fmt.Printf("  %-10s  %-7s  %-4s  %-6s  %s\n", "Scenario", "Battles", "Won", "Rate", "Best")
	fmt.Printf("  %-10s  %-7s  %-4s  %-6s  %s\n", "--------", "-------", "---", "----", "----")
	for _, id := range sortedKeys(stats) {
		st := stats[id]
		fmt.Printf("  %-10s  %-7d  %-4d  %-6s  %d\n", id, st.Battles, st.Wins, percent(st.WinRate()), st.BestScore)
	}
}

func printScenario(store *storage.Store, scenarioID, title string) {
	battles, err := store.TopScores(scenarioID, flagHistoryLimit)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving battles: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Best battles - %s\n", title)
	fmt.Println()

	if len(battles) == 0 {
		fmt.Println("No battles recorded yet.")
		fmt.Println()
		fmt.Printf("Run 'skirmish play %s' to fight the first one!\n", scenarioID)
		return
	}

	fmt.Printf("  %-4s  %-6s  %-7s  %-6s  %-8s  %s\n", "Rank", "Score", "Result", "Rounds", "Time", "Date")
	fmt.Printf("  %-4s  %-6s  %-7s  %-6s  %-8s  %s\n", "----", "-----", "------", "------", "----", "----")
	for i, b := range battles {
		fmt.Printf("  %-4d  %-6d  %-7s  %-6d  %-8s  %s\n",
			i+1, b.Score, result(b.FriendlyWon), b.Rounds, b.Duration, b.CreatedAt.Format("2006-01-02 15:04"))
	}

	st, err := store.ScenarioStats(scenarioID)
	if err == nil {
		fmt.Println()
		fmt.Printf("Battles: %d  Won: %d  Lost: %d  Win rate: %s  Avg rounds: %.1f\n",
			st.Battles, st.Wins, st.Losses(), percent(st.WinRate()), st.AvgRounds)
	}
}

func result(won bool) string {
	if won {
		return "Victory"
	}
	return "Defeat"
}

func percent(f float64) string {
	return fmt.Sprintf("%.0f%%", f*100)
}

// sortedKeys returns the keys of m in order.
func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
