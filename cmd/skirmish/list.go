package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all available scenarios",
	Long:  `Shows every scenario of the loaded skirmish configuration.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	scenarios := loadRegistry(nil).List()

	if len(scenarios) == 0 {
		fmt.Println("No scenarios available.")
		return
	}

	fmt.Println("Available scenarios:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	maxTitleLen := 5
	for _, s := range scenarios {
		maxIDLen = max(maxIDLen, len(s.ID))
		maxTitleLen = max(maxTitleLen, len(s.Title))
	}

	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "ID", maxTitleLen, "Title", "Description")
	fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, "--", maxTitleLen, "-----", "-----------")

	for _, s := range scenarios {
		fmt.Printf("  %-*s  %-*s  %s\n", maxIDLen, s.ID, maxTitleLen, s.Title, s.Description)
	}

	fmt.Println()
	fmt.Println("Run 'skirmish play <id>' to fight a scenario.")
}
