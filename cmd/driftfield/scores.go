package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vadimyer/driftfield/internal/platform/tui"
	"github.com/vadimyer/driftfield/internal/storage"
)

var flagRoomCode string

var scoresCmd = &cobra.Command{
	Use:   "scores",
	Short: "Browse the local leaderboard",
	Long: `Browse survival scores in an interactive table, or print the
results of one online room with --room.

Examples:
  driftfield scores
  driftfield scores --room K7Q2XM`,
	Run: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagRoomCode, "room", "", "Print results for one room code instead")
}

func runScores(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	if flagRoomCode != "" {
		printRoomResults(store, flagRoomCode)
		return
	}

	if err := tui.RunScoreboard(store); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func printRoomResults(store *storage.Store, code string) {
	results, err := store.RoomResults(code)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if len(results) == 0 {
		fmt.Printf("No results recorded for room %s\n", code)
		return
	}
	fmt.Printf("Room %s (seed %08x):\n", code, results[0].Seed)
	for i, r := range results {
		fmt.Printf("  %2d. %-16s %ds\n", i+1, r.Participant, r.Score)
	}
}
