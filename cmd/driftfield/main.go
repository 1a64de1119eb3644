// driftfield is a terminal arcade game: steer a drifting ship through a
// thickening field of obstacles, score is survival time. A shared-seed
// deterministic simulation lets players race the same obstacle field on
// independent machines with no state ever crossing the wire.
//
// Usage:
//
//	driftfield play              - Play solo
//	driftfield host              - Create an online room
//	driftfield join <code>       - Join an online room
//	driftfield directory         - Run the room directory server
//	driftfield serve             - Start SSH server for remote play
//	driftfield scores            - Show the leaderboard
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Fix the RNG seed for reproducible runs
//	--db <path>     - Set database path (default: ~/.driftfield/scores.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   uint32
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "driftfield",
	Short: "Driftfield - outlast the drift, in your terminal",
	Long: `Driftfield is a terminal survival arcade game. Your ship drifts on its
own; steer it away from the obstacles pouring in from the edges for as
long as you can. One 32-bit seed fully determines the obstacle field,
so online rooms share a seed and compare survival times instead of
synchronizing game state.

Examples:
  driftfield play
  driftfield play --difficulty hard
  driftfield host --server ws://play.example.net:8099/ws
  driftfield join AB2C3D
  driftfield directory --addr :8099
  driftfield serve --ssh :2299
  driftfield scores`,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Uint32Var(&flagSeed, "seed", 0, "RNG seed (0 = derive from current time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.driftfield/scores.db", "Path to scores database")

	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(hostCmd)
	rootCmd.AddCommand(joinCmd)
	rootCmd.AddCommand(directoryCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}
