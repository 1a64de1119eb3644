package main

import (
	"fmt"
	"os"
	"os/user"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vadimyer/driftfield/internal/config"
	"github.com/vadimyer/driftfield/internal/platform/tui"
	"github.com/vadimyer/driftfield/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagPlayer     string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play solo",
	Long: `Steer the drifting ship away from incoming obstacles.

Controls:
  Left/A/H   - Turn left (press again to release)
  Right/D/L  - Turn right (press again to release)
  Space/Down - Release the helm, drift
  R          - Restart (after crashing)
  Q/Ctrl+C   - Quit

Difficulty presets:
  easy   - sparser spawns, gentler ramp
  normal - the reference tuning
  hard   - denser spawns, steeper ramp
  fixed  - no progression at all

Examples:
  driftfield play
  driftfield play --difficulty hard
  driftfield play --seed 42
  driftfield play --config ./my-tuning.yaml`,
	Run: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tuning YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().StringVar(&flagPlayer, "name", "", "Player name on the leaderboard (default: OS user)")
}

// playerName resolves the leaderboard name.
func playerName() string {
	if flagPlayer != "" {
		return flagPlayer
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "pilot"
}

func runPlay(_ *cobra.Command, _ []string) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := config.ApplyPreset(&cfg, flagDifficulty); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	seed := flagSeed
	if seed == 0 {
		seed = uint32(time.Now().UnixNano())
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil // game still works, scores just aren't kept
	}

	runErr := tui.Run(store, tui.Config{
		TickRate:       flagFPS,
		ScreenW:        width,
		ScreenH:        height,
		FieldWidth:     cfg.Field.Width,
		FieldHeight:    cfg.Field.Height,
		FollowTerminal: true,
		Seed:           seed,
		Player:         playerName(),
		Params:         cfg.Params(),
		AllowRestart:   true,
	})

	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
