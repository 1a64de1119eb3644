package main

import (
	"bufio"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vadimyer/driftfield/internal/config"
	"github.com/vadimyer/driftfield/internal/directory"
	"github.com/vadimyer/driftfield/internal/platform/tui"
	"github.com/vadimyer/driftfield/internal/storage"
)

var flagServerURL string

var hostCmd = &cobra.Command{
	Use:   "host",
	Short: "Host an online room",
	Long: `Open a room on a directory server and share its join code.

Everyone in the room receives the same seed when the host starts, so
all clients fly the exact same obstacle field and scores are directly
comparable.

Examples:
  driftfield host
  driftfield host --server ws://arcade.example.com:8099/ws --name ada`,
	Run: runHost,
}

var joinCmd = &cobra.Command{
	Use:   "join <code>",
	Short: "Join an online room by code",
	Args:  cobra.ExactArgs(1),
	Run:   runJoin,
}

func init() {
	for _, cmd := range []*cobra.Command{hostCmd, joinCmd} {
		cmd.Flags().StringVar(&flagServerURL, "server", "ws://localhost:8099/ws", "Directory server websocket URL")
		cmd.Flags().StringVar(&flagPlayer, "name", "", "Display name in the room (default: OS user)")
	}
}

func runHost(_ *cobra.Command, _ []string) {
	client, err := directory.Dial(flagServerURL, playerName())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	code, err := client.CreateRoom()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Room code: %s\n", code)
	fmt.Println("Share it with the other pilots, then press Enter to launch.")
	waitForEnter(client)

	if err := client.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	playOnline(client, code)
}

func runJoin(_ *cobra.Command, args []string) {
	client, err := directory.Dial(flagServerURL, playerName())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	defer client.Close()

	code := args[0]
	players, err := client.JoinRoom(code)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Joined room %s with: %v\n", code, players)
	fmt.Println("Waiting for the host to launch...")
	playOnline(client, code)
}

// waitForEnter drains stdin while surfacing roster changes, so the
// host sees pilots arrive before launching.
func waitForEnter(client *directory.Client) {
	done := make(chan struct{})
	go func() {
		bufio.NewReader(os.Stdin).ReadString('\n')
		close(done)
	}()
	for {
		select {
		case msg := <-client.Events():
			if msg.Type == directory.TypeRoom {
				fmt.Printf("Pilots: %v\n", msg.Players)
			}
		case <-done:
			return
		}
	}
}

// playOnline waits for the shared seed, runs one round on the fixed
// online field, reports the score and prints the room's results as
// they come in.
func playOnline(client *directory.Client, code string) {
	seed, err := client.WaitStarted(10 * time.Minute)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	width, height := 80, 24
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width, height = w, h
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		store = nil
	}

	cfg := config.Default()
	runErr := tui.Run(store, tui.Config{
		TickRate: flagFPS,
		ScreenW:  width,
		ScreenH:  height,
		// Online rounds run on the reference field regardless of
		// terminal size, otherwise wrap points would differ per client.
		FieldWidth:  cfg.Field.Width,
		FieldHeight: cfg.Field.Height,
		Seed:        seed,
		Player:      client.Name(),
		Params:      cfg.Params(),
		RoomCode:    code,
		OnFinal: func(score int) {
			client.ReportScore(score)
		},
	})
	if store != nil {
		store.Close()
	}
	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}

	fmt.Printf("Room %s results (seed %08x):\n", code, seed)
	deadline := time.After(30 * time.Second)
	for {
		select {
		case msg, ok := <-client.Events():
			if !ok {
				return
			}
			if msg.Type == directory.TypeScore {
				fmt.Printf("  %-16s %ds\n", msg.Participant, msg.Score)
			}
		case <-deadline:
			return
		}
	}
}
