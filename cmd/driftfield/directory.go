package main

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vadimyer/driftfield/internal/directory"
)

var flagDirectoryAddr string

var directoryCmd = &cobra.Command{
	Use:   "directory",
	Short: "Run a room directory server",
	Long: `Run the websocket directory that hands out room codes and seeds.

Pilots host and join rooms against this server with "driftfield host"
and "driftfield join". Rooms that never start are collected after a few
minutes of inactivity.`,
	Run: runDirectory,
}

func init() {
	directoryCmd.Flags().StringVar(&flagDirectoryAddr, "addr", ":8099", "Listen address")
}

func runDirectory(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "driftfield-dir",
	})

	srv := directory.NewServer(logger)

	go func() {
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for range ticker.C {
			srv.CollectIdleRooms()
		}
	}()

	logger.Info("Directory listening", "addr", flagDirectoryAddr)
	if err := srv.ListenAndServe(flagDirectoryAddr); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
