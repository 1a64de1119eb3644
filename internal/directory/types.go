// Package directory implements the session directory and score
// broadcast collaborators: a websocket room service that pairs players
// by join code, hands every room member the identical 32-bit seed at
// start, and fans out final-score reports. The simulation core never
// imports this package; it only receives the seed and emits one
// terminal score.
package directory

import (
	"crypto/rand"
	"encoding/base32"
	"encoding/binary"
	"fmt"
	"strings"
	"time"
)

// Message is the type-tagged envelope for every frame on the wire.
// Unused fields are omitted per message type.
type Message struct {
	Type string `json:"type"`

	// Identity and room addressing.
	Name string `json:"name,omitempty"`
	Code string `json:"code,omitempty"`

	// Start broadcast: the one seed all participants simulate from.
	Seed uint32 `json:"seed,omitempty"`

	// Score report/broadcast.
	Participant string `json:"participant,omitempty"`
	Score       int    `json:"score,omitempty"`
	Alive       bool   `json:"alive"`

	// Roster broadcast.
	Players []string `json:"players,omitempty"`

	// Error text.
	Message string `json:"message,omitempty"`
}

// Message types, client to server.
const (
	TypeCreate = "create" // open a room, become host
	TypeJoin   = "join"   // join a room by code
	TypeStart  = "start"  // host only: seed the room and start
	TypeScore  = "score"  // report a final score (fire and forget)
)

// Message types, server to client.
const (
	TypeRoom    = "room"    // roster update, also the create/join ack
	TypeStarted = "started" // carries the room seed
	TypeLeft    = "left"    // a participant disconnected
	TypeError   = "error"
)

const (
	// How long an unstarted room may sit idle before it is collected.
	roomTimeout = 5 * time.Minute

	// MaxRoomSize bounds how many participants a room accepts.
	MaxRoomSize = 8
)

// generateJoinCode returns a 6-character A-Z/2-7 room code.
func generateJoinCode() string {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		// Fallback to timestamp-based
		return fmt.Sprintf("%06X", time.Now().UnixNano()&0xFFFFFF)
	}
	return strings.ToUpper(base32.StdEncoding.EncodeToString(b)[:6])
}

// generateSeed draws the 32-bit session seed a room is started with.
func generateSeed() uint32 {
	b := make([]byte, 4)
	if _, err := rand.Read(b); err != nil {
		return uint32(time.Now().UnixNano())
	}
	return binary.BigEndian.Uint32(b)
}
