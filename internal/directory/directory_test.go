package directory

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func startTestDirectory(t *testing.T) string {
	t.Helper()
	logger := log.New(io.Discard)
	srv := httptest.NewServer(NewServer(logger).Handler())
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"
}

func dialTest(t *testing.T, url, name string) *Client {
	t.Helper()
	c, err := Dial(url, name)
	if err != nil {
		t.Fatalf("Dial(%q) failed: %v", name, err)
	}
	t.Cleanup(c.Close)
	return c
}

// waitEvent consumes the event stream until a message of the given type
// arrives.
func waitEvent(t *testing.T, c *Client, msgType string) Message {
	t.Helper()
	deadline := time.After(5 * time.Second)
	for {
		select {
		case msg, ok := <-c.Events():
			if !ok {
				t.Fatalf("connection closed while waiting for %q", msgType)
			}
			if msg.Type == msgType {
				return msg
			}
		case <-deadline:
			t.Fatalf("timed out waiting for %q", msgType)
		}
	}
}

func TestCreateAndJoinRoom(t *testing.T) {
	url := startTestDirectory(t)

	host := dialTest(t, url, "ada")
	code, err := host.CreateRoom()
	if err != nil {
		t.Fatalf("CreateRoom() failed: %v", err)
	}
	if len(code) != 6 {
		t.Errorf("join code %q, want 6 characters", code)
	}

	joiner := dialTest(t, url, "bob")
	roster, err := joiner.JoinRoom(code)
	if err != nil {
		t.Fatalf("JoinRoom(%q) failed: %v", code, err)
	}
	if len(roster) != 2 || roster[0] != "ada" || roster[1] != "bob" {
		t.Errorf("roster = %v, want [ada bob]", roster)
	}

	// The host sees the roster update too.
	update := waitEvent(t, host, TypeRoom)
	if len(update.Players) != 2 {
		t.Errorf("host roster update = %v, want 2 players", update.Players)
	}
}

func TestJoinUnknownRoomFails(t *testing.T) {
	url := startTestDirectory(t)
	c := dialTest(t, url, "eve")
	if _, err := c.JoinRoom("NOPE42"); err == nil {
		t.Error("JoinRoom of a nonexistent room succeeded, want error")
	}
}

// Every participant must receive the identical seed: the whole
// multiplayer design rests on this.
func TestStartDeliversIdenticalSeed(t *testing.T) {
	url := startTestDirectory(t)

	host := dialTest(t, url, "ada")
	code, err := host.CreateRoom()
	if err != nil {
		t.Fatal(err)
	}
	joiner := dialTest(t, url, "bob")
	if _, err := joiner.JoinRoom(code); err != nil {
		t.Fatal(err)
	}

	if err := host.Start(); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	hostSeed, err := host.WaitStarted(5 * time.Second)
	if err != nil {
		t.Fatalf("host WaitStarted() failed: %v", err)
	}
	joinerSeed, err := joiner.WaitStarted(5 * time.Second)
	if err != nil {
		t.Fatalf("joiner WaitStarted() failed: %v", err)
	}
	if hostSeed != joinerSeed {
		t.Errorf("seeds differ: host %d, joiner %d", hostSeed, joinerSeed)
	}
}

func TestOnlyHostCanStart(t *testing.T) {
	url := startTestDirectory(t)

	host := dialTest(t, url, "ada")
	code, err := host.CreateRoom()
	if err != nil {
		t.Fatal(err)
	}
	joiner := dialTest(t, url, "bob")
	if _, err := joiner.JoinRoom(code); err != nil {
		t.Fatal(err)
	}

	if err := joiner.Start(); err != nil {
		t.Fatalf("Start() write failed: %v", err)
	}
	errMsg := waitEvent(t, joiner, TypeError)
	if errMsg.Message == "" {
		t.Error("joiner start produced an empty error")
	}
}

func TestScoreBroadcast(t *testing.T) {
	url := startTestDirectory(t)

	host := dialTest(t, url, "ada")
	code, err := host.CreateRoom()
	if err != nil {
		t.Fatal(err)
	}
	joiner := dialTest(t, url, "bob")
	if _, err := joiner.JoinRoom(code); err != nil {
		t.Fatal(err)
	}
	if err := host.Start(); err != nil {
		t.Fatal(err)
	}
	if _, err := host.WaitStarted(5 * time.Second); err != nil {
		t.Fatal(err)
	}

	if err := joiner.ReportScore(37); err != nil {
		t.Fatalf("ReportScore() failed: %v", err)
	}

	report := waitEvent(t, host, TypeScore)
	if report.Participant != "bob" || report.Score != 37 {
		t.Errorf("score broadcast = %+v, want bob/37", report)
	}
	if report.Alive {
		t.Error("score broadcast marked the participant alive")
	}
}

func TestLeaveBroadcast(t *testing.T) {
	url := startTestDirectory(t)

	host := dialTest(t, url, "ada")
	code, err := host.CreateRoom()
	if err != nil {
		t.Fatal(err)
	}
	joiner := dialTest(t, url, "bob")
	if _, err := joiner.JoinRoom(code); err != nil {
		t.Fatal(err)
	}

	joiner.Close()

	left := waitEvent(t, host, TypeLeft)
	if left.Participant != "bob" {
		t.Errorf("left participant = %q, want bob", left.Participant)
	}
	if len(left.Players) != 1 || left.Players[0] != "ada" {
		t.Errorf("remaining roster = %v, want [ada]", left.Players)
	}
}
