package directory

import (
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Client is one participant's connection to the directory. Events from
// the server arrive on Events(); the channel closes when the connection
// drops.
type Client struct {
	conn   *websocket.Conn
	name   string
	events chan Message

	writeMu   sync.Mutex
	closeOnce sync.Once
}

// Dial connects to the directory websocket endpoint (e.g.
// "ws://host:8099/ws") with the given display name.
func Dial(url, name string) (*Client, error) {
	if name == "" {
		return nil, fmt.Errorf("directory: a display name is required")
	}
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		return nil, fmt.Errorf("directory: cannot connect to %s: %w", url, err)
	}

	c := &Client{
		conn:   conn,
		name:   name,
		events: make(chan Message, 64),
	}
	go c.readLoop()
	return c, nil
}

func (c *Client) readLoop() {
	defer close(c.events)
	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		select {
		case c.events <- msg:
		default:
			// A stalled consumer loses roster updates, never the
			// connection.
		}
	}
}

func (c *Client) write(msg Message) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return c.conn.WriteJSON(msg)
}

// Events returns the server event stream.
func (c *Client) Events() <-chan Message {
	return c.events
}

// Name returns the display name this client connected with.
func (c *Client) Name() string {
	return c.name
}

// CreateRoom opens a new room and returns its join code.
func (c *Client) CreateRoom() (string, error) {
	if err := c.write(Message{Type: TypeCreate, Name: c.name}); err != nil {
		return "", err
	}
	msg, err := c.waitFor(TypeRoom, 10*time.Second)
	if err != nil {
		return "", err
	}
	return msg.Code, nil
}

// JoinRoom joins an existing room by code and returns the roster.
func (c *Client) JoinRoom(code string) ([]string, error) {
	if err := c.write(Message{Type: TypeJoin, Code: code, Name: c.name}); err != nil {
		return nil, err
	}
	msg, err := c.waitFor(TypeRoom, 10*time.Second)
	if err != nil {
		return nil, err
	}
	return msg.Players, nil
}

// Start asks the directory to seed and start the room (host only).
// The seed arrives as a started event, also for the host.
func (c *Client) Start() error {
	return c.write(Message{Type: TypeStart})
}

// WaitStarted blocks until the room starts and returns the shared seed.
func (c *Client) WaitStarted(timeout time.Duration) (uint32, error) {
	msg, err := c.waitFor(TypeStarted, timeout)
	if err != nil {
		return 0, err
	}
	return msg.Seed, nil
}

// ReportScore sends the terminal score. Fire and forget per the score
// reporting contract; the simulation does not await the broadcast.
func (c *Client) ReportScore(score int) error {
	return c.write(Message{Type: TypeScore, Score: score, Alive: false})
}

// waitFor consumes events until one of the wanted type arrives,
// surfacing server-side errors. Roster and score events seen along the
// way are dropped; callers who care consume Events() directly instead.
func (c *Client) waitFor(msgType string, timeout time.Duration) (Message, error) {
	deadline := time.After(timeout)
	for {
		select {
		case msg, ok := <-c.events:
			if !ok {
				return Message{}, fmt.Errorf("directory: connection closed")
			}
			if msg.Type == TypeError {
				return Message{}, fmt.Errorf("directory: %s", msg.Message)
			}
			if msg.Type == msgType {
				return msg, nil
			}
		case <-deadline:
			return Message{}, fmt.Errorf("directory: timed out waiting for %q", msgType)
		}
	}
}

// Close tears the connection down. Idempotent.
func (c *Client) Close() {
	c.closeOnce.Do(func() {
		c.conn.Close()
	})
}
