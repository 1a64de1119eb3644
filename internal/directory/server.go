package directory

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
)

// member is one connected participant. Writes go through a per-member
// mutex because gorilla/websocket allows only one concurrent writer.
type member struct {
	conn *websocket.Conn
	mu   sync.Mutex
	name string
}

func (m *member) send(msg Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
	return m.conn.WriteJSON(msg)
}

// room is a set of members waiting for, or playing, one shared-seed
// session. The first member is the host and the only one who may start.
type room struct {
	code      string
	members   []*member
	seed      uint32
	started   bool
	createdAt time.Time
}

func (r *room) roster() []string {
	names := make([]string, len(r.members))
	for i, m := range r.members {
		names[i] = m.name
	}
	return names
}

// Server is the websocket room directory.
type Server struct {
	logger   *log.Logger
	upgrader websocket.Upgrader

	mu    sync.Mutex
	rooms map[string]*room
}

// NewServer creates a directory server.
func NewServer(logger *log.Logger) *Server {
	return &Server{
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// The directory carries no credentials and no personal data
			// beyond a display name; any origin may connect.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		rooms: make(map[string]*room),
	}
}

// Handler returns the HTTP handler serving the websocket endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWS)
	return mux
}

// ListenAndServe runs the directory on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("directory listening", "addr", addr)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	return srv.ListenAndServe()
}

func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "error", err)
		return
	}
	m := &member{conn: conn}
	s.readLoop(m)
}

// readLoop processes one member's messages until the connection drops,
// then removes the member from its room.
func (s *Server) readLoop(m *member) {
	var code string
	defer func() {
		s.removeMember(code, m)
		m.conn.Close()
	}()

	for {
		var msg Message
		if err := m.conn.ReadJSON(&msg); err != nil {
			return
		}

		switch msg.Type {
		case TypeCreate:
			code = s.handleCreate(m, msg)
		case TypeJoin:
			code = s.handleJoin(m, msg)
		case TypeStart:
			s.handleStart(code, m)
		case TypeScore:
			s.handleScore(code, m, msg)
		default:
			m.send(Message{Type: TypeError, Message: fmt.Sprintf("unknown message type %q", msg.Type)})
		}
	}
}

func (s *Server) handleCreate(m *member, msg Message) string {
	if msg.Name == "" {
		m.send(Message{Type: TypeError, Message: "a display name is required"})
		return ""
	}
	m.name = msg.Name

	s.mu.Lock()
	code := s.uniqueCodeLocked()
	r := &room{
		code:      code,
		members:   []*member{m},
		createdAt: time.Now(),
	}
	s.rooms[code] = r
	s.mu.Unlock()

	s.logger.Info("room created", "code", code, "host", m.name)
	m.send(Message{Type: TypeRoom, Code: code, Players: []string{m.name}})
	return code
}

func (s *Server) handleJoin(m *member, msg Message) string {
	if msg.Name == "" {
		m.send(Message{Type: TypeError, Message: "a display name is required"})
		return ""
	}
	m.name = msg.Name

	s.mu.Lock()
	r, ok := s.rooms[msg.Code]
	switch {
	case !ok:
		s.mu.Unlock()
		m.send(Message{Type: TypeError, Message: "room not found"})
		return ""
	case r.started:
		s.mu.Unlock()
		m.send(Message{Type: TypeError, Message: "room already started"})
		return ""
	case len(r.members) >= MaxRoomSize:
		s.mu.Unlock()
		m.send(Message{Type: TypeError, Message: "room is full"})
		return ""
	}
	r.members = append(r.members, m)
	roster := r.roster()
	members := append([]*member(nil), r.members...)
	s.mu.Unlock()

	s.logger.Info("room joined", "code", msg.Code, "player", m.name)
	broadcast(members, Message{Type: TypeRoom, Code: msg.Code, Players: roster})
	return msg.Code
}

// handleStart seeds the room and broadcasts the start signal. Every
// participant receives the identical seed value; this is the whole
// basis of the lockstep-free multiplayer design.
func (s *Server) handleStart(code string, m *member) {
	s.mu.Lock()
	r, ok := s.rooms[code]
	if !ok {
		s.mu.Unlock()
		m.send(Message{Type: TypeError, Message: "not in a room"})
		return
	}
	if r.members[0] != m {
		s.mu.Unlock()
		m.send(Message{Type: TypeError, Message: "only the host can start"})
		return
	}
	if r.started {
		s.mu.Unlock()
		m.send(Message{Type: TypeError, Message: "room already started"})
		return
	}
	r.started = true
	r.seed = generateSeed()
	seed := r.seed
	members := append([]*member(nil), r.members...)
	s.mu.Unlock()

	s.logger.Info("room started", "code", code, "seed", seed, "players", len(members))
	broadcast(members, Message{Type: TypeStarted, Code: code, Seed: seed})
}

// handleScore re-broadcasts a final-score report to the whole room.
// Fire and forget: the reporter gets no acknowledgement.
func (s *Server) handleScore(code string, m *member, msg Message) {
	s.mu.Lock()
	r, ok := s.rooms[code]
	if !ok {
		s.mu.Unlock()
		return
	}
	members := append([]*member(nil), r.members...)
	s.mu.Unlock()

	s.logger.Info("score reported", "code", code, "participant", m.name, "score", msg.Score)
	broadcast(members, Message{
		Type:        TypeScore,
		Code:        code,
		Participant: m.name,
		Score:       msg.Score,
		Alive:       false,
	})
}

func (s *Server) removeMember(code string, m *member) {
	if code == "" {
		return
	}
	s.mu.Lock()
	r, ok := s.rooms[code]
	if !ok {
		s.mu.Unlock()
		return
	}
	for i, other := range r.members {
		if other == m {
			r.members = append(r.members[:i], r.members[i+1:]...)
			break
		}
	}
	if len(r.members) == 0 {
		delete(s.rooms, code)
		s.mu.Unlock()
		s.logger.Info("room closed", "code", code)
		return
	}
	roster := r.roster()
	members := append([]*member(nil), r.members...)
	s.mu.Unlock()

	broadcast(members, Message{Type: TypeLeft, Code: code, Participant: m.name, Players: roster})
}

func (s *Server) uniqueCodeLocked() string {
	for {
		code := generateJoinCode()
		if _, exists := s.rooms[code]; !exists {
			return code
		}
	}
}

// CollectIdleRooms drops unstarted rooms older than the room timeout.
// Call periodically from the serving process.
func (s *Server) CollectIdleRooms() {
	s.mu.Lock()
	var stale []*room
	now := time.Now()
	for code, r := range s.rooms {
		if !r.started && now.Sub(r.createdAt) > roomTimeout {
			delete(s.rooms, code)
			stale = append(stale, r)
		}
	}
	s.mu.Unlock()

	for _, r := range stale {
		s.logger.Info("room expired", "code", r.code)
		broadcast(r.members, Message{Type: TypeError, Code: r.code, Message: "room expired"})
	}
}

func broadcast(members []*member, msg Message) {
	for _, m := range members {
		// Best effort; a dead connection is reaped by its read loop.
		_ = m.send(msg)
	}
}
