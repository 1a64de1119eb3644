package tui

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vadimyer/driftfield/internal/render"
	"github.com/vadimyer/driftfield/internal/sim"
	"github.com/vadimyer/driftfield/internal/storage"
)

// Conversion between terminal cells and field units when the field
// follows the terminal size.
const (
	cellFieldW = 10.0
	cellFieldH = 20.0
)

// Config configures one TUI game run.
type Config struct {
	TickRate int
	ScreenW  int
	ScreenH  int

	// Field extent in field units. Online play fixes this to the
	// reference extent so all participants simulate the same field.
	FieldWidth  float64
	FieldHeight float64

	// FollowTerminal resizes the simulation field along with the
	// terminal (solo play). Must stay off for shared-seed rooms.
	FollowTerminal bool

	Seed   uint32
	Player string
	Params sim.Params

	// AllowRestart enables the R key after a crash (solo play). A room
	// plays exactly one session per issued seed.
	AllowRestart bool

	// OnFinal, if set, receives the final score in addition to the
	// score store (e.g. the directory score report).
	OnFinal func(score int)

	// RoomCode is shown in the HUD and recorded with the score when
	// playing online.
	RoomCode string
}

// Model is the Bubble Tea model running one drift session.
type Model struct {
	session  *sim.Session
	screen   *render.Screen
	store    *storage.Store
	cfg      Config
	steer    int // -1 left, 0 drift, +1 right
	gameOver bool
	quitting bool
}

// NewModel creates the model and its simulation session.
func NewModel(store *storage.Store, cfg Config) (Model, error) {
	if cfg.TickRate <= 0 {
		cfg.TickRate = 60
	}
	if cfg.FieldWidth <= 0 || cfg.FieldHeight <= 0 {
		cfg.FieldWidth = 800
		cfg.FieldHeight = 600
	}

	session, err := newSession(store, cfg)
	if err != nil {
		return Model{}, err
	}

	return Model{
		session: session,
		screen:  render.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:   store,
		cfg:     cfg,
	}, nil
}

// newSession builds a session whose termination callback persists and
// reports the final score. Persistence is best effort; the game ends
// the same way whether or not the row lands.
func newSession(store *storage.Store, cfg Config) (*sim.Session, error) {
	onTerminate := func(score int) {
		if store != nil {
			_, _ = store.SaveScore(cfg.Player, score, cfg.Seed)
			if cfg.RoomCode != "" {
				_ = store.SaveRoomResult(cfg.RoomCode, cfg.Player, score, cfg.Seed)
			}
		}
		if cfg.OnFinal != nil {
			cfg.OnFinal(score)
		}
	}
	return sim.New(cfg.FieldWidth, cfg.FieldHeight, cfg.Seed, onTerminate, sim.WithParams(cfg.Params))
}

// Init starts the session and the frame loop.
func (m Model) Init() tea.Cmd {
	m.session.Start()
	return tickCmd(m.cfg.TickRate)
}

// Update handles key, resize and tick messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		return m.handleResize(msg)
	case TickMsg:
		return m.handleTick(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch mapKey(msg) {
	case actionQuit:
		m.quitting = true
		m.session.Stop()
		return m, tea.Quit

	case steerLeft:
		m.setSteer(-1)
	case steerRight:
		m.setSteer(1)
	case steerRelease:
		m.setSteer(0)

	case actionRestart:
		if m.gameOver && m.cfg.AllowRestart {
			return m.restart()
		}
	}
	return m, nil
}

// setSteer applies sticky steering: engaging the held direction again
// releases it, the opposite direction switches the turn.
func (m *Model) setSteer(dir int) {
	if dir == m.steer {
		dir = 0
	}
	m.steer = dir
	m.session.ReleaseKeys()
	switch dir {
	case -1:
		m.session.KeyDown(sim.KeyLeft)
	case 1:
		m.session.KeyDown(sim.KeyRight)
	}
}

func (m Model) restart() (tea.Model, tea.Cmd) {
	m.session.Stop()

	cfg := m.cfg
	cfg.Seed = uint32(time.Now().UnixNano()) // fresh obstacle field
	session, err := newSession(m.store, cfg)
	if err != nil {
		// The previous extent was valid, so this cannot happen; keep
		// showing the crashed session rather than panicking.
		return m, nil
	}
	m.cfg = cfg
	m.session = session
	m.steer = 0
	m.gameOver = false
	m.session.Start()
	return m, nil
}

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	if msg.Width <= 0 || msg.Height <= 0 {
		return m, nil
	}
	m.cfg.ScreenW = msg.Width
	m.cfg.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)

	if m.cfg.FollowTerminal {
		w := float64(msg.Width) * cellFieldW
		h := float64(msg.Height) * cellFieldH
		if err := m.session.Resize(w, h); err == nil {
			m.cfg.FieldWidth = w
			m.cfg.FieldHeight = h
		}
	}
	return m, nil
}

func (m Model) handleTick(msg TickMsg) (tea.Model, tea.Cmd) {
	m.session.Frame(time.Time(msg))
	m.gameOver = m.session.Snapshot().GameOver
	return m, tickCmd(m.cfg.TickRate)
}

// View rasterizes the current snapshot.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	snap := m.session.Snapshot()
	render.Draw(snap, m.screen)

	if m.cfg.Player != "" {
		m.screen.DrawText(1, 2, fmt.Sprintf(" Pilot: %s ", m.cfg.Player), render.ColorGray)
	}
	if m.cfg.RoomCode != "" {
		m.screen.DrawText(1, 3, fmt.Sprintf(" Room: %s ", m.cfg.RoomCode), render.ColorYellow)
	}

	return RenderScreen(m.screen)
}

// Run plays one session in the local terminal, blocking until quit.
func Run(store *storage.Store, cfg Config) error {
	m, err := NewModel(store, cfg)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m, tea.WithAltScreen())
	final, err := p.Run()
	if fm, ok := final.(Model); ok {
		fm.session.Stop()
	}
	return err
}
