package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vadimyer/driftfield/internal/storage"
)

const maxScores = 100

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Quit key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Up, k.Down, k.Quit}}
}

// DefaultScoreboardKeyMap returns default key bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "scroll up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "scroll down"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

var (
	scoreboardTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("6")).
				Padding(0, 1)
	scoreboardBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("240"))
)

// ScoreboardModel displays the survival leaderboard.
type ScoreboardModel struct {
	table table.Model
	keys  ScoreboardKeyMap
	help  help.Model
	err   error
}

// NewScoreboardModel loads the top scores into a table.
func NewScoreboardModel(store *storage.Store) ScoreboardModel {
	columns := []table.Column{
		{Title: "#", Width: 4},
		{Title: "Pilot", Width: 16},
		{Title: "Survived", Width: 10},
		{Title: "Seed", Width: 12},
		{Title: "When", Width: 18},
	}

	m := ScoreboardModel{
		keys: DefaultScoreboardKeyMap(),
		help: help.New(),
	}

	entries, err := store.TopScores(maxScores)
	if err != nil {
		m.err = err
		return m
	}

	rows := make([]table.Row, len(entries))
	for i, e := range entries {
		rows[i] = table.Row{
			fmt.Sprintf("%d", i+1),
			e.Player,
			fmt.Sprintf("%ds", e.Score),
			fmt.Sprintf("%d", e.Seed),
			e.CreatedAt.Format("2006-01-02 15:04"),
		}
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(15),
	)
	m.table = t
	return m
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles scrolling and quitting.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if key.Matches(keyMsg, m.keys.Quit) {
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the leaderboard.
func (m ScoreboardModel) View() string {
	if m.err != nil {
		return fmt.Sprintf("cannot load scores: %v\n", m.err)
	}
	return scoreboardTitleStyle.Render("Driftfield: Longest Survivors") + "\n" +
		scoreboardBorderStyle.Render(m.table.View()) + "\n" +
		m.help.View(m.keys) + "\n"
}

// RunScoreboard shows the leaderboard until the user quits.
func RunScoreboard(store *storage.Store) error {
	p := tea.NewProgram(NewScoreboardModel(store))
	_, err := p.Run()
	return err
}
