package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tapcolour/internal/config"
	"github.com/vovakirdan/tapcolour/internal/registry"
	"github.com/vovakirdan/tapcolour/internal/storage"
)

// maxScores is how many entries the scoreboard loads per game and difficulty.
const maxScores = 100

// ScoreboardKeyMap defines the key bindings for the scoreboard.
type ScoreboardKeyMap struct {
	Up       key.Binding
	Down     key.Binding
	NextGame key.Binding
	PrevGame key.Binding
	Harder   key.Binding
	Easier   key.Binding
	Back     key.Binding
	Quit     key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextGame, k.PrevGame, k.Easier, k.Harder, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.NextGame, k.PrevGame},
		{k.Easier, k.Harder, k.Back, k.Quit},
	}
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
		NextGame: key.NewBinding(
			key.WithKeys("right", "l", "tab"),
			key.WithHelp("right", "next game"),
		),
		PrevGame: key.NewBinding(
			key.WithKeys("left", "h", "shift+tab"),
			key.WithHelp("left", "prev game"),
		),
		Harder: key.NewBinding(
			key.WithKeys("]"),
			key.WithHelp("]", "harder"),
		),
		Easier: key.NewBinding(
			key.WithKeys("["),
			key.WithHelp("[", "easier"),
		),
		Back: key.NewBinding(
			key.WithKeys("esc", "b"),
			key.WithHelp("esc/b", "back"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ScoreboardModel is the Bubble Tea model for the scoreboard screen.
type ScoreboardModel struct {
	games      []registry.GameInfo
	gameCursor int
	difficulty config.DifficultyIndex
	store      *storage.Store
	scores     []storage.ScoreEntry
	stats      *storage.GameStats
	table      table.Model
	help       help.Model
	keys       ScoreboardKeyMap
	painter    *Painter
	width      int
	height     int
	quitting   bool
	goingBack  bool
}

// NewScoreboardModel creates a scoreboard opened on the given difficulty.
func NewScoreboardModel(store *storage.Store, d config.DifficultyIndex, width, height int, painter *Painter) ScoreboardModel {
	h := help.New()
	h.Width = width

	m := ScoreboardModel{
		games:      registry.List(),
		difficulty: d,
		store:      store,
		keys:       DefaultScoreboardKeyMap(),
		help:       h,
		painter:    painter,
		width:      width,
		height:     height,
	}
	m.table = m.createTable()
	m.load()
	return m
}

// createTable creates a new table sized to the screen.
func (m *ScoreboardModel) createTable() table.Model {
	columns := []table.Column{
		{Title: "Rank", Width: 6},
		{Title: "Player", Width: 12},
		{Title: "Score", Width: 7},
		{Title: "Rounds", Width: 7},
		{Title: "Streak", Width: 7},
		{Title: "Date", Width: 13},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(max(m.height-12, 3)),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return t
}

// gameID returns the selected game, or "" when nothing is registered.
func (m ScoreboardModel) gameID() string {
	if len(m.games) == 0 {
		return ""
	}
	return m.games[m.gameCursor].ID
}

// load reads scores and stats for the selected game and difficulty.
func (m *ScoreboardModel) load() {
	m.scores = nil
	m.stats = nil
	if m.store != nil && m.gameID() != "" {
		if scores, err := m.store.TopScores(m.gameID(), m.difficulty, maxScores); err == nil {
			m.scores = scores
		}
		if stats, err := m.store.GetGameStats(m.gameID(), m.difficulty); err == nil {
			m.stats = stats
		}
	}
	m.updateTableRows()
}

// updateTableRows updates the table with current scores.
func (m *ScoreboardModel) updateTableRows() {
	rows := make([]table.Row, len(m.scores))
	for i, s := range m.scores {
		player := s.Player
		if player == "" {
			player = "-"
		}
		rows[i] = table.Row{
			fmt.Sprintf("#%d", i+1),
			player,
			fmt.Sprintf("%d", s.Score),
			fmt.Sprintf("%d", s.Rounds),
			fmt.Sprintf("%d", s.BestStreak),
			s.CreatedAt.Format("Jan 02 15:04"),
		}
	}
	m.table.SetRows(rows)
	m.table.GotoTop()
}

// Init initializes the scoreboard model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the scoreboard.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, nil

		case key.Matches(msg, m.keys.NextGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor + 1) % len(m.games)
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.PrevGame):
			if len(m.games) > 0 {
				m.gameCursor = (m.gameCursor + len(m.games) - 1) % len(m.games)
				m.load()
			}
			return m, nil

		case key.Matches(msg, m.keys.Harder):
			m.difficulty = m.difficulty.Next()
			m.load()
			return m, nil

		case key.Matches(msg, m.keys.Easier):
			m.difficulty = m.difficulty.Prev()
			m.load()
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.table = m.createTable()
		m.updateTableRows()
		m.help.Width = msg.Width
		return m, nil
	}

	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View renders the scoreboard.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}

	titleStyle := m.painter.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := m.painter.NewStyle().Foreground(lipgloss.Color("241"))
	activeTab := m.painter.NewStyle().Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	tab := dimStyle.Padding(0, 1)

	var b strings.Builder
	b.WriteString("\n")
	title := "HIGH SCORES"
	if id := m.gameID(); id != "" {
		title = fmt.Sprintf("HIGH SCORES - %s", registry.Title(id))
	}
	b.WriteString(centerText(titleStyle.Render(title), m.width))
	b.WriteString("\n\n")

	tabs := make([]string, 0, len(config.AllDifficulties()))
	for _, d := range config.AllDifficulties() {
		if d == m.difficulty {
			tabs = append(tabs, activeTab.Render(d.Label()))
		} else {
			tabs = append(tabs, tab.Render(d.Label()))
		}
	}
	b.WriteString(centerText(lipgloss.JoinHorizontal(lipgloss.Top, tabs...), m.width))
	b.WriteString("\n\n")

	if m.stats != nil && m.stats.GamesCount > 0 {
		line := fmt.Sprintf("Games %d  |  Best %d  |  Average %.1f  |  Longest streak %d",
			m.stats.GamesCount, m.stats.HighScore, m.stats.AvgScore, m.stats.BestStreak)
		b.WriteString(centerText(dimStyle.Render(line), m.width))
		b.WriteString("\n")
	}

	boxStyle := m.painter.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("240")).
		Padding(0, 1)
	for _, line := range strings.Split(boxStyle.Render(m.renderTableContent()), "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keys)))
	return b.String()
}

// renderTableContent renders the table or empty message.
func (m ScoreboardModel) renderTableContent() string {
	if len(m.scores) == 0 {
		emptyStyle := m.painter.NewStyle().
			Foreground(lipgloss.Color("241")).
			Italic(true).
			Padding(2, 4)
		return emptyStyle.Render("No scores recorded yet.\nPlay a round to set a high score!")
	}
	return m.table.View()
}

// Difficulty returns the difficulty being shown.
func (m ScoreboardModel) Difficulty() config.DifficultyIndex {
	return m.difficulty
}

// IsGoingBack returns true if user wants to go back to menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting returns true if user wants to quit entirely.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}
