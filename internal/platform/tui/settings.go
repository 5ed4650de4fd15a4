package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tapcolour/internal/config"
	"github.com/vovakirdan/tapcolour/internal/storage"
)

// settingsRow is a focusable line on the settings screen.
type settingsRow int

const (
	rowDifficulty settingsRow = iota
	rowAutoStart
	rowSound
	rowPlayer
	rowCount
)

// maxPlayerName limits the player name typed on the settings screen.
const maxPlayerName = 16

// SettingsKeyMap defines the key bindings for the settings screen.
type SettingsKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	Pick   key.Binding
	Toggle key.Binding
	Back   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k SettingsKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Left, k.Right, k.Pick, k.Toggle, k.Back}
}

// FullHelp returns key bindings for the full help view.
func (k SettingsKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Pick, k.Toggle, k.Back, k.Quit},
	}
}

// DefaultSettingsKeyMap returns default key bindings.
func DefaultSettingsKeyMap() SettingsKeyMap {
	return SettingsKeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("up/k", "prev"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("down/j", "next"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("left/h", "easier/off"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("right/l", "harder/on"),
		),
		Pick: key.NewBinding(
			key.WithKeys("1", "2", "3"),
			key.WithHelp("1-3", "difficulty"),
		),
		Toggle: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "change"),
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

// SettingsModel edits the player preferences: the difficulty selector,
// auto-start, sound and the player name.
type SettingsModel struct {
	prefs      storage.Preferences
	store      *storage.Store // nil keeps changes in memory
	nameLocked bool           // SSH players are named by their login
	row        settingsRow
	name       textinput.Model
	editing    bool
	keys       SettingsKeyMap
	help       help.Model
	painter    *Painter
	width      int
	height     int
	err        error
	done       bool
	quitting   bool
}

// NewSettingsModel creates a settings screen for prefs. Each change is
// written to store right away when store is not nil.
func NewSettingsModel(prefs storage.Preferences, store *storage.Store, nameLocked bool, width, height int, painter *Painter) SettingsModel {
	name := textinput.New()
	name.Placeholder = "anonymous"
	name.CharLimit = maxPlayerName
	name.Prompt = ""
	name.SetValue(prefs.Player)

	h := help.New()
	h.Width = width

	return SettingsModel{
		prefs:      prefs,
		store:      store,
		nameLocked: nameLocked,
		name:       name,
		keys:       DefaultSettingsKeyMap(),
		help:       h,
		painter:    painter,
		width:      width,
		height:     height,
	}
}

// Init initializes the settings model.
func (m SettingsModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the settings screen.
func (m SettingsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		if m.editing {
			return m.handleNameKey(msg)
		}
		return m.handleKey(msg)
	}

	if m.editing {
		var cmd tea.Cmd
		m.name, cmd = m.name.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleKey processes keyboard input while navigating rows.
func (m SettingsModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Back):
		m.done = true

	case key.Matches(msg, m.keys.Up):
		if m.row > 0 {
			m.row--
		}

	case key.Matches(msg, m.keys.Down):
		if m.row < rowCount-1 {
			m.row++
		}

	case key.Matches(msg, m.keys.Pick):
		if d, err := config.DifficultyFromIndex(int(msg.String()[0] - '1')); err == nil {
			m.prefs.Difficulty = d
			m.row = rowDifficulty
			m.save()
		}

	case key.Matches(msg, m.keys.Left):
		m.change(-1)

	case key.Matches(msg, m.keys.Right):
		m.change(+1)

	case key.Matches(msg, m.keys.Toggle):
		if m.row == rowPlayer {
			if m.nameLocked {
				return m, nil
			}
			m.editing = true
			m.name.SetValue(m.prefs.Player)
			m.name.CursorEnd()
			cmd := m.name.Focus()
			return m, cmd
		}
		m.change(+1)
	}
	return m, nil
}

// handleNameKey edits the player name. Enter keeps it, Esc discards it.
func (m SettingsModel) handleNameKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		m.prefs.Player = strings.TrimSpace(m.name.Value())
		m.editing = false
		m.name.Blur()
		m.save()
		return m, nil
	case "esc":
		m.editing = false
		m.name.Blur()
		m.name.SetValue(m.prefs.Player)
		return m, nil
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.name, cmd = m.name.Update(msg)
	return m, cmd
}

// change moves the focused row's value one step in dir.
func (m *SettingsModel) change(dir int) {
	switch m.row {
	case rowDifficulty:
		if dir < 0 {
			m.prefs.Difficulty = m.prefs.Difficulty.Prev()
		} else {
			m.prefs.Difficulty = m.prefs.Difficulty.Next()
		}
	case rowAutoStart:
		m.prefs.AutoStart = !m.prefs.AutoStart
	case rowSound:
		m.prefs.Sound = !m.prefs.Sound
	default:
		return
	}
	m.save()
}

// save persists the preferences when a store is attached.
func (m *SettingsModel) save() {
	if m.store == nil {
		return
	}
	m.err = m.store.SavePreferences(m.prefs)
}

// View renders the settings screen.
func (m SettingsModel) View() string {
	if m.quitting || m.done {
		return ""
	}

	titleStyle := m.painter.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	labelStyle := m.painter.NewStyle().Width(14)
	dimStyle := m.painter.NewStyle().Foreground(lipgloss.Color("241"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("SETTINGS"), m.width))
	b.WriteString("\n\n")

	rows := []struct {
		row   settingsRow
		label string
		value string
	}{
		{rowDifficulty, "Difficulty", m.selectorView()},
		{rowAutoStart, "Auto-start", onOff(m.prefs.AutoStart)},
		{rowSound, "Sound", onOff(m.prefs.Sound)},
		{rowPlayer, "Player", m.playerView()},
	}

	lines := make([]string, len(rows))
	for i, r := range rows {
		cursor := "  "
		if r.row == m.row {
			cursor = "> "
		}
		lines[i] = lipgloss.JoinHorizontal(lipgloss.Center, cursor, labelStyle.Render(r.label), r.value)
	}
	block := lipgloss.JoinVertical(lipgloss.Left, lines...)
	for _, line := range strings.Split(block, "\n") {
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	if m.err != nil {
		errStyle := m.painter.NewStyle().Foreground(lipgloss.Color("9"))
		b.WriteString("\n")
		b.WriteString(centerText(errStyle.Render(fmt.Sprintf("Could not save: %v", m.err)), m.width))
		b.WriteString("\n")
	}
	if m.store == nil {
		b.WriteString("\n")
		b.WriteString(centerText(dimStyle.Render("Changes last until you disconnect"), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(dimStyle.Render(m.help.View(m.keys)), m.width))
	return b.String()
}

// selectorView renders the three-segment difficulty selector.
func (m SettingsModel) selectorView() string {
	on := m.painter.NewStyle().Bold(true).
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Padding(0, 1)
	off := m.painter.NewStyle().
		Foreground(lipgloss.Color("245")).
		Padding(0, 1)

	all := config.AllDifficulties()
	segments := make([]string, 0, 2*len(all)-1)
	for i, d := range all {
		if i > 0 {
			segments = append(segments, "|")
		}
		if d == m.prefs.Difficulty {
			segments = append(segments, on.Render(d.Label()))
		} else {
			segments = append(segments, off.Render(d.Label()))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Center, segments...)
}

// playerView renders the player name row.
func (m SettingsModel) playerView() string {
	switch {
	case m.editing:
		return m.name.View()
	case m.nameLocked:
		return m.prefs.Player + " (login)"
	case m.prefs.Player == "":
		return "anonymous"
	default:
		return m.prefs.Player
	}
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// Preferences returns the edited preferences.
func (m SettingsModel) Preferences() storage.Preferences {
	return m.prefs
}

// IsDone returns true if user went back.
func (m SettingsModel) IsDone() bool {
	return m.done
}

// IsQuitting returns true if user wants to quit entirely.
func (m SettingsModel) IsQuitting() bool {
	return m.quitting
}
