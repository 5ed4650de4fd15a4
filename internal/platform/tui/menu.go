package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tapcolour/internal/registry"
	"github.com/vovakirdan/tapcolour/internal/storage"
	"github.com/vovakirdan/tapcolour/internal/tapgame"
)

// MenuItem represents a selectable game in the menu.
type MenuItem struct {
	GameID string
	Title  string
}

// MenuModel is the Bubble Tea model for the game picker.
type MenuModel struct {
	items     []MenuItem
	cursor    int
	width     int
	height    int
	prefs     storage.Preferences
	keyMapper *KeyMapper
	painter   *Painter

	online int    // Players connected, 0 outside SSH
	notice string // Last announcement

	quitting       bool
	selected       *MenuItem
	openScoreboard bool
	openSettings   bool
}

// NewMenuModel creates a menu listing every registered game.
func NewMenuModel(prefs storage.Preferences, width, height int, painter *Painter) MenuModel {
	games := registry.List()
	items := make([]MenuItem, 0, len(games))
	for _, g := range games {
		items = append(items, MenuItem{GameID: g.ID, Title: g.Title})
	}

	return MenuModel{
		items:     items,
		width:     width,
		height:    height,
		prefs:     prefs,
		keyMapper: NewKeyMapper(),
		painter:   painter,
	}
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	}
	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyMapper.MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionLeft:
		m.prefs.Difficulty = m.prefs.Difficulty.Prev()

	case MenuActionRight:
		m.prefs.Difficulty = m.prefs.Difficulty.Next()

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
		}

	case MenuActionScoreboard:
		m.openScoreboard = true

	case MenuActionSettings:
		m.openSettings = true
	}
	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	titleStyle := m.painter.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	dimStyle := m.painter.NewStyle().Foreground(lipgloss.Color("241"))
	pickStyle := m.painter.NewStyle().Bold(true).Foreground(lipgloss.Color("10"))

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("T A P   T H A T   C O L O U R"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(titleBar(m.painter), m.width))
	b.WriteString("\n\n")

	for i, item := range m.items {
		line := "  " + item.Title
		if i == m.cursor {
			line = pickStyle.Render("> " + item.Title)
		}
		b.WriteString(centerText(line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(fmt.Sprintf("Difficulty: < %s >", m.prefs.Difficulty.Label()), m.width))
	b.WriteString("\n")
	auto := "off"
	if m.prefs.AutoStart {
		auto = "on"
	}
	b.WriteString(centerText(dimStyle.Render("Auto-start: "+auto), m.width))
	b.WriteString("\n\n")

	if m.online > 0 {
		b.WriteString(centerText(dimStyle.Render(fmt.Sprintf("%d playing now", m.online)), m.width))
		b.WriteString("\n")
	}
	if m.notice != "" {
		b.WriteString(centerText(titleStyle.Render(m.notice), m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	controls := "Up/Down: Game  |  Left/Right: Difficulty  |  Enter: Play  |  Tab: Scores  |  S: Settings  |  Q: Quit"
	b.WriteString(centerText(dimStyle.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

// titleBar renders one block per palette colour.
func titleBar(p *Painter) string {
	palette := tapgame.Palette()
	blocks := make([]string, len(palette))
	for i, sw := range palette {
		blocks[i] = p.Paint(sw.Color, "██")
	}
	return strings.Join(blocks, " ")
}

// Selected returns the selected menu item, or nil if none selected.
func (m MenuModel) Selected() *MenuItem {
	return m.selected
}

// Preferences returns the preferences as changed on the menu.
func (m MenuModel) Preferences() storage.Preferences {
	return m.prefs
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsScoreboard returns true if user requested the scoreboard.
func (m MenuModel) WantsScoreboard() bool {
	return m.openScoreboard
}

// WantsSettings returns true if user requested the settings screen.
func (m MenuModel) WantsSettings() bool {
	return m.openSettings
}

// withPresence returns a copy showing the player count and last announcement.
func (m MenuModel) withPresence(online int, notice string) MenuModel {
	m.online = online
	m.notice = notice
	return m
}
