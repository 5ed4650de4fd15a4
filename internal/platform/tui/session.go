package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tapcolour/internal/config"
	"github.com/vovakirdan/tapcolour/internal/core"
	"github.com/vovakirdan/tapcolour/internal/presence"
	"github.com/vovakirdan/tapcolour/internal/registry"
	"github.com/vovakirdan/tapcolour/internal/storage"
)

// view is the screen a session is showing.
type view int

const (
	viewMenu view = iota
	viewSettings
	viewScoreboard
	viewGame
)

// presenceMsg carries an announcement from another session.
type presenceMsg struct {
	evt presence.Event
}

// SessionModel manages the full flow for one player:
// menu -> settings/scoreboard/game -> menu.
type SessionModel struct {
	env     Env
	config  core.RuntimeConfig
	rules   *config.TapConfig
	prefs   storage.Preferences
	persist bool // Local players keep their preferences in the store

	view     view
	menu     MenuModel
	settings SettingsModel
	scores   ScoreboardModel
	game     *Model

	online   int
	notice   string
	quitting bool
	gameGen  uint64 // Tick generation of the latest game
}

// NewSessionModel creates a session. With persist set, preference changes
// are written to env.Store and the player may rename themselves.
func NewSessionModel(cfg core.RuntimeConfig, rules *config.TapConfig, prefs storage.Preferences, persist bool, env Env) SessionModel {
	m := SessionModel{
		env:     env,
		config:  cfg,
		rules:   rules,
		prefs:   prefs,
		persist: persist,
	}
	m.menu = m.newMenu()
	return m
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return tea.Batch(m.menu.Init(), m.waitForPresence(), waitForReload(m.env.Watcher))
}

// waitForPresence blocks until another session announces something.
func (m SessionModel) waitForPresence() tea.Cmd {
	if m.env.Session == nil {
		return nil
	}
	events := m.env.Session.Events()
	done := m.env.Session.Done()
	return func() tea.Msg {
		select {
		case evt := <-events:
			return presenceMsg{evt: evt}
		case <-done:
			return nil
		}
	}
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height

	case presenceMsg:
		m.announce(msg.evt)
		return m, m.waitForPresence()

	case rulesReloadedMsg:
		rules := msg.rules
		m.rules = &rules
		if m.game != nil {
			if rs, ok := m.game.Game().(rulesSetter); ok {
				rs.SetRules(rules)
			}
			m.game.Notify("Rules reloaded")
		}
		return m, waitForReload(m.env.Watcher)

	case TickMsg:
		// Ticks left over from an earlier game stop here.
		if m.view != viewGame || msg.gen != m.game.tickGen {
			return m, nil
		}
	}

	switch m.view {
	case viewSettings:
		return m.updateSettings(msg)
	case viewScoreboard:
		return m.updateScoreboard(msg)
	case viewGame:
		return m.updateGame(msg)
	default:
		return m.updateMenu(msg)
	}
}

// announce records a presence event for the menu and the running game.
func (m *SessionModel) announce(evt presence.Event) {
	switch e := evt.(type) {
	case presence.PlayersOnlineEvent:
		m.online = e.Count
	case presence.HighScoreEvent:
		m.notice = fmt.Sprintf("%s set a new best of %d in %s (%s)",
			e.Player, e.Score, registry.Title(e.GameID), e.Difficulty.Label())
		if m.game != nil {
			m.game.Notify(m.notice)
		}
	}
	m.menu = m.menu.withPresence(m.online, m.notice)
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	if m.menu.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if d := m.menu.Preferences().Difficulty; d != m.prefs.Difficulty {
		m.prefs.Difficulty = d
		m.savePreferences()
	}

	switch {
	case m.menu.WantsSettings():
		var store *storage.Store
		if m.persist {
			store = m.env.Store
		}
		m.settings = NewSettingsModel(m.prefs, store, !m.persist, m.config.ScreenW, m.config.ScreenH, m.env.Painter)
		m.view = viewSettings
		m.menu = m.newMenu()
		return m, m.settings.Init()

	case m.menu.WantsScoreboard():
		m.scores = NewScoreboardModel(m.env.Store, m.prefs.Difficulty, m.config.ScreenW, m.config.ScreenH, m.env.Painter)
		m.view = viewScoreboard
		m.menu = m.newMenu()
		return m, m.scores.Init()

	case m.menu.Selected() != nil:
		return m.startGame(m.menu.Selected().GameID)
	}

	return m, cmd
}

// startGame hosts a new game with the current preferences.
func (m SessionModel) startGame(gameID string) (tea.Model, tea.Cmd) {
	env := m.env
	env.Player = m.prefs.Player
	env.Watcher = nil // the session forwards reloads itself
	env.Audio = nil
	if m.prefs.Sound && m.env.Audio != nil {
		if err := m.env.Audio.Start(); err != nil {
			if m.env.Logger != nil {
				m.env.Logger.Warn("sound disabled", "error", err)
			}
		} else {
			env.Audio = m.env.Audio
		}
	}

	model, err := NewModel(Play{
		GameID:     gameID,
		Difficulty: m.prefs.Difficulty,
		AutoStart:  m.prefs.AutoStart,
		Rules:      m.rules,
	}, m.config, env)

	m.menu = m.newMenu()
	if err != nil {
		m.notice = err.Error()
		m.menu = m.menu.withPresence(m.online, m.notice)
		return m, nil
	}

	m.gameGen++
	model.tickGen = m.gameGen
	m.game = &model
	m.view = viewGame
	return m, m.game.Init()
}

// updateGame handles updates when in game mode.
func (m SessionModel) updateGame(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.game.Update(msg)
	if gameModel, ok := newModel.(Model); ok {
		m.game = &gameModel
	}

	if m.game.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}

	if m.game.BackToMenu() {
		m.game = nil
		m.view = viewMenu
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}

	return m, cmd
}

// updateSettings handles updates when on the settings screen.
func (m SessionModel) updateSettings(msg tea.Msg) (tea.Model, tea.Cmd) {
	newSettings, cmd := m.settings.Update(msg)
	if s, ok := newSettings.(SettingsModel); ok {
		m.settings = s
	}
	m.prefs = m.settings.Preferences()

	if m.settings.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.settings.IsDone() {
		m.view = viewMenu
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}
	return m, cmd
}

// updateScoreboard handles updates when on the scoreboard.
func (m SessionModel) updateScoreboard(msg tea.Msg) (tea.Model, tea.Cmd) {
	newScores, cmd := m.scores.Update(msg)
	if s, ok := newScores.(ScoreboardModel); ok {
		m.scores = s
	}

	if m.scores.IsQuitting() {
		m.quitting = true
		return m, tea.Quit
	}
	if m.scores.IsGoingBack() {
		m.view = viewMenu
		m.menu = m.newMenu()
		return m, m.menu.Init()
	}
	return m, cmd
}

// savePreferences stores the preferences for local players.
func (m SessionModel) savePreferences() {
	if !m.persist || m.env.Store == nil {
		return
	}
	if err := m.env.Store.SavePreferences(m.prefs); err != nil && m.env.Logger != nil {
		m.env.Logger.Warn("cannot save preferences", "error", err)
	}
}

// newMenu builds a fresh menu for the current preferences.
func (m SessionModel) newMenu() MenuModel {
	return NewMenuModel(m.prefs, m.config.ScreenW, m.config.ScreenH, m.env.Painter).
		withPresence(m.online, m.notice)
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewSettings:
		return m.settings.View()
	case viewScoreboard:
		return m.scores.View()
	case viewGame:
		return m.game.View()
	default:
		return m.menu.View()
	}
}

// Preferences returns the player's current preferences.
func (m SessionModel) Preferences() storage.Preferences {
	return m.prefs
}

// RunSession runs the interactive menu in the local terminal.
func RunSession(cfg core.RuntimeConfig, rules *config.TapConfig, env Env) error {
	prefs := storage.Preferences{}
	if env.Store != nil {
		prefs = env.Store.Preferences()
	}

	prog := tea.NewProgram(
		NewSessionModel(cfg, rules, prefs, true, env),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err := prog.Run()
	return err
}
