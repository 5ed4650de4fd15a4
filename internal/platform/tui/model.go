package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tapcolour/internal/audio"
	"github.com/vovakirdan/tapcolour/internal/config"
	"github.com/vovakirdan/tapcolour/internal/core"
	"github.com/vovakirdan/tapcolour/internal/presence"
	"github.com/vovakirdan/tapcolour/internal/registry"
	"github.com/vovakirdan/tapcolour/internal/storage"
)

// statusTicks is how long a status line stays on screen at 60 ticks/s.
const statusTicks = 180

// Env is what the platform lends to a hosted game. Every field is optional.
type Env struct {
	Store    *storage.Store
	Presence *presence.Registry
	Session  *presence.ChannelSession
	Player   string
	Audio    *audio.Player
	Watcher  *config.Watcher
	Logger   *log.Logger
	Painter  *Painter
}

// Play selects a game and how it starts.
type Play struct {
	GameID     string
	Difficulty config.DifficultyIndex
	AutoStart  bool
	Rules      *config.TapConfig // nil means the built-in defaults
}

// rulesSetter is implemented by scenes that accept new tuning at runtime.
type rulesSetter interface {
	SetRules(rules config.TapConfig)
}

// rulesReloadedMsg carries a tuning change from the config watcher.
type rulesReloadedMsg struct {
	rules config.TapConfig
}

// Model is the Bubble Tea model for running one game.
type Model struct {
	game       registry.Game
	host       *sessionHost
	screen     *core.Screen
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	keyMapper  *KeyMapper
	audio      *audio.Player
	watcher    *config.Watcher
	painter    *Painter
	logger     *log.Logger
	tickGen    uint64 // Only ticks of this generation drive the game

	status     string
	statusLeft int
	quitting   bool
	backToMenu bool
	quitOnBack bool // Standalone play has no menu to go back to
}

// NewModel creates the game described by p and hosts it.
func NewModel(p Play, cfg core.RuntimeConfig, env Env) (Model, error) {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	host := newSessionHost(env)
	game, err := registry.Create(p.GameID, registry.Options{
		Difficulty: p.Difficulty,
		AutoStart:  p.AutoStart,
		Rules:      p.Rules,
		Host:       host,
	})
	if err != nil {
		return Model{}, err
	}

	return Model{
		game:       game,
		host:       host,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		keyMapper:  NewKeyMapper(),
		audio:      env.Audio,
		watcher:    env.Watcher,
		painter:    env.Painter,
		logger:     host.logger,
	}, nil
}

// Init activates the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tea.Batch(tickCmd(m.config.TickRate, m.tickGen), waitForReload(m.watcher))
}

// waitForReload blocks until the watcher delivers new tuning.
func waitForReload(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	reloads := w.Reloads()
	return func() tea.Msg {
		rules, ok := <-reloads
		if !ok {
			return nil
		}
		return rulesReloadedMsg{rules: rules}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		if msg.gen != m.tickGen {
			return m, nil
		}
		return m.handleTick()

	case rulesReloadedMsg:
		if rs, ok := m.game.(rulesSetter); ok {
			rs.SetRules(msg.rules)
			m.setStatus("Rules reloaded")
		}
		return m, waitForReload(m.watcher)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		if path, err := m.saveScreenshot(); err != nil {
			m.logger.Warn("cannot save screenshot", "error", err)
			m.setStatus("Screenshot failed")
		} else {
			m.setStatus("Saved " + filepath.Base(path))
		}
		return m, nil
	}

	switch m.keyMapper.MapKeyToFrame(msg, m.gameState, &m.inputFrame) {
	case core.ActionQuit:
		m.quitting = true
		return m, tea.Quit
	case core.ActionBack:
		if !m.gameState.GameOver && !m.gameState.Paused && !m.gameState.Waiting {
			return m, nil
		}
		m.backToMenu = true
		if m.quitOnBack {
			m.quitting = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// handleMouse turns a left click on a tile into a tap. A click anywhere
// starts a waiting session.
func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return m, nil
	}
	if slot := m.game.SlotAt(msg.X, msg.Y); slot >= 0 {
		m.inputFrame.SetTap(slot)
	} else if m.gameState.Waiting {
		m.inputFrame.Set(core.ActionConfirm)
	}
	return m, nil
}

// handleResize adapts the screen and layout without ending the session.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, msg.Height)
	m.game.Resize(msg.Width, msg.Height)
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.audio.Handle(result.Events)

	if result.Has(core.EventSessionEnded) {
		if note := m.host.takeNote(); note != "" {
			m.setStatus(note)
		}
	}

	if m.statusLeft > 0 {
		m.statusLeft--
		if m.statusLeft == 0 {
			m.status = ""
		}
	}

	m.inputFrame.Clear()
	return m, tickCmd(m.config.TickRate, m.tickGen)
}

// setStatus shows a one-line message along the bottom edge for a while.
func (m *Model) setStatus(text string) {
	m.status = text
	m.statusLeft = statusTicks
}

// Notify shows an announcement from another session.
func (m *Model) Notify(text string) {
	m.setStatus(text)
}

// saveScreenshot writes the current screen as plain text and returns the path.
func (m *Model) saveScreenshot() (string, error) {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot get home directory: %w", err)
	}
	dir := filepath.Join(home, ".tapcolour", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create screenshot directory: %w", err)
	}

	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "", fmt.Errorf("cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	if m.status != "" && m.screen.Height() > 0 {
		m.screen.DrawTextCenteredColored(m.screen.Height()-1, " "+m.status+" ", core.ColorBrightWhite)
	}
	return m.painter.Render(m.screen)
}

// Game returns the hosted game.
func (m Model) Game() registry.Game {
	return m.game
}

// State returns the game state as of the last tick.
func (m Model) State() core.GameState {
	return m.gameState
}

// IsQuitting returns true if the user requested to quit entirely.
func (m Model) IsQuitting() bool {
	return m.quitting
}

// BackToMenu returns true if the user requested to go back to the menu.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays one game in the local terminal until the user quits.
func Run(p Play, cfg core.RuntimeConfig, env Env) error {
	model, err := NewModel(p, cfg, env)
	if err != nil {
		return err
	}
	model.quitOnBack = true

	prog := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	_, err = prog.Run()
	return err
}
