package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/tapcolour/internal/config"
	"github.com/vovakirdan/tapcolour/internal/core"
	"github.com/vovakirdan/tapcolour/internal/presence"
	"github.com/vovakirdan/tapcolour/internal/storage"
)

// presenceBuffer is how many announcements may queue for a slow session.
const presenceBuffer = 16

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.tapcolour/host_key.
	HostKeyPath string

	// DBPath is the path to the scores database.
	DBPath string

	// ConfigPath is an optional tuning YAML; empty uses the search order.
	ConfigPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate is the simulation rate for every session.
	TickRate int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      storage.DefaultPath,
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
	}
}

// SSHServer serves tap-colour sessions over SSH. All players share one
// leaderboard and hear about each other's new bests.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	store    *storage.Store
	presence *presence.Registry
	rules    config.TapConfig
	logger   *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tapcolour-ssh",
	})

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open scores database", "error", err)
		store = nil
	}

	rules, err := config.Load(cfg.ConfigPath)
	if err != nil {
		logger.Warn("using built-in tuning", "error", err)
		rules = config.DefaultTapConfig()
	}

	srv := &SSHServer{
		config:   cfg,
		store:    store,
		presence: presence.NewRegistry(),
		rules:    rules,
		logger:   logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".tapcolour", "host_key")
	}
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.presenceMiddleware,
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// presenceKey is where presenceMiddleware leaves the session's handle.
type presenceKey struct{}

// presenceMiddleware registers the connection for announcements while it
// lasts.
func (s *SSHServer) presenceMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		user := sshSession.User()
		handle := presence.NewChannelSession(presence.NewSessionID(user), user, presenceBuffer)
		sshSession.Context().SetValue(presenceKey{}, handle)

		s.presence.Register(handle)
		defer func() {
			s.presence.Unregister(handle.ID())
			handle.Close()
		}()

		next(sshSession)
	}
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.config.TickRate,
		Seed:     time.Now().UnixNano(),
	}

	user := sshSession.User()
	handle, _ := sshSession.Context().Value(presenceKey{}).(*presence.ChannelSession)
	env := Env{
		Store:    s.store,
		Presence: s.presence,
		Session:  handle,
		Player:   user,
		Logger:   s.logger.With("user", user),
		Painter:  NewPainter(bubbletea.MakeRenderer(sshSession)),
	}
	prefs := storage.Preferences{Player: user}
	rules := s.rules

	model := NewSessionModel(cfg, &rules, prefs, false, env)
	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
			"online", s.presence.Count(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address)

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errc := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case <-done:
	case err := <-errc:
		s.logger.Error("server error", "error", err)
		s.Shutdown() //nolint:errcheck // already failing
		return err
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
