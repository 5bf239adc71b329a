package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/google/uuid"

	"github.com/vovakirdan/sketch-arcade/internal/core"
	"github.com/vovakirdan/sketch-arcade/internal/multiplayer"
	"github.com/vovakirdan/sketch-arcade/internal/storage"
)

// SSHServerConfig configures the SSH front end.
type SSHServerConfig struct {
	Address     string // host:port, e.g. ":23234"
	HostKeyPath string // empty means ~/.arcade/host_key, generated on first run
	IdleTimeout time.Duration
}

// DefaultSSHServerConfig listens on :23234 and drops connections idle for
// half an hour.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{Address: ":23234", IdleTimeout: 30 * time.Minute}
}

// SSHServer serves one SessionModel per SSH connection.
type SSHServer struct {
	config      SSHServerConfig
	server      *ssh.Server
	store       *storage.Store
	coordinator *multiplayer.Coordinator
	sessions    *multiplayer.SessionRegistry
	logger      *log.Logger
}

// NewSSHServer builds the server. Connections are registered in sessions
// so the coordinator can pair them with web players. store may be nil.
func NewSSHServer(
	cfg SSHServerConfig,
	store *storage.Store,
	coordinator *multiplayer.Coordinator,
	sessions *multiplayer.SessionRegistry,
	logger *log.Logger,
) (*SSHServer, error) {
	keyPath, err := hostKeyPath(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	s := &SSHServer{
		config:      cfg,
		store:       store,
		coordinator: coordinator,
		sessions:    sessions,
		logger:      logger.WithPrefix("ssh"),
	}
	// the last middleware runs first
	s.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.newProgram),
			activeterm.Middleware(),
			s.logSessions,
		),
	)
	if err != nil {
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	return s, nil
}

// hostKeyPath resolves the key location and makes sure its directory
// exists. wish generates the key itself when the file is missing.
func hostKeyPath(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".arcade", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

// guestName is the SSH user name, or a petname for anonymous logins.
func guestName(user string) string {
	if user == "" {
		return petname.Generate(2, "-")
	}
	return user
}

func (s *SSHServer) newProgram(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sess.Pty()
	cfg := core.DefaultConfig()
	cfg.ScreenW, cfg.ScreenH = pty.Window.Width, pty.Window.Height
	cfg.Seed = time.Now().UnixNano()

	player := s.attach(sess)
	return NewSessionModel(s.store, cfg, player, s.coordinator), []tea.ProgramOption{tea.WithAltScreen()}
}

// attach registers a multiplayer session for the connection and tears it
// down when the connection closes.
func (s *SSHServer) attach(sess ssh.Session) *multiplayer.ChannelSession {
	player := multiplayer.NewChannelSession(
		multiplayer.SessionID(uuid.NewString()),
		guestName(sess.User()),
		64,
	)
	s.sessions.Register(player)

	go func() {
		<-sess.Context().Done()
		s.coordinator.Send(multiplayer.SessionDisconnectedMsg{SessionID: player.ID()})
		s.sessions.Unregister(player.ID())
		player.Close()
	}()
	return player
}

func (s *SSHServer) logSessions(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		start := time.Now()
		l := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		l.Info("connected")
		next(sess)
		l.Info("disconnected", "after", time.Since(start).Round(time.Second))
	}
}

// ListenAndServe serves until ctx is cancelled or the listener fails.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	s.logger.Info("listening", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() { errCh <- s.server.ListenAndServe() }()

	select {
	case err := <-errCh:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("ssh server: %w", err)
	case <-ctx.Done():
		s.logger.Info("shutting down")
		return s.Shutdown()
	}
}

// Shutdown stops accepting connections and waits up to ten seconds for
// open ones to finish.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.server.Shutdown(ctx)
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
