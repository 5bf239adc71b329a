// Package web serves online Connect Four to browsers over websockets.
// Browser players share the coordinator with SSH players, so either can
// host a lobby the other joins.
package web

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	petname "github.com/dustinkirkland/golang-petname"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/sketch-arcade/internal/multiplayer"
)

const maxNameLength = 24

// Config holds the web server settings.
type Config struct {
	// Address is the host:port to listen on (e.g., ":8080").
	Address string

	// GameID is the online game lobbies are created for.
	GameID string
}

// DefaultConfig returns a config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Address: ":8080",
		GameID:  "connect4_online",
	}
}

// Server accepts websocket players and hands them to the coordinator.
type Server struct {
	config      Config
	coordinator *multiplayer.Coordinator
	sessions    *multiplayer.SessionRegistry
	logger      *log.Logger
	upgrader    websocket.Upgrader
}

// NewServer creates a web server.
func NewServer(cfg Config, coordinator *multiplayer.Coordinator, sessions *multiplayer.SessionRegistry, logger *log.Logger) *Server {
	return &Server{
		config:      cfg,
		coordinator: coordinator,
		sessions:    sessions,
		logger:      logger.WithPrefix("web"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Handler routes /ws and /healthz.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	mux.HandleFunc("/healthz", s.handleHealth)
	return mux
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	fmt.Fprintf(w, "ok sessions=%d lobbies=%d matches=%d\n",
		s.sessions.Count(), s.coordinator.LobbyCount(), s.coordinator.MatchCount())
}

// playerName takes the ?name= query value, at most maxNameLength runes,
// falling back to a petname.
func playerName(r *http.Request) string {
	name := strings.ToValidUTF8(r.URL.Query().Get("name"), "")
	name = strings.TrimSpace(name)
	if name == "" {
		return petname.Generate(2, "-")
	}
	if runes := []rune(name); len(runes) > maxNameLength {
		name = strings.TrimSpace(string(runes[:maxNameLength]))
	}
	return name
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("upgrade failed", "remote", r.RemoteAddr, "error", err)
		return
	}

	session := multiplayer.NewChannelSession(
		multiplayer.SessionID(uuid.NewString()),
		playerName(r),
		64,
	)
	s.sessions.Register(session)
	defer s.sessions.Unregister(session.ID())

	s.logger.Info("client connected", "name", session.Name(), "remote", r.RemoteAddr)
	c := &client{
		conn:        conn,
		session:     session,
		coordinator: s.coordinator,
		gameID:      s.config.GameID,
		logger:      s.logger,
	}
	c.run()
	s.logger.Info("client disconnected", "name", session.Name(), "remote", r.RemoteAddr)
}

// ListenAndServe serves until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.config.Address,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.logger.Info("starting web server", "address", s.config.Address)

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("web: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
