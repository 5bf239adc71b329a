package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/sketch-arcade/internal/core"
	"github.com/vovakirdan/sketch-arcade/internal/multiplayer"
	"github.com/vovakirdan/sketch-arcade/internal/registry"
	"github.com/vovakirdan/sketch-arcade/internal/storage"
)

type sessionView int

const (
	viewMenu sessionView = iota
	viewGame
	viewOnline
	viewScores
)

// SessionModel is everything one SSH connection sees. Unlike the local
// CLI, which starts a program per screen, it switches between the menu,
// a game, the online lobby and the scoreboard inside one program.
type SessionModel struct {
	store       *storage.Store
	config      core.RuntimeConfig
	player      *multiplayer.ChannelSession
	coordinator *multiplayer.Coordinator
	keys        *KeyMapper
	scoreKeys   ScoreboardKeyMap

	view   sessionView
	menu   MenuModel
	game   Model
	online OnlineModel
	scores ScoreboardModel

	quitting bool
}

// NewSessionModel opens on the menu. The model is the only reader of
// player's events.
func NewSessionModel(
	store *storage.Store,
	cfg core.RuntimeConfig,
	player *multiplayer.ChannelSession,
	coordinator *multiplayer.Coordinator,
) SessionModel {
	return SessionModel{
		store:       store,
		config:      cfg,
		player:      player,
		coordinator: coordinator,
		keys:        NewKeyMapper(),
		scoreKeys:   DefaultScoreboardKeyMap(),
		menu:        NewMenuModel(store, cfg).WithOnline(),
	}
}

// Init implements tea.Model.
func (m SessionModel) Init() tea.Cmd {
	return tea.Batch(m.menu.Init(), m.nextEvent())
}

// nextEvent waits for one coordinator event, or nothing once the session
// is closed.
func (m SessionModel) nextEvent() tea.Cmd {
	events, done := m.player.Events(), m.player.Done()
	return func() tea.Msg {
		select {
		case evt := <-events:
			return evt
		case <-done:
			return nil
		}
	}
}

// Update implements tea.Model.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height

	case multiplayer.SessionEvent:
		// outside the lobby these belong to a lobby or match already left
		if m.view == viewOnline {
			next, _ := m.online.Update(msg)
			m.online = next.(OnlineModel)
		}
		return m, m.nextEvent()

	case TickMsg:
		// a game's tick chain ends once it is no longer shown
		if m.view != viewGame {
			return m, nil
		}

	case tea.KeyMsg:
		if m.leavesToMenu(msg) {
			return m.toMenu()
		}
	}

	var cmd tea.Cmd
	switch m.view {
	case viewGame:
		var next tea.Model
		next, cmd = m.game.Update(msg)
		m.game = next.(Model)
		m.quitting = m.game.quitting && !m.game.backToMenu
	case viewOnline:
		var next tea.Model
		next, cmd = m.online.Update(msg)
		m.online = next.(OnlineModel)
		if m.online.BackToMenu() {
			return m.toMenu()
		}
		m.quitting = m.online.IsQuitting()
	case viewScores:
		var next tea.Model
		next, cmd = m.scores.Update(msg)
		m.scores = next.(ScoreboardModel)
		m.quitting = m.scores.IsQuitting()
	default:
		return m.updateMenu(msg)
	}

	if m.quitting {
		return m, tea.Quit
	}
	return m, cmd
}

// leavesToMenu reports whether k backs out of a game or the scoreboard.
// The online model handles its own back key, which means different things
// in different lobby states.
func (m SessionModel) leavesToMenu(k tea.KeyMsg) bool {
	switch m.view {
	case viewGame:
		action, _ := m.keys.MapKey(k)
		return action == core.ActionBack
	case viewScores:
		return key.Matches(k, m.scoreKeys.Back)
	}
	return false
}

// updateMenu forwards msg to the menu and opens whatever it chose. The
// menu ends its own program on a choice, so that command is dropped here.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.menu.Update(msg)
	m.menu = next.(MenuModel)

	switch item := m.menu.Selected(); {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsScoreboard():
		m.scores = NewScoreboardModel(m.store, m.config.ScreenW, m.config.ScreenH)
		m.view = viewScores
		return m, m.scores.Init()

	case item == nil:
		return m, cmd

	case item.GameID == OnlineGameID:
		m.online = NewOnlineModel(OnlineGameID, m.player.ID(), m.coordinator, nil, m.config.ScreenW, m.config.ScreenH)
		m.view = viewOnline
		return m, nil

	default:
		game, err := registry.Create(item.GameID)
		if err != nil {
			return m.toMenu()
		}
		m.config.Seed = time.Now().UnixNano()
		m.game = NewModel(game, m.store, m.config).WithPlayer(m.player.Name())
		m.view = viewGame
		return m, m.game.Init()
	}
}

// toMenu rebuilds the menu so best scores reflect the game just played.
func (m SessionModel) toMenu() (tea.Model, tea.Cmd) {
	m.view = viewMenu
	m.menu = NewMenuModel(m.store, m.config).WithOnline()
	return m, m.menu.Init()
}

// View implements tea.Model.
func (m SessionModel) View() string {
	switch {
	case m.quitting:
		return ""
	case m.view == viewGame:
		return m.game.View()
	case m.view == viewOnline:
		return m.online.View()
	case m.view == viewScores:
		return m.scores.View()
	}
	return m.menu.View()
}
