package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sketch-arcade/internal/core"
	"github.com/vovakirdan/sketch-arcade/internal/games/connect4"
	"github.com/vovakirdan/sketch-arcade/internal/multiplayer"
)

// OnlineState represents the current state of the online matchmaking flow.
type OnlineState int

const (
	OnlineStateChooseMode    OnlineState = iota // Choose Host or Join
	OnlineStateHostWaiting                      // Hosting, waiting for joiner
	OnlineStateJoinEnterCode                    // Entering join code
	OnlineStateJoinWaiting                      // Waiting to connect to host
	OnlineStateInMatch                          // In active match
	OnlineStateMatchEnded                       // Match has ended
)

var (
	onlineTitle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("11"))
	onlineCode  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229")).Background(lipgloss.Color("57")).Padding(0, 1)
	onlineError = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

// OnlineModel drives an online Connect Four session: hosting or joining a
// lobby, then mirroring the server's match state from snapshots.
type OnlineModel struct {
	state       OnlineState
	width       int
	height      int
	keyMapper   *KeyMapper
	gameID      string
	sessionID   multiplayer.SessionID
	coordinator *multiplayer.Coordinator

	// Host state
	lobbyCode string

	// Join state
	codeInput textinput.Model
	joinCode  string
	joinError string

	// Match state
	matchID  multiplayer.MatchID
	side     core.PlayerID
	opponent string
	seq      uint64
	game     *connect4.Game
	screen   *core.Screen
	help     help.Model

	// Result state
	endReason multiplayer.MatchEndReason
	outcome   core.Outcome

	backToMenu bool
	quitting   bool

	// For receiving events from coordinator
	eventChan <-chan multiplayer.SessionEvent
}

// NewOnlineModel creates a new online model.
func NewOnlineModel(
	gameID string,
	sessionID multiplayer.SessionID,
	coordinator *multiplayer.Coordinator,
	eventChan <-chan multiplayer.SessionEvent,
	width, height int,
) OnlineModel {
	ti := textinput.New()
	ti.Placeholder = "K7PQ2M"
	ti.CharLimit = multiplayer.JoinCodeLength
	ti.Width = multiplayer.JoinCodeLength + 1
	ti.Prompt = ""

	h := help.New()
	h.Width = width

	return OnlineModel{
		state:       OnlineStateChooseMode,
		width:       width,
		height:      height,
		keyMapper:   NewKeyMapper(),
		gameID:      gameID,
		sessionID:   sessionID,
		coordinator: coordinator,
		codeInput:   ti,
		help:        h,
		eventChan:   eventChan,
	}
}

// Init starts listening for coordinator events.
func (m OnlineModel) Init() tea.Cmd {
	return m.waitForEvent()
}

// waitForEvent returns a command that waits for coordinator events.
func (m OnlineModel) waitForEvent() tea.Cmd {
	ch := m.eventChan
	return func() tea.Msg {
		if ch == nil {
			return nil
		}
		evt, ok := <-ch
		if !ok {
			return nil
		}
		return evt
	}
}

// Update handles messages.
func (m OnlineModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		if m.screen != nil {
			m.screen.Resize(msg.Width, max(1, msg.Height-2))
		}
		return m, nil
	case multiplayer.SessionEvent:
		m = m.handleEvent(msg)
		return m, m.waitForEvent()
	}
	return m, nil
}

// handleEvent applies one coordinator event.
func (m OnlineModel) handleEvent(evt multiplayer.SessionEvent) OnlineModel {
	switch evt := evt.(type) {
	case multiplayer.LobbyCreatedEvent:
		m.lobbyCode = evt.Code
		m.state = OnlineStateHostWaiting
	case multiplayer.LobbyJoinedEvent:
		m.side = evt.Side
		m.opponent = evt.OpponentName
	case multiplayer.LobbyErrorEvent:
		m.joinError = evt.Message
		switch m.state {
		case OnlineStateJoinWaiting:
			m.state = OnlineStateJoinEnterCode
			m.codeInput.Focus()
		case OnlineStateInMatch:
			m.state = OnlineStateChooseMode
		}
	case multiplayer.LobbyPlayerLeftEvent:
		// Host stays waiting; a joiner whose host left goes back to code entry
		if m.state == OnlineStateJoinWaiting {
			m.joinError = "Host left the lobby"
			m.state = OnlineStateJoinEnterCode
			m.codeInput.Focus()
		}
	case multiplayer.MatchStartedEvent:
		m.matchID = evt.MatchID
		m.side = evt.Side
		m.opponent = evt.OpponentName
		m.seq = 0
		m.game = connect4.NewOnline()
		m.game.Reset(core.RuntimeConfig{ScreenW: m.width, ScreenH: m.height, TickRate: 60})
		m.screen = core.NewScreen(m.width, max(1, m.height-2))
		m.state = OnlineStateInMatch
	case multiplayer.SnapshotEvent:
		// Drop snapshots from older matches and out-of-order deliveries
		if evt.MatchID != m.matchID || evt.Seq < m.seq || m.game == nil {
			return m
		}
		if snap, ok := evt.Snapshot.(connect4.Snapshot); ok {
			m.game.ApplySnapshot(snap)
			m.seq = evt.Seq
		}
	case multiplayer.MatchEndedEvent:
		if evt.MatchID != m.matchID {
			return m
		}
		m.endReason = evt.Reason
		m.outcome = evt.Outcome
		m.state = OnlineStateMatchEnded
	}
	return m
}

func (m OnlineModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Global quit
	if msg.String() == "ctrl+c" {
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case OnlineStateChooseMode, OnlineStateMatchEnded:
		return m.handleChooseModeKey(msg)
	case OnlineStateHostWaiting:
		return m.handleHostWaitingKey(msg)
	case OnlineStateJoinEnterCode:
		return m.handleJoinCodeKey(msg)
	case OnlineStateJoinWaiting:
		return m.handleJoinWaitingKey(msg)
	case OnlineStateInMatch:
		return m.handleMatchKey(msg)
	}

	return m, nil
}

func (m OnlineModel) handleChooseModeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "h", "H", "1":
		m.joinError = ""
		m.coordinator.Send(multiplayer.CreateLobbyMsg{
			SessionID: m.sessionID,
			GameID:    m.gameID,
		})
		return m, nil
	case "j", "J", "2":
		m.state = OnlineStateJoinEnterCode
		m.joinError = ""
		m.codeInput.Reset()
		cmd := m.codeInput.Focus()
		return m, cmd
	case "esc", "b":
		m.backToMenu = true
		return m, nil
	case "q":
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m OnlineModel) handleHostWaitingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		m.leave()
		m.state = OnlineStateChooseMode
		return m, nil
	case "q":
		m.leave()
		m.quitting = true
		return m, tea.Quit
	}

	return m, nil
}

func (m OnlineModel) handleJoinCodeKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.codeInput.Blur()
		m.state = OnlineStateChooseMode
		return m, nil
	case "enter":
		code := strings.ToUpper(strings.TrimSpace(m.codeInput.Value()))
		if code == "" {
			return m, nil
		}
		m.joinCode = code
		m.joinError = ""
		m.codeInput.Blur()
		m.state = OnlineStateJoinWaiting
		m.coordinator.Send(multiplayer.JoinLobbyMsg{
			SessionID: m.sessionID,
			Code:      code,
		})
		return m, nil
	}

	var cmd tea.Cmd
	m.codeInput, cmd = m.codeInput.Update(msg)
	m.codeInput.SetValue(strings.ToUpper(m.codeInput.Value()))
	return m, cmd
}

func (m OnlineModel) handleJoinWaitingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "b":
		m.leave()
		m.state = OnlineStateJoinEnterCode
		cmd := m.codeInput.Focus()
		return m, cmd
	}

	return m, nil
}

func (m OnlineModel) handleMatchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action, isQuit := m.keyMapper.MapKey(msg)
	switch {
	case isQuit:
		m.leave()
		m.quitting = true
		return m, tea.Quit
	case action == core.ActionBack:
		m.leave()
		m.backToMenu = true
		return m, nil
	case action == core.ActionLeft, action == core.ActionRight, action == core.ActionDrop:
		m.coordinator.Send(multiplayer.PlayerInputMsg{
			MatchID: m.matchID,
			Player:  m.side,
			Input:   core.FrameOf(action),
		})
	}
	return m, nil
}

// leave tells the coordinator this session is giving up its lobby or match.
func (m OnlineModel) leave() {
	switch m.state {
	case OnlineStateHostWaiting:
		m.coordinator.Send(multiplayer.CancelLobbyMsg{SessionID: m.sessionID, Code: m.lobbyCode})
	case OnlineStateJoinWaiting:
		m.coordinator.Send(multiplayer.LeaveLobbyMsg{SessionID: m.sessionID, Code: m.joinCode})
	case OnlineStateInMatch:
		m.coordinator.Send(multiplayer.LeaveMatchMsg{SessionID: m.sessionID, MatchID: m.matchID})
	}
}

// View renders the current state.
func (m OnlineModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.state {
	case OnlineStateHostWaiting:
		return m.page("HOSTING GAME", "Esc cancel · q quit",
			"Share this code with your opponent:",
			"",
			onlineCode.Render(m.lobbyCode),
			"",
			"Waiting for player to join...")

	case OnlineStateJoinEnterCode:
		return m.page("JOIN GAME", "enter connect · esc back",
			"Enter the game code:",
			"",
			"[ "+m.codeInput.View()+" ]",
			m.errorLine())

	case OnlineStateJoinWaiting:
		return m.page("CONNECTING", "esc cancel",
			"Joining game "+m.joinCode,
			"",
			"Please wait...")

	case OnlineStateInMatch:
		return m.viewMatch()

	case OnlineStateMatchEnded:
		reason := ""
		if m.endReason != multiplayer.MatchEndReasonCompleted {
			reason = menuDim.Render(m.endReason.String())
		}
		return m.page("MATCH OVER", "esc back · q quit",
			m.ResultText(),
			reason,
			"",
			"[H] Host again   [J] Join a game")
	}

	return m.page("CONNECT FOUR ONLINE", "esc back · q quit",
		"[H] Host a game",
		"[J] Join a game",
		m.errorLine())
}

// page lays out a centered title, body lines and a dim key hint.
func (m OnlineModel) page(title, hint string, lines ...string) string {
	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(centerText(onlineTitle.Render(title), m.width))
	b.WriteString("\n\n")
	for _, l := range lines {
		b.WriteString(centerText(l, m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(menuDim.Render(hint), m.width))
	return b.String()
}

func (m OnlineModel) errorLine() string {
	if m.joinError == "" {
		return ""
	}
	return onlineError.Render(m.joinError)
}

func (m OnlineModel) viewMatch() string {
	if m.game == nil || m.screen == nil {
		return ""
	}
	m.game.Render(m.screen)

	footer := fmt.Sprintf("You are %s vs %s", sideName(m.side), m.opponent)
	if m.isMyTurn() {
		footer += "  |  Your move"
	}
	return RenderScreen(m.screen) + "\n" +
		centerText(menuDim.Render(footer), m.width) + "\n" +
		centerText(m.help.View(m.keyMapper.Keys()), m.width)
}

// ResultText describes the finished match from this session's side.
func (m OnlineModel) ResultText() string {
	switch {
	case m.outcome.Draw:
		return "It's a draw!"
	case m.outcome.Winner == m.side:
		return "You win!"
	case m.outcome.Winner == core.PlayerNone:
		return "No result"
	default:
		return fmt.Sprintf("%s wins", m.opponent)
	}
}

func (m OnlineModel) isMyTurn() bool {
	if m.game == nil {
		return false
	}
	e := m.game.Engine()
	return !e.Status().Terminal() && e.CurrentPlayer() == sidePiece(m.side)
}

func sidePiece(side core.PlayerID) connect4.Piece {
	if side == core.Player2 {
		return connect4.PlayerTwo
	}
	return connect4.PlayerOne
}

func sideName(side core.PlayerID) string {
	p := sidePiece(side)
	return fmt.Sprintf("%s (P%d)", p.ColorName(), p.Number())
}

// State returns the current online state.
func (m OnlineModel) State() OnlineState {
	return m.state
}

// BackToMenu returns true if user wants to go back to menu.
func (m OnlineModel) BackToMenu() bool {
	return m.backToMenu
}

// IsQuitting returns true if user wants to quit entirely.
func (m OnlineModel) IsQuitting() bool {
	return m.quitting
}

// MatchID returns the match ID if a match was started.
func (m OnlineModel) MatchID() multiplayer.MatchID {
	return m.matchID
}

// Side returns which side (P1/P2) this session plays.
func (m OnlineModel) Side() core.PlayerID {
	return m.side
}

// LobbyCode returns the lobby code.
func (m OnlineModel) LobbyCode() string {
	return m.lobbyCode
}

// Game returns the locally mirrored game, nil before a match starts.
func (m OnlineModel) Game() *connect4.Game {
	return m.game
}
