package tui

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sketch-arcade/internal/core"
	"github.com/vovakirdan/sketch-arcade/internal/registry"
	"github.com/vovakirdan/sketch-arcade/internal/storage"
)

var noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))

// Model runs one local game: it feeds mapped keys to the game each tick,
// saves the result once per game over and paints the game's screen.
type Model struct {
	game   registry.Game
	screen *core.Screen
	store  *storage.Store
	config core.RuntimeConfig
	keys   *KeyMapper
	player string // recorded with match results

	pending core.InputFrame // actions since the last tick
	state   core.GameState
	saved   bool   // result for the current game over is stored
	notice  string // status line under the board

	quitting   bool
	backToMenu bool
}

// NewModel creates a model for game. A zero seed is replaced with the
// current time.
func NewModel(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) Model {
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	return Model{
		game:   game,
		screen: core.NewScreen(cfg.ScreenW, max(1, cfg.ScreenH-1)),
		store:  store,
		config: cfg,
		keys:   NewKeyMapper(),
		player: "Player 1",
	}
}

// WithPlayer sets the name saved with this game's match results.
func (m Model) WithPlayer(name string) Model {
	if name != "" {
		m.player = name
	}
	return m
}

// Init resets the game and starts the tick loop.
func (m Model) Init() tea.Cmd {
	m.game.Reset(m.config)
	return tickCmd(m.config.TickRate)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+s" {
			m.notice = m.screenshot()
			return m, nil
		}
		action, quit := m.keys.MapKey(msg)
		switch {
		case quit:
			m.quitting = true
			return m, tea.Quit
		case action == core.ActionBack:
			m.quitting, m.backToMenu = true, true
			return m, tea.Quit
		case action != core.ActionNone:
			m.pending.Set(action)
		}

	case tea.WindowSizeMsg:
		// games lay themselves out from the screen size on every render
		m.config.ScreenW, m.config.ScreenH = msg.Width, msg.Height
		m.screen.Resize(msg.Width, max(1, msg.Height-1))

	case TickMsg:
		return m.tick()
	}
	return m, nil
}

func (m Model) tick() (tea.Model, tea.Cmd) {
	if m.pending.Has(core.ActionRestart) {
		m.saved, m.notice = false, ""
	}

	m.state = m.game.Step(m.pending).State
	m.pending.Clear()

	if m.state.GameOver && !m.saved {
		notice, err := saveResult(m.store, m.game, m.state, m.player)
		if err != nil {
			notice = "Could not save result: " + err.Error()
		}
		m.notice, m.saved = notice, true
	}
	return m, tickCmd(m.config.TickRate)
}

// screenshot writes the current frame as text under ~/.arcade/screenshots
// and returns a status message.
func (m *Model) screenshot() string {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		return "Screenshot failed: " + err.Error()
	}
	dir := filepath.Join(home, ".arcade", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "Screenshot failed: " + err.Error()
	}
	name := fmt.Sprintf("%s_%s.txt", m.game.ID(), time.Now().Format("20060102_150405"))
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		return "Screenshot failed: " + err.Error()
	}
	return "Saved " + path
}

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	m.game.Render(m.screen)
	return RenderScreen(m.screen) + "\n" + centerText(noticeStyle.Render(m.notice), m.config.ScreenW)
}

// BackToMenu reports whether the player left with Esc rather than quitting.
func (m Model) BackToMenu() bool {
	return m.backToMenu
}

// Run plays game in its own program and reports whether the player asked
// to go back to the menu.
func Run(game registry.Game, store *storage.Store, cfg core.RuntimeConfig) (bool, error) {
	final, err := tea.NewProgram(NewModel(game, store, cfg), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	fm, ok := final.(Model)
	return ok && fm.BackToMenu(), nil
}
