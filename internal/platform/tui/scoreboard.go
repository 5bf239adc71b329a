package tui

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sketch-arcade/internal/registry"
	"github.com/vovakirdan/sketch-arcade/internal/storage"
)

const (
	scoreRows    = 50
	matchRows    = 50
	standingRows = 3
)

var (
	boardFrame = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)
	tabStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Padding(0, 1)
	activeTabStyle = lipgloss.NewStyle().Bold(true).
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	emptyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true).Padding(1, 3)
	faintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// ScoreboardKeyMap holds the scoreboard bindings.
type ScoreboardKeyMap struct {
	Up   key.Binding
	Down key.Binding
	Next key.Binding
	Prev key.Binding
	Back key.Binding
	Quit key.Binding
}

// ShortHelp implements help.KeyMap.
func (k ScoreboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Prev, k.Next, k.Up, k.Down, k.Back}
}

// FullHelp implements help.KeyMap.
func (k ScoreboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Prev, k.Next, k.Up, k.Down}, {k.Back, k.Quit}}
}

// DefaultScoreboardKeyMap returns the scoreboard bindings.
func DefaultScoreboardKeyMap() ScoreboardKeyMap {
	return ScoreboardKeyMap{
		Up:   key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "scroll")),
		Down: key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "scroll")),
		Next: key.NewBinding(key.WithKeys("tab", "right", "l"), key.WithHelp("tab/→", "next game")),
		Prev: key.NewBinding(key.WithKeys("shift+tab", "left", "h"), key.WithHelp("←", "prev game")),
		Back: key.NewBinding(key.WithKeys("esc", "b"), key.WithHelp("esc", "back")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ScoreboardModel shows high scores for solo games and match history with
// standings for two-player games, one game at a time.
type ScoreboardModel struct {
	store *storage.Store
	games []registry.GameInfo
	index int

	scores    []storage.ScoreEntry
	matches   []storage.MatchRecord
	standings []storage.PlayerStats

	table table.Model
	help  help.Model
	keys  ScoreboardKeyMap

	width, height int
	quitting      bool
	goingBack     bool
}

// NewScoreboardModel creates the scoreboard and loads the first game.
func NewScoreboardModel(store *storage.Store, width, height int) ScoreboardModel {
	games := append(registry.List(), registry.GameInfo{
		ID:        OnlineGameID,
		Title:     "Connect Four Online",
		TwoPlayer: true,
	})

	m := ScoreboardModel{
		store:  store,
		games:  games,
		help:   help.New(),
		keys:   DefaultScoreboardKeyMap(),
		width:  width,
		height: height,
	}
	m.help.Width = width
	m.load()
	return m
}

func (m ScoreboardModel) game() registry.GameInfo {
	return m.games[m.index]
}

// move selects the game delta steps away, wrapping around.
func (m *ScoreboardModel) move(delta int) {
	n := len(m.games)
	m.index = ((m.index+delta)%n + n) % n
	m.load()
}

// load reads the selected game's records and rebuilds the table.
func (m *ScoreboardModel) load() {
	m.scores, m.matches, m.standings = nil, nil, nil
	g := m.game()

	if m.store != nil {
		if g.TwoPlayer {
			if matches, err := m.store.RecentMatches(g.ID, matchRows); err == nil {
				m.matches = matches
				m.standings = m.loadStandings(matches)
			}
		} else if scores, err := m.store.TopScores(g.ID, scoreRows); err == nil {
			m.scores = scores
		}
	}
	m.rebuild()
}

// loadStandings returns the best records among players in matches.
func (m *ScoreboardModel) loadStandings(matches []storage.MatchRecord) []storage.PlayerStats {
	seen := make(map[string]bool)
	var out []storage.PlayerStats
	for _, r := range matches {
		for _, name := range []string{r.Player1, r.Player2} {
			if seen[name] {
				continue
			}
			seen[name] = true
			if rec, err := m.store.PlayerRecord(name); err == nil {
				out = append(out, rec)
			}
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Wins != out[j].Wins {
			return out[i].Wins > out[j].Wins
		}
		return out[i].Name < out[j].Name
	})
	if len(out) > standingRows {
		out = out[:standingRows]
	}
	return out
}

func (m *ScoreboardModel) rebuild() {
	var cols []table.Column
	var rows []table.Row

	if m.game().TwoPlayer {
		name := max(18, min(m.width-44, 30))
		cols = []table.Column{
			{Title: "Match", Width: name},
			{Title: "Result", Width: 16},
			{Title: "Moves", Width: 5},
			{Title: "When", Width: 12},
		}
		for _, r := range m.matches {
			rows = append(rows, table.Row{
				r.Player1 + " vs " + r.Player2,
				matchResultText(r),
				strconv.Itoa(r.Moves),
				r.CreatedAt.Local().Format("Jan 02 15:04"),
			})
		}
	} else {
		cols = []table.Column{
			{Title: "#", Width: 4},
			{Title: "Score", Width: 10},
			{Title: "When", Width: 14},
		}
		for i, s := range m.scores {
			rows = append(rows, table.Row{
				strconv.Itoa(i + 1),
				strconv.Itoa(s.Score),
				s.CreatedAt.Local().Format("Jan 02 15:04"),
			})
		}
	}

	styles := table.DefaultStyles()
	styles.Header = styles.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(true)
	styles.Selected = styles.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)

	m.table = table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithFocused(true),
		table.WithHeight(max(3, m.height-12)),
		table.WithStyles(styles),
	)
}

// matchResultText summarizes a match for the history table.
func matchResultText(r storage.MatchRecord) string {
	switch {
	case r.Draw:
		return "Draw"
	case r.Winner == 1:
		return r.Player1 + " won"
	case r.Winner == 2:
		return r.Player2 + " won"
	default:
		return r.EndReason
	}
}

// Init implements tea.Model.
func (m ScoreboardModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m ScoreboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Back):
			m.goingBack = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Next):
			m.move(1)
			return m, nil
		case key.Matches(msg, m.keys.Prev):
			m.move(-1)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.rebuild()
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

// View implements tea.Model.
func (m ScoreboardModel) View() string {
	if m.quitting || m.goingBack {
		return ""
	}
	g := m.game()

	heading := "HIGH SCORES"
	if g.TwoPlayer {
		heading = "MATCH HISTORY"
	}

	var b strings.Builder
	b.WriteString(centerText(menuTitleStyle.Render(heading), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.tabs(), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(boardFrame.Render(m.body()), m.width))
	b.WriteString("\n")
	if len(m.standings) > 0 {
		b.WriteString(centerText(faintStyle.Render(m.standingsLine()), m.width))
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(centerText(m.help.View(m.keys), m.width))
	return b.String()
}

// tabs renders the game strip, or just the selected title when it does not
// fit.
func (m ScoreboardModel) tabs() string {
	parts := make([]string, len(m.games))
	for i, g := range m.games {
		if i == m.index {
			parts[i] = activeTabStyle.Render(g.Title)
		} else {
			parts[i] = tabStyle.Render(g.Title)
		}
	}
	strip := lipgloss.JoinHorizontal(lipgloss.Top, parts...)
	if lipgloss.Width(strip) > m.width-4 {
		return "◀ " + activeTabStyle.Render(m.game().Title) + " ▶"
	}
	return strip
}

func (m ScoreboardModel) body() string {
	switch {
	case m.game().TwoPlayer && len(m.matches) == 0:
		return emptyStyle.Render("No matches recorded yet.\nFind an opponent and play!")
	case !m.game().TwoPlayer && len(m.scores) == 0:
		return emptyStyle.Render("No scores recorded yet.\nPlay a game to set one!")
	}
	return m.table.View()
}

func (m ScoreboardModel) standingsLine() string {
	parts := make([]string, len(m.standings))
	for i, s := range m.standings {
		parts[i] = fmt.Sprintf("%s %d-%d-%d", s.Name, s.Wins, s.Losses, s.Draws)
	}
	return "W-L-D  " + strings.Join(parts, "   ")
}

// IsGoingBack reports whether the player asked to return to the menu.
func (m ScoreboardModel) IsGoingBack() bool {
	return m.goingBack
}

// IsQuitting reports whether the player asked to quit.
func (m ScoreboardModel) IsQuitting() bool {
	return m.quitting
}

// RunScoreboard runs the scoreboard as its own program and reports whether
// the player went back to the menu.
func RunScoreboard(store *storage.Store, width, height int) (goBack bool, err error) {
	final, err := tea.NewProgram(NewScoreboardModel(store, width, height), tea.WithAltScreen()).Run()
	if err != nil {
		return false, err
	}
	m, ok := final.(ScoreboardModel)
	return ok && m.IsGoingBack(), nil
}
