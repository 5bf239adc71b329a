package connect4

import (
	"math/rand"
	"strconv"
	"strings"

	"github.com/vovakirdan/sketch-arcade/internal/config"
	"github.com/vovakirdan/sketch-arcade/internal/core"
	"github.com/vovakirdan/sketch-arcade/internal/registry"
)

// Mode selects who controls PlayerTwo.
type Mode int

const (
	ModeHotseat Mode = iota // two humans share the keyboard
	ModeCPU                 // PlayerTwo is a bot
	ModeOnline              // both seats are remote sessions
)

// configPath stores the custom config path set via CLI
var configPath string

// difficultyPreset stores the difficulty preset set via CLI
var difficultyPreset config.DifficultyPreset

// SetConfigPath sets a custom config file path.
func SetConfigPath(path string) {
	configPath = path
}

// SetDifficultyPreset sets the CPU strength preset ("easy", "normal", "hard").
// Unknown values clear the preset.
func SetDifficultyPreset(preset string) {
	difficultyPreset, _ = config.ParsePreset(preset)
}

const messageTicks = 45

// Game adapts a GameState to the arcade platform.
type Game struct {
	mode    Mode
	cfg     config.Connect4Config
	state   *GameState
	bot     Bot
	runtime core.RuntimeConfig

	cursors [3]int // indexed by Piece
	think   int    // ticks left before the bot drops
	paused  bool
	tick    uint64
	score   int

	last    Placement
	message string
	msgLeft int
}

// New creates a hotseat game.
func New() *Game {
	return newGame(ModeHotseat)
}

// NewVsCPU creates a game against the computer.
func NewVsCPU() *Game {
	return newGame(ModeCPU)
}

// NewOnline creates a game driven by StepMulti.
func NewOnline() *Game {
	return newGame(ModeOnline)
}

func newGame(mode Mode) *Game {
	g := &Game{mode: mode, cfg: config.DefaultConnect4Config()}
	g.state = NewGameState(g.cfg.Board.Rows, g.cfg.Board.Cols)
	return g
}

func init() {
	registry.Register("connect4", func() registry.Game {
		return New()
	})
	registry.Register("connect4_cpu", func() registry.Game {
		return NewVsCPU()
	})
}

// ID returns the game identifier.
func (g *Game) ID() string {
	switch g.mode {
	case ModeCPU:
		return "connect4_cpu"
	case ModeOnline:
		return "connect4_online"
	default:
		return "connect4"
	}
}

// Title returns the display name.
func (g *Game) Title() string {
	switch g.mode {
	case ModeCPU:
		return "Connect Four vs CPU"
	case ModeOnline:
		return "Connect Four Online"
	default:
		return "Connect Four"
	}
}

// Reset loads configuration and starts a fresh game.
func (g *Game) Reset(runtime core.RuntimeConfig) {
	g.runtime = runtime

	cfg, err := config.LoadConnect4(configPath)
	if err != nil {
		cfg = config.DefaultConnect4Config()
	}
	if difficultyPreset != "" {
		config.ApplyConnect4Preset(&cfg, difficultyPreset)
	}
	g.cfg = cfg

	g.state = NewGameState(cfg.Board.Rows, cfg.Board.Cols)
	g.bot = nil
	if g.mode == ModeCPU {
		g.bot = NewBot(cfg.CPU.Difficulty, cfg.CPU.Depth, rand.New(rand.NewSource(runtime.Seed)))
	}
	g.restart()
}

// restart clears the board but keeps configuration and bot.
func (g *Game) restart() {
	g.state.Reset()
	center := g.state.Cols() / 2
	g.cursors = [3]int{center, center, center}
	g.think = 0
	g.paused = false
	g.tick = 0
	g.score = 0
	g.last = Placement{Kind: ColumnFull, Row: -1, Col: -1}
	g.message = ""
	g.msgLeft = 0
}

// Step advances the game by one tick using local keyboard input.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	if in.Has(core.ActionRestart) {
		g.restart()
		return core.StepResult{State: g.State()}
	}
	if g.state.Status().Terminal() {
		return core.StepResult{State: g.State()}
	}
	if in.Has(core.ActionPause) {
		g.paused = !g.paused
	}
	if g.paused {
		return core.StepResult{State: g.State()}
	}

	g.advance()

	current := g.state.CurrentPlayer()
	if g.mode == ModeCPU && current == PlayerTwo {
		g.stepCPU()
	} else {
		g.handleInput(current, in)
	}

	return core.StepResult{State: g.State()}
}

// advance counts the tick and expires the transient message.
func (g *Game) advance() {
	g.tick++
	if g.msgLeft > 0 {
		g.msgLeft--
		if g.msgLeft == 0 {
			g.message = ""
		}
	}
}

// handleInput moves p's cursor and drops when p is on turn.
func (g *Game) handleInput(p Piece, in core.InputFrame) {
	if in.Has(core.ActionLeft) {
		g.cursors[p] = max(0, g.cursors[p]-1)
	}
	if in.Has(core.ActionRight) {
		g.cursors[p] = min(g.state.Cols()-1, g.cursors[p]+1)
	}
	if in.Has(core.ActionDrop) && p == g.state.CurrentPlayer() {
		g.drop(g.cursors[p])
	}
}

func (g *Game) stepCPU() {
	if g.think > 0 {
		g.think--
		return
	}
	col := g.bot.ChooseColumn(g.state)
	if col < 0 {
		return
	}
	g.cursors[PlayerTwo] = col
	g.drop(col)
}

func (g *Game) drop(col int) {
	p, err := g.state.DropPiece(col)
	if err != nil {
		return
	}
	if p.Kind == ColumnFull {
		g.flash("Column full")
		return
	}

	g.last = p
	if g.state.Status().Terminal() {
		g.score = g.finalScore()
		return
	}
	if g.mode == ModeCPU && g.state.CurrentPlayer() == PlayerTwo {
		g.think = g.cfg.CPU.ThinkTicks
	}
}

func (g *Game) flash(msg string) {
	g.message = msg
	g.msgLeft = messageTicks
}

// finalScore rewards a human win; quicker wins leave more empty cells.
func (g *Game) finalScore() int {
	if g.state.Status() != StatusWon {
		return 0
	}
	if g.mode == ModeCPU && g.state.Winner() == PlayerTwo {
		return 0
	}
	empty := g.state.Rows()*g.state.Cols() - g.state.MoveCount()
	return g.cfg.Scoring.WinPoints + empty*g.cfg.Scoring.MoveBonus
}

// State returns the current game state.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.score,
		GameOver: g.state.Status().Terminal(),
		Paused:   g.paused,
	}
}

// Outcome reports the finished game's result.
func (g *Game) Outcome() (core.Outcome, bool) {
	if !g.state.Status().Terminal() {
		return core.Outcome{}, false
	}
	return core.Outcome{
		Winner: seatOf(g.state.Winner()),
		Draw:   g.state.Status() == StatusDraw,
		Moves:  g.state.MoveCount(),
		Record: EncodeMoves(g.state.Moves()),
	}, true
}

// Engine exposes the underlying board state.
func (g *Game) Engine() *GameState {
	return g.state
}

// Cursor returns the column p is pointing at.
func (g *Game) Cursor(p Piece) int {
	return g.cursors[p]
}

// EncodeMoves writes each column as one base-36 digit.
func EncodeMoves(cols []int) string {
	var sb strings.Builder
	for _, c := range cols {
		sb.WriteString(strconv.FormatInt(int64(c), 36))
	}
	return sb.String()
}

// DecodeMoves reverses EncodeMoves.
func DecodeMoves(record string) ([]int, error) {
	cols := make([]int, 0, len(record))
	for _, r := range record {
		c, err := strconv.ParseInt(string(r), 36, 0)
		if err != nil {
			return nil, err
		}
		cols = append(cols, int(c))
	}
	return cols, nil
}

func seatOf(p Piece) core.PlayerID {
	switch p {
	case PlayerOne:
		return core.Player1
	case PlayerTwo:
		return core.Player2
	default:
		return core.PlayerNone
	}
}

func pieceOf(id core.PlayerID) Piece {
	switch id {
	case core.Player1:
		return PlayerOne
	case core.Player2:
		return PlayerTwo
	default:
		return Empty
	}
}

var _ registry.TwoPlayerGame = (*Game)(nil)
