// Package registry maps game IDs to constructors. Game packages register
// themselves from init, so importing a game is enough to make it playable
// from the CLI, the menu and the SSH server.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/vovakirdan/sketch-arcade/internal/core"
)

// Game is what the terminal platform drives: fixed-tick simulation plus a
// renderer. Games never see Bubble Tea; the platform maps keys to
// core.Actions and paints the core.Screen they draw into.
type Game interface {
	// ID is the stable identifier used by the CLI and score storage.
	ID() string
	Title() string

	// Reset starts a fresh game. Called once before the first Step and
	// again on restart.
	Reset(cfg core.RuntimeConfig)

	// Step advances one tick.
	Step(in core.InputFrame) core.StepResult

	// Render draws into a cleared screen.
	Render(dst *core.Screen)

	State() core.GameState
}

// TwoPlayerGame is a Game decided by a winner instead of a score. The
// platform records its Outcome as a match.
type TwoPlayerGame interface {
	Game
	Outcome() (outcome core.Outcome, ok bool)
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID        string
	Title     string
	TwoPlayer bool
}

// Factory builds a fresh game.
type Factory func() Game

type entry struct {
	info GameInfo
	make Factory
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a game. It panics on a duplicate ID. The factory is called
// once here to read the title and whether the game has two players.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, dup := entries[id]; dup {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	probe := f()
	_, duel := probe.(TwoPlayerGame)
	entries[id] = entry{
		info: GameInfo{ID: id, Title: probe.Title(), TwoPlayer: duel},
		make: f,
	}
}

// List returns every registered game ordered by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	out := make([]GameInfo, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Create builds a new instance of the game id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.make(), nil
}

// Info returns the metadata recorded for id.
func Info(id string) (GameInfo, bool) {
	mu.RLock()
	defer mu.RUnlock()
	e, ok := entries[id]
	return e.info, ok
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	_, ok := Info(id)
	return ok
}
