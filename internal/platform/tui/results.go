package tui

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/sketch-arcade/internal/core"
	"github.com/vovakirdan/sketch-arcade/internal/multiplayer"
	"github.com/vovakirdan/sketch-arcade/internal/registry"
	"github.com/vovakirdan/sketch-arcade/internal/storage"
)

// saveResult stores a finished local game: the score when positive, and
// for two-player games the outcome as a match record. player names the
// person at the keyboard. The returned notice is shown under the game.
func saveResult(store *storage.Store, game registry.Game, state core.GameState, player string) (string, error) {
	if store == nil {
		return "", nil
	}

	var notice string
	var errs []error
	if state.Score > 0 {
		best, err := store.HighScore(game.ID())
		if err != nil {
			errs = append(errs, err)
		}
		if _, err := store.SaveScore(game.ID(), state.Score); err != nil {
			errs = append(errs, err)
		} else if state.Score > best {
			notice = fmt.Sprintf("New high score: %d", state.Score)
		} else {
			notice = fmt.Sprintf("Score %d saved (best %d)", state.Score, best)
		}
	}

	if tp, ok := game.(registry.TwoPlayerGame); ok {
		if out, done := tp.Outcome(); done {
			mode := multiplayer.ModeForGame(game.ID(), true)
			if _, err := store.SaveMatch(matchRecord(game.ID(), mode, out, player)); err != nil {
				errs = append(errs, err)
			} else if notice == "" {
				notice = "Match saved"
			}
		}
	}

	return notice, errors.Join(errs...)
}

func matchRecord(gameID string, mode multiplayer.MatchMode, out core.Outcome, player string) storage.MatchRecord {
	p1, p2 := player, "Player 2"
	if mode == multiplayer.MatchModeVsCPU {
		p2 = "CPU"
	}
	return storage.MatchRecord{
		GameID:    gameID,
		Mode:      mode.String(),
		Winner:    int(out.Winner),
		Draw:      out.Draw,
		Moves:     out.Moves,
		Record:    out.Record,
		Player1:   p1,
		Player2:   p2,
		EndReason: multiplayer.MatchEndReasonCompleted.String(),
	}
}
