package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/vovakirdan/sketch-arcade/internal/multiplayer"
)

// MatchRecord is one finished two-player game.
type MatchRecord struct {
	ID        string
	GameID    string
	Mode      string // multiplayer.MatchMode name
	Winner    int    // 0 when nobody won, else the winning seat (1 or 2)
	Draw      bool
	Moves     int
	Record    string // game-specific move list
	Player1   string
	Player2   string
	EndReason string
	Duration  int // seconds
	CreatedAt time.Time
}

// PlayerStats is a win/loss/draw tally for one player name.
type PlayerStats struct {
	Name   string
	Wins   int
	Losses int
	Draws  int
}

// Played returns the number of decided or drawn matches.
func (p PlayerStats) Played() int {
	return p.Wins + p.Losses + p.Draws
}

// SaveMatch records a finished match. An empty ID gets a fresh UUID.
// Returns the stored ID.
func (s *Store) SaveMatch(m MatchRecord) (string, error) {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	_, err := s.db.Exec(
		`INSERT INTO matches
		 (id, game_id, mode, winner, draw, moves, record, player1, player2, end_reason, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		m.ID, m.GameID, m.Mode, m.Winner, m.Draw, m.Moves, m.Record,
		m.Player1, m.Player2, m.EndReason, m.Duration,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save match: %w", err)
	}
	return m.ID, nil
}

const matchColumns = `id, game_id, mode, winner, draw, moves, record,
	player1, player2, end_reason, duration_secs, created_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(r rowScanner) (MatchRecord, error) {
	var m MatchRecord
	var createdAt any
	err := r.Scan(
		&m.ID,
		&m.GameID,
		&m.Mode,
		&m.Winner,
		&m.Draw,
		&m.Moves,
		&m.Record,
		&m.Player1,
		&m.Player2,
		&m.EndReason,
		&m.Duration,
		&createdAt,
	)
	m.CreatedAt = parseTime(createdAt)
	return m, err
}

// MatchByID retrieves a match by its ID. Returns nil if it does not exist.
func (s *Store) MatchByID(id string) (*MatchRecord, error) {
	m, err := scanMatch(s.db.QueryRow(
		`SELECT `+matchColumns+` FROM matches WHERE id = ?`, id,
	))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query match: %w", err)
	}
	return &m, nil
}

// RecentMatches retrieves the newest matches for a game, or for every game
// when gameID is empty.
func (s *Store) RecentMatches(gameID string, limit int) ([]MatchRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT `+matchColumns+`
		 FROM matches
		 WHERE ?1 = '' OR game_id = ?1
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?2`,
		gameID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query matches: %w", err)
	}
	defer rows.Close()

	var results []MatchRecord
	for rows.Next() {
		m, err := scanMatch(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// PlayerRecord tallies wins, losses and draws for a player name across all
// stored matches.
func (s *Store) PlayerRecord(name string) (PlayerStats, error) {
	stats := PlayerStats{Name: name}
	err := s.db.QueryRow(
		`SELECT
		   COALESCE(SUM(CASE WHEN draw = 0 AND ((winner = 1 AND player1 = ?1) OR (winner = 2 AND player2 = ?1)) THEN 1 ELSE 0 END), 0),
		   COALESCE(SUM(CASE WHEN draw = 0 AND ((winner = 1 AND player2 = ?1) OR (winner = 2 AND player1 = ?1)) THEN 1 ELSE 0 END), 0),
		   COALESCE(SUM(CASE WHEN draw = 1 THEN 1 ELSE 0 END), 0)
		 FROM matches
		 WHERE player1 = ?1 OR player2 = ?1`,
		name,
	).Scan(&stats.Wins, &stats.Losses, &stats.Draws)
	if err != nil {
		return stats, fmt.Errorf("storage: cannot query player record: %w", err)
	}
	return stats, nil
}

// SaveMatchResult implements multiplayer.MatchResultSaver.
func (s *Store) SaveMatchResult(data multiplayer.MatchResultData) error {
	_, err := s.SaveMatch(MatchRecord{
		ID:        data.MatchID,
		GameID:    data.GameID,
		Mode:      multiplayer.MatchModeOnlinePvP.String(),
		Winner:    data.Winner,
		Draw:      data.Draw,
		Moves:     data.Moves,
		Record:    data.Record,
		Player1:   data.Player1,
		Player2:   data.Player2,
		EndReason: data.EndReason,
		Duration:  data.DurationSecs,
	})
	return err
}

// Ensure Store implements MatchResultSaver
var _ multiplayer.MatchResultSaver = (*Store)(nil)
