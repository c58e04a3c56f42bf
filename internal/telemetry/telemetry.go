// Package telemetry keeps an in-memory decision log of the turns played
// and search statistics gathered during the current game, for post-mortem
// printing once the game ends. It never touches disk: the database lives
// entirely inside SQLite's :memory: mode and disappears with the process.
package telemetry

import (
	"database/sql"
	"time"

	"github.com/pkg/errors"
	_ "modernc.org/sqlite"
)

// Log is an in-memory record of every turn the bot has played this game.
type Log struct {
	conn *sql.DB
}

// Open creates a fresh in-memory decision log.
func Open() (*Log, error) {
	conn, err := sql.Open("sqlite", ":memory:?_pragma=journal_mode(MEMORY)")
	if err != nil {
		return nil, errors.Wrap(err, "telemetry: open")
	}
	conn.SetMaxOpenConns(1)

	if _, err := conn.Exec(`
		CREATE TABLE turns (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			connection_id TEXT NOT NULL,
			season TEXT NOT NULL,
			card TEXT NOT NULL,
			terrain TEXT NOT NULL,
			positions_evaluated INTEGER NOT NULL,
			depth_reached INTEGER NOT NULL,
			decided_at DATETIME NOT NULL
		)
	`); err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "telemetry: create schema")
	}

	return &Log{conn: conn}, nil
}

// Close closes the underlying database.
func (l *Log) Close() error {
	return l.conn.Close()
}

// Turn is one recorded decision.
type Turn struct {
	ConnectionID       string
	Season             string
	Card               string
	Terrain            string
	PositionsEvaluated uint32
	DepthReached       uint32
	DecidedAt          time.Time
}

// RecordTurn appends a turn to the log.
func (l *Log) RecordTurn(t Turn) error {
	_, err := l.conn.Exec(
		`INSERT INTO turns (connection_id, season, card, terrain, positions_evaluated, depth_reached, decided_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		t.ConnectionID, t.Season, t.Card, t.Terrain, t.PositionsEvaluated, t.DepthReached, t.DecidedAt,
	)
	if err != nil {
		return errors.Wrap(err, "telemetry: record turn")
	}
	return nil
}

// Summary aggregates the log for a final post-game report.
type Summary struct {
	TurnsPlayed         int
	TotalPositions      uint64
	MaxDepthReached     uint32
	AverageDepthReached float64
}

// Summarize computes a Summary over every turn recorded so far.
func (l *Log) Summarize() (Summary, error) {
	var s Summary
	var avgDepth sql.NullFloat64
	row := l.conn.QueryRow(`
		SELECT COUNT(*), COALESCE(SUM(positions_evaluated), 0), COALESCE(MAX(depth_reached), 0), AVG(depth_reached)
		FROM turns
	`)
	if err := row.Scan(&s.TurnsPlayed, &s.TotalPositions, &s.MaxDepthReached, &avgDepth); err != nil {
		return Summary{}, errors.Wrap(err, "telemetry: summarize")
	}
	if avgDepth.Valid {
		s.AverageDepthReached = avgDepth.Float64
	}
	return s, nil
}
