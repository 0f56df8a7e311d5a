package storage

import "time"

// GameRecord represents a row in the games table
type GameRecord struct {
	GameID       string    `db:"game_id"`
	CreatedUTC   time.Time `db:"created_utc"`
	Result       string    `db:"result"` // "", "checkmate" or "stalemate"
	Winner       string    `db:"winner"` // "white", "black" or ""
	FinishedAtMs int64     `db:"finished_at_ms"`
}

// MoveRecord represents a row in the moves table
type MoveRecord struct {
	GameID      string    `db:"game_id"`
	Ply         int       `db:"ply"`
	Move        string    `db:"move"`     // coordinate notation, e.g. e7e8q
	Notation    string    `db:"notation"` // display notation, e.g. e8=Q+
	PlayerColor string    `db:"player_color"`
	MoveTimeUTC time.Time `db:"move_time_utc"`
}

// Schema defines the SQLite database structure
const Schema = `
CREATE TABLE IF NOT EXISTS games (
	game_id TEXT PRIMARY KEY,
	created_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	result TEXT NOT NULL DEFAULT '',
	winner TEXT NOT NULL DEFAULT '',
	finished_at_ms INTEGER NOT NULL DEFAULT 0
);

CREATE TABLE IF NOT EXISTS moves (
	game_id TEXT NOT NULL,
	ply INTEGER NOT NULL,
	move TEXT NOT NULL,
	notation TEXT NOT NULL,
	player_color TEXT NOT NULL CHECK(player_color IN ('white', 'black')),
	move_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (game_id) REFERENCES games(game_id) ON DELETE CASCADE,
	PRIMARY KEY (game_id, ply)
);

CREATE INDEX IF NOT EXISTS idx_moves_game_id ON moves(game_id);
`
