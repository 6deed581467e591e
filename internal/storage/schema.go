package storage

import "time"

// GameRecord represents a row in the games table
type GameRecord struct {
	GameID          string    `db:"game_id" json:"gameId"`
	InitialPosition string    `db:"initial_fen" json:"initialFen"`
	WhitePlayerID   string    `db:"white_player_id" json:"whitePlayerId"`
	WhiteName       string    `db:"white_name" json:"whiteName"`
	BlackPlayerID   string    `db:"black_player_id" json:"blackPlayerId"`
	BlackName       string    `db:"black_name" json:"blackName"`
	StartTimeUTC    time.Time `db:"start_time_utc" json:"startTimeUtc"`
}

// MoveRecord represents a row in the moves table
type MoveRecord struct {
	MoveID        int64     `db:"move_id" json:"moveId,omitempty"`
	GameID        string    `db:"game_id" json:"gameId"`
	MoveNumber    int       `db:"move_number" json:"moveNumber"`
	Move          string    `db:"move" json:"move"`
	PositionAfter string    `db:"fen_after_move" json:"fenAfterMove"`
	PlayerColor   string    `db:"player_color" json:"playerColor"` // "w" or "b"
	MoveTimeUTC   time.Time `db:"move_time_utc" json:"moveTimeUtc"`
}

// Schema defines the SQLite database structure
const Schema = `
CREATE TABLE IF NOT EXISTS games (
	game_id TEXT PRIMARY KEY,
	initial_fen TEXT NOT NULL,
	white_player_id TEXT NOT NULL,
	white_name TEXT NOT NULL DEFAULT 'White',
	black_player_id TEXT NOT NULL,
	black_name TEXT NOT NULL DEFAULT 'Black',
	start_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS moves (
	move_id INTEGER PRIMARY KEY AUTOINCREMENT,
	game_id TEXT NOT NULL,
	move_number INTEGER NOT NULL,
	move TEXT NOT NULL,
	fen_after_move TEXT NOT NULL,
	player_color TEXT NOT NULL CHECK(player_color IN ('w', 'b')),
	move_time_utc DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
	FOREIGN KEY (game_id) REFERENCES games(game_id) ON DELETE CASCADE,
	UNIQUE(game_id, move_number)
);

CREATE INDEX IF NOT EXISTS idx_moves_game_id ON moves(game_id);
CREATE INDEX IF NOT EXISTS idx_games_white_player ON games(white_player_id);
CREATE INDEX IF NOT EXISTS idx_games_black_player ON games(black_player_id);
`
