package core

// Request types

type CreateGameRequest struct {
	White    PlayerConfig `json:"white"`
	Black    PlayerConfig `json:"black"`
	Position string       `json:"fen,omitempty" validate:"omitempty,max=100"`
}

type MoveRequest struct {
	Move string `json:"move" validate:"required,len=4"` // long algebraic, e.g. "e2e4"
}

type UndoRequest struct {
	Count int `json:"count" validate:"omitempty,min=1,max=300"`
}

// Response types

type GameResponse struct {
	GameID   string          `json:"gameId"`
	FEN      string          `json:"fen"`
	Turn     string          `json:"turn"`  // "w" or "b"
	State    string          `json:"state"` // "ongoing", "white wins", "black wins"
	Check    bool            `json:"check"` // side to move is attacked
	Moves    []string        `json:"moves"`
	Players  PlayersResponse `json:"players"`
	LastMove *MoveInfo       `json:"lastMove,omitempty"`
}

type PlayersResponse struct {
	White *Player `json:"white"`
	Black *Player `json:"black"`
}

type MoveInfo struct {
	Move        string `json:"move"`
	PlayerColor string `json:"playerColor"` // "w" or "b"
	Captured    string `json:"captured,omitempty"`
	Check       bool   `json:"check,omitempty"`
}

type LegalMovesResponse struct {
	Square string   `json:"square"`
	Piece  string   `json:"piece,omitempty"`
	Moves  []string `json:"moves"`
}

type BoardResponse struct {
	FEN   string `json:"fen"`
	Board string `json:"board"` // ASCII representation
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code"`
	Details string `json:"details,omitempty"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Time    int64  `json:"time"`
	Games   int    `json:"games"`
	Storage string `json:"storage"` // "ok", "degraded", "disabled"
}
