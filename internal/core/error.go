package core

import "errors"

var (
	ErrInvalidPosition = errors.New("invalid position")
	ErrOutOfBounds     = errors.New("coordinates out of bounds")
	// ErrMissingKing reports an unset king cache, a broken board invariant
	// rather than a user input problem
	ErrMissingKing  = errors.New("king not on board")
	ErrInvalidMove  = errors.New("invalid move")
	ErrNotYourTurn  = errors.New("not this side's turn")
	ErrGameOver     = errors.New("game is over")
	ErrGameNotFound = errors.New("game not found")
	ErrGameExists   = errors.New("game already exists")
)

// Error codes
const (
	ErrCodeGameNotFound      = "GAME_NOT_FOUND"
	ErrCodeInvalidMove       = "INVALID_MOVE"
	ErrCodeNotYourTurn       = "NOT_YOUR_TURN"
	ErrCodeGameOver          = "GAME_OVER"
	ErrCodeRateLimitExceeded = "RATE_LIMIT_EXCEEDED"
	ErrCodeInvalidContent    = "INVALID_CONTENT_TYPE"
	ErrCodeInvalidRequest    = "INVALID_REQUEST"
	ErrCodeInvalidPosition   = "INVALID_FEN"
	ErrCodeOutOfBounds       = "OUT_OF_BOUNDS"
	ErrCodeInternalError     = "INTERNAL_ERROR"
)
