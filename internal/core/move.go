package core

import (
	"fmt"
	"strings"
)

// BoardSize is the number of files and ranks on the board
const BoardSize = 8

// MaxPieceMoves bounds the pseudo-legal moves of a single piece (a centralized queen)
const MaxPieceMoves = 27

// Move is a pure value: source and destination coordinates, rank 0 being the
// top row as displayed (Black's back rank).
type Move struct {
	FromFile    int  `json:"fromFile"`
	FromRank    int  `json:"fromRank"`
	ToFile      int  `json:"toFile"`
	ToRank      int  `json:"toRank"`
	IsPromotion bool `json:"isPromotion,omitempty"`
}

// Equal compares the four coordinates only
func (m Move) Equal(other Move) bool {
	return m.FromFile == other.FromFile &&
		m.FromRank == other.FromRank &&
		m.ToFile == other.ToFile &&
		m.ToRank == other.ToRank
}

// String returns the long algebraic form, e.g. "e2e4"
func (m Move) String() string {
	return SquareName(m.FromRank, m.FromFile) + SquareName(m.ToRank, m.ToFile)
}

// MoveSet is an independent list of moves; it never aliases board memory
type MoveSet []Move

func (ms MoveSet) Contains(m Move) bool {
	for _, candidate := range ms {
		if candidate.Equal(m) {
			return true
		}
	}
	return false
}

// Targets returns the destination squares in generation order
func (ms MoveSet) Targets() []string {
	targets := make([]string, 0, len(ms))
	for _, m := range ms {
		targets = append(targets, SquareName(m.ToRank, m.ToFile))
	}
	return targets
}

// Strings returns every move in long algebraic form
func (ms MoveSet) Strings() []string {
	out := make([]string, 0, len(ms))
	for _, m := range ms {
		out = append(out, m.String())
	}
	return out
}

func InBounds(rank, file int) bool {
	return rank >= 0 && rank < BoardSize && file >= 0 && file < BoardSize
}

// SquareName converts board coordinates to algebraic notation.
// Rank 0 is the eighth rank, file 0 is the a-file.
func SquareName(rank, file int) string {
	if !InBounds(rank, file) {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+file, '8'-rank)
}

// ParseSquare converts algebraic notation ("e2") to board coordinates
func ParseSquare(square string) (rank, file int, err error) {
	square = strings.ToLower(strings.TrimSpace(square))
	if len(square) != 2 {
		return 0, 0, fmt.Errorf("%w: square %q", ErrOutOfBounds, square)
	}
	if square[0] < 'a' || square[0] > 'h' || square[1] < '1' || square[1] > '8' {
		return 0, 0, fmt.Errorf("%w: square %q", ErrOutOfBounds, square)
	}
	return int('8' - square[1]), int(square[0] - 'a'), nil
}

// ParseMove parses a four character long algebraic move such as "g1f3"
func ParseMove(s string) (Move, error) {
	if len(s) != 4 {
		return Move{}, fmt.Errorf("%w: %q must be 4 characters", ErrInvalidMove, s)
	}
	fromRank, fromFile, err := ParseSquare(s[:2])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}
	toRank, toFile, err := ParseSquare(s[2:])
	if err != nil {
		return Move{}, fmt.Errorf("%w: %v", ErrInvalidMove, err)
	}
	return Move{
		FromFile: fromFile,
		FromRank: fromRank,
		ToFile:   toFile,
		ToRank:   toRank,
	}, nil
}
