package board

import (
	"fmt"
	"strings"

	"github.com/VideosHosting/Chess/internal/core"
)

const (
	StartingPosition = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w"

	numSquares = core.BoardSize * core.BoardSize
	noSquare   = -1
)

// Board owns the 64 square slots, the side to move, the cached king
// squares and the move history. A Board must not be shared between
// goroutines without external locking.
type Board struct {
	squares    [numSquares]core.Piece
	sideToMove core.Color
	whiteKing  int
	blackKing  int
	history    []historyEntry
	loaded     bool
}

// New returns an empty board; Load must be called before play
func New() *Board {
	b := &Board{sideToMove: core.ColorWhite}
	b.clearSquares()
	b.whiteKing, b.blackKing = noSquare, noSquare
	return b
}

// Load replaces the whole position with the one described by text.
// On error the board is left untouched.
func (b *Board) Load(text string) error {
	scratch, err := ParsePosition(text)
	if err != nil {
		return err
	}

	b.squares = scratch.squares
	b.sideToMove = scratch.sideToMove
	b.history = nil
	b.loaded = true
	b.rescanKings()
	return nil
}

// Loaded reports whether a position has been loaded
func (b *Board) Loaded() bool {
	return b.loaded
}

// GetPiece returns the occupant of (rank, file); an empty square yields a
// piece with Type PieceNone
func (b *Board) GetPiece(rank, file int) (core.Piece, error) {
	if !core.InBounds(rank, file) {
		return core.Piece{}, fmt.Errorf("%w: rank %d, file %d", core.ErrOutOfBounds, rank, file)
	}
	return b.squares[index(rank, file)], nil
}

// PieceAt returns the occupant of an algebraic square such as "e2"
func (b *Board) PieceAt(square string) (core.Piece, error) {
	rank, file, err := core.ParseSquare(square)
	if err != nil {
		return core.Piece{}, err
	}
	return b.GetPiece(rank, file)
}

func (b *Board) SideToMove() core.Color {
	return b.sideToMove
}

// KingSquare returns the cached location of c's king
func (b *Board) KingSquare(c core.Color) (rank, file int, ok bool) {
	idx := b.kingIndex(c)
	if idx == noSquare {
		return 0, 0, false
	}
	return idx / core.BoardSize, idx % core.BoardSize, true
}

// Pieces returns copies of every piece of color c in board order
func (b *Board) Pieces(c core.Color) []core.Piece {
	var pieces []core.Piece
	for _, p := range b.squares {
		if !p.Empty() && p.Color == c {
			pieces = append(pieces, p)
		}
	}
	return pieces
}

func (b *Board) kingIndex(c core.Color) int {
	if c == core.ColorWhite {
		return b.whiteKing
	}
	return b.blackKing
}

func (b *Board) setKingIndex(c core.Color, idx int) {
	if c == core.ColorWhite {
		b.whiteKing = idx
	} else {
		b.blackKing = idx
	}
}

// rescanKings rebuilds both king caches from the squares. The caches are
// zeroed first so a position without a king never keeps a stale index.
func (b *Board) rescanKings() {
	b.whiteKing, b.blackKing = noSquare, noSquare
	for i, p := range b.squares {
		if p.Type == core.King {
			b.setKingIndex(p.Color, i)
		}
	}
}

func (b *Board) clearSquares() {
	for i := range b.squares {
		b.squares[i] = emptyAt(i)
	}
}

func index(rank, file int) int {
	return rank*core.BoardSize + file
}

func emptyAt(i int) core.Piece {
	return core.Piece{File: i % core.BoardSize, Rank: i / core.BoardSize}
}

// String creates an ASCII representation of the board
func (b *Board) String() string {
	return b.Render(nil)
}

// Render draws the board as ASCII, marking the given destination squares
// with '*' (or 'x' when occupied)
func (b *Board) Render(marked core.MoveSet) string {
	marks := make(map[int]bool, len(marked))
	for _, m := range marked {
		marks[index(m.ToRank, m.ToFile)] = true
	}

	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")

	for r := 0; r < core.BoardSize; r++ {
		sb.WriteString(fmt.Sprintf("%d ", 8-r))
		for f := 0; f < core.BoardSize; f++ {
			i := index(r, f)
			p := b.squares[i]
			switch {
			case marks[i] && p.Empty():
				sb.WriteString("* ")
			case marks[i]:
				sb.WriteString("x ")
			case p.Empty():
				sb.WriteString(". ")
			default:
				sb.WriteString(fmt.Sprintf("%c ", p.Letter()))
			}
		}
		sb.WriteString(fmt.Sprintf(" %d\n", 8-r))
	}
	sb.WriteString("  a b c d e f g h")

	return sb.String()
}
