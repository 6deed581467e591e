package board

import (
	"fmt"

	"github.com/VideosHosting/Chess/internal/core"
)

// IsPseudoLegal reports whether m is among p's pseudo-legal moves. It does
// not check whether the move leaves the mover's king attacked.
func (b *Board) IsPseudoLegal(p core.Piece, m core.Move) bool {
	return b.PseudoLegalMoves(p).Contains(m)
}

// AttackedSquares collects the attack vectors of every non-king piece of
// color by. Pawns contribute their diagonals only.
func (b *Board) AttackedSquares(by core.Color) core.MoveSet {
	var attacks core.MoveSet
	for _, p := range b.squares {
		if p.Empty() || p.Color != by {
			continue
		}
		switch p.Type {
		case core.King:
			// kings are left out so check detection never recurses
		case core.Pawn:
			attacks = append(attacks, b.pawnAttacks(p)...)
		default:
			attacks = append(attacks, b.PseudoLegalMoves(p)...)
		}
	}
	if attacks == nil {
		attacks = core.MoveSet{}
	}
	return attacks
}

// IsAttacked reports whether (rank, file) is a destination in by's attack set
func (b *Board) IsAttacked(rank, file int, by core.Color) bool {
	for _, m := range b.AttackedSquares(by) {
		if m.ToRank == rank && m.ToFile == file {
			return true
		}
	}
	return false
}

// IsInCheck reports whether c's king is attacked by the opposite color.
// Both king caches must be set; otherwise ErrMissingKing is returned.
func (b *Board) IsInCheck(c core.Color) (bool, error) {
	if b.whiteKing == noSquare || b.blackKing == noSquare {
		return false, fmt.Errorf("%w: white=%t black=%t", core.ErrMissingKing,
			b.whiteKing != noSquare, b.blackKing != noSquare)
	}
	idx := b.kingIndex(c)
	return b.IsAttacked(idx/core.BoardSize, idx%core.BoardSize, core.OppositeColor(c)), nil
}
