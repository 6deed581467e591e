package board

import (
	"github.com/VideosHosting/Chess/internal/core"
)

type direction struct {
	dRank, dFile int
}

var (
	verticalDirs = []direction{
		{-1, 0}, // up
		{1, 0},  // down
	}
	horizontalDirs = []direction{
		{0, -1}, // left
		{0, 1},  // right
	}
	diagonalDirs = []direction{
		{-1, -1}, // up-left
		{-1, 1},  // up-right
		{1, -1},  // down-left
		{1, 1},   // down-right
	}
	kingOffsets = []direction{
		{-1, -1}, {-1, 0}, {-1, 1},
		{0, -1}, {0, 1},
		{1, -1}, {1, 0}, {1, 1},
	}
	knightOffsets = []direction{
		{-2, -1}, {-2, 1},
		{-1, -2}, {-1, 2},
		{1, -2}, {1, 2},
		{2, -1}, {2, 1},
	}

	rookDirs   = concatDirs(verticalDirs, horizontalDirs)
	bishopDirs = diagonalDirs
	queenDirs  = concatDirs(diagonalDirs, horizontalDirs, verticalDirs)
)

type generator func(b *Board, p core.Piece) core.MoveSet

// generators dispatches on piece type; PieceNone has no entry
var generators = map[core.PieceType]generator{
	core.Pawn:   (*Board).pawnMoves,
	core.Rook:   slider(rookDirs, 14),
	core.Knight: leaper(knightOffsets),
	core.Bishop: slider(bishopDirs, 13),
	core.Queen:  slider(queenDirs, core.MaxPieceMoves),
	core.King:   leaper(kingOffsets),
}

// PseudoLegalMoves returns the moves p could make under its movement rules
// and the current occupancy, without testing the safety of its own king.
// The result is a fresh slice in deterministic order; an empty result is
// a normal outcome.
func (b *Board) PseudoLegalMoves(p core.Piece) core.MoveSet {
	gen, ok := generators[p.Type]
	if !ok || !core.InBounds(p.Rank, p.File) {
		return core.MoveSet{}
	}
	return gen(b, p)
}

func slider(dirs []direction, capacity int) generator {
	return func(b *Board, p core.Piece) core.MoveSet {
		moves := make(core.MoveSet, 0, capacity)
		for _, d := range dirs {
			rank, file := p.Rank+d.dRank, p.File+d.dFile
			for core.InBounds(rank, file) {
				target := b.squares[index(rank, file)]
				if !target.Empty() && target.Color == p.Color {
					break
				}
				moves = append(moves, moveTo(p, rank, file))
				if !target.Empty() {
					break
				}
				rank += d.dRank
				file += d.dFile
			}
		}
		return moves
	}
}

func leaper(offsets []direction) generator {
	return func(b *Board, p core.Piece) core.MoveSet {
		moves := make(core.MoveSet, 0, len(offsets))
		for _, d := range offsets {
			rank, file := p.Rank+d.dRank, p.File+d.dFile
			if !core.InBounds(rank, file) {
				continue
			}
			target := b.squares[index(rank, file)]
			if !target.Empty() && target.Color == p.Color {
				continue
			}
			moves = append(moves, moveTo(p, rank, file))
		}
		return moves
	}
}

// pawnForward is -1 for White (toward rank 0) and +1 for Black
func pawnForward(c core.Color) int {
	if c == core.ColorWhite {
		return -1
	}
	return 1
}

func pawnStartRank(c core.Color) int {
	if c == core.ColorWhite {
		return 6
	}
	return 1
}

func (b *Board) pawnMoves(p core.Piece) core.MoveSet {
	moves := make(core.MoveSet, 0, 4)
	dir := pawnForward(p.Color)
	rank := p.Rank + dir
	if rank < 0 || rank >= core.BoardSize {
		return moves
	}

	if b.squares[index(rank, p.File)].Empty() {
		moves = append(moves, moveTo(p, rank, p.File))
		twoRank := p.Rank + 2*dir
		if p.Rank == pawnStartRank(p.Color) && b.squares[index(twoRank, p.File)].Empty() {
			moves = append(moves, moveTo(p, twoRank, p.File))
		}
	}

	for _, df := range []int{-1, 1} {
		file := p.File + df
		if file < 0 || file >= core.BoardSize {
			continue
		}
		target := b.squares[index(rank, file)]
		if !target.Empty() && target.Color != p.Color {
			moves = append(moves, moveTo(p, rank, file))
		}
	}
	return moves
}

// pawnAttacks returns the diagonal squares a pawn controls, occupied or not
func (b *Board) pawnAttacks(p core.Piece) core.MoveSet {
	moves := make(core.MoveSet, 0, 2)
	rank := p.Rank + pawnForward(p.Color)
	for _, df := range []int{-1, 1} {
		file := p.File + df
		if !core.InBounds(rank, file) {
			continue
		}
		target := b.squares[index(rank, file)]
		if !target.Empty() && target.Color == p.Color {
			continue
		}
		moves = append(moves, moveTo(p, rank, file))
	}
	return moves
}

func moveTo(p core.Piece, rank, file int) core.Move {
	return core.Move{
		FromFile: p.File,
		FromRank: p.Rank,
		ToFile:   file,
		ToRank:   rank,
	}
}

func concatDirs(groups ...[]direction) []direction {
	var out []direction
	for _, g := range groups {
		out = append(out, g...)
	}
	return out
}
