package board

import (
	"github.com/VideosHosting/Chess/internal/core"
)

// historyEntry holds what is needed to reverse one applied move
type historyEntry struct {
	move     core.Move
	mover    core.Piece // occupant of the source square before the move
	captured core.Piece // occupant of the destination before the move, possibly empty
	side     core.Color
}

// ApplyMove moves p to (toFile, toRank) if the move is pseudo-legal and
// reports whether the board changed. Rejected moves leave the board as is.
func (b *Board) ApplyMove(p core.Piece, toFile, toRank int) bool {
	if !core.InBounds(toRank, toFile) || !core.InBounds(p.Rank, p.File) {
		return false
	}

	from := index(p.Rank, p.File)
	to := index(toRank, toFile)
	mover := b.squares[from]
	target := b.squares[to]

	if from == to {
		return false
	}
	if !target.Empty() && target.Color == mover.Color {
		return false
	}
	// the caller's copy must describe the actual occupant
	if mover.Empty() || mover.Type != p.Type || mover.Color != p.Color {
		return false
	}

	m := moveTo(mover, toRank, toFile)
	if !b.IsPseudoLegal(mover, m) {
		return false
	}

	b.history = append(b.history, historyEntry{
		move:     m,
		mover:    mover,
		captured: target,
		side:     b.sideToMove,
	})

	if target.Type == core.King {
		b.setKingIndex(target.Color, noSquare)
	}

	b.squares[to] = core.Piece{
		Type:  mover.Type,
		Color: mover.Color,
		File:  toFile,
		Rank:  toRank,
	}
	b.squares[from] = emptyAt(from)

	if mover.Type == core.King {
		b.setKingIndex(mover.Color, to)
	}

	b.sideToMove = core.OppositeColor(b.sideToMove)
	return true
}

// UndoMove reverts the most recent applied move. It reports false when
// there is no history to pop.
func (b *Board) UndoMove() bool {
	if len(b.history) == 0 {
		return false
	}

	last := b.history[len(b.history)-1]
	b.history = b.history[:len(b.history)-1]

	m := last.move
	b.squares[index(m.FromRank, m.FromFile)] = last.mover
	b.squares[index(m.ToRank, m.ToFile)] = last.captured
	b.sideToMove = last.side

	b.rescanKings()
	return true
}

// HistoryLen returns the number of moves that can be undone
func (b *Board) HistoryLen() int {
	return len(b.history)
}

// LastMove returns the most recently applied move and the piece it
// captured, if any
func (b *Board) LastMove() (core.Move, core.Piece, bool) {
	if len(b.history) == 0 {
		return core.Move{}, core.Piece{}, false
	}
	last := b.history[len(b.history)-1]
	return last.move, last.captured, true
}
