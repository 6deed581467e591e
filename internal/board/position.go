package board

import (
	"fmt"
	"strings"

	"github.com/VideosHosting/Chess/internal/core"
)

// ParsePosition builds a fresh board from a rank string such as
// "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w". The side token is
// optional and defaults to White. Trailing FEN fields (castling, en passant,
// clocks) are accepted and ignored.
func ParsePosition(text string) (*Board, error) {
	parts := strings.Fields(text)
	if len(parts) == 0 {
		return nil, fmt.Errorf("%w: empty position", core.ErrInvalidPosition)
	}
	if len(parts) > 6 {
		return nil, fmt.Errorf("%w: expected at most 6 fields, got %d", core.ErrInvalidPosition, len(parts))
	}

	b := New()

	ranks := strings.Split(parts[0], "/")
	if len(ranks) != core.BoardSize {
		return nil, fmt.Errorf("%w: expected 8 ranks, got %d", core.ErrInvalidPosition, len(ranks))
	}

	for r, group := range ranks {
		file := 0
		for i := 0; i < len(group); i++ {
			ch := group[i]
			if ch >= '1' && ch <= '8' {
				file += int(ch - '0')
				if file > core.BoardSize {
					return nil, fmt.Errorf("%w: rank %d has more than 8 files", core.ErrInvalidPosition, r+1)
				}
				continue
			}

			pieceType, ok := core.PieceTypeFromLetter(ch)
			if !ok {
				return nil, fmt.Errorf("%w: unexpected %q in rank %d", core.ErrInvalidPosition, ch, r+1)
			}
			if file >= core.BoardSize {
				return nil, fmt.Errorf("%w: rank %d has more than 8 files", core.ErrInvalidPosition, r+1)
			}

			color := core.ColorBlack
			if ch >= 'A' && ch <= 'Z' {
				color = core.ColorWhite
			}
			b.squares[index(r, file)] = core.Piece{
				Type:  pieceType,
				Color: color,
				File:  file,
				Rank:  r,
			}
			file++
		}
		if file != core.BoardSize {
			return nil, fmt.Errorf("%w: rank %d has %d files", core.ErrInvalidPosition, r+1, file)
		}
	}

	if len(parts) > 1 {
		switch parts[1] {
		case "w":
			b.sideToMove = core.ColorWhite
		case "b":
			b.sideToMove = core.ColorBlack
		default:
			return nil, fmt.Errorf("%w: turn must be 'w' or 'b'", core.ErrInvalidPosition)
		}
	}

	b.loaded = true
	b.rescanKings()
	return b, nil
}

// Position serializes the occupancy grid and side to move, the exact
// inverse of ParsePosition
func (b *Board) Position() string {
	var sb strings.Builder
	for r := 0; r < core.BoardSize; r++ {
		if r > 0 {
			sb.WriteByte('/')
		}
		empty := 0
		for f := 0; f < core.BoardSize; f++ {
			p := b.squares[index(r, f)]
			if p.Empty() {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteByte(byte('0' + empty))
				empty = 0
			}
			sb.WriteByte(p.Letter())
		}
		if empty > 0 {
			sb.WriteByte(byte('0' + empty))
		}
	}
	sb.WriteByte(' ')
	sb.WriteByte(byte(b.sideToMove))
	return sb.String()
}
