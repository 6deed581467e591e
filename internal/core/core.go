package core

type State int

const (
	StateOngoing State = iota
	StateWhiteWins
	StateBlackWins
)

func (s State) String() string {
	switch s {
	case StateWhiteWins:
		return "white wins"
	case StateBlackWins:
		return "black wins"
	case StateOngoing:
		return "ongoing"
	default:
		return "unknown"
	}
}

type Color byte

const (
	ColorWhite Color = 'w'
	ColorBlack Color = 'b'
)

func (c Color) String() string {
	switch c {
	case ColorWhite, ColorBlack:
		return string(c)
	default:
		return "-"
	}
}

// Name returns the capitalized color name for display
func (c Color) Name() string {
	if c == ColorBlack {
		return "Black"
	}
	return "White"
}

func OppositeColor(c Color) Color {
	if c == ColorWhite {
		return ColorBlack
	}
	return ColorWhite
}

// WinnerState returns the terminal state in which c has won
func WinnerState(c Color) State {
	if c == ColorWhite {
		return StateWhiteWins
	}
	return StateBlackWins
}

type PieceType byte

const (
	PieceNone PieceType = 0
	Pawn      PieceType = 'p'
	Rook      PieceType = 'r'
	Knight    PieceType = 'n'
	Bishop    PieceType = 'b'
	Queen     PieceType = 'q'
	King      PieceType = 'k'
)

func (t PieceType) String() string {
	switch t {
	case Pawn:
		return "pawn"
	case Rook:
		return "rook"
	case Knight:
		return "knight"
	case Bishop:
		return "bishop"
	case Queen:
		return "queen"
	case King:
		return "king"
	default:
		return "none"
	}
}

// PieceTypeFromLetter maps a position-string letter of either case to its type
func PieceTypeFromLetter(ch byte) (PieceType, bool) {
	if ch >= 'A' && ch <= 'Z' {
		ch += 'a' - 'A'
	}
	switch t := PieceType(ch); t {
	case Pawn, Rook, Knight, Bishop, Queen, King:
		return t, true
	}
	return PieceNone, false
}

// Piece is the occupant of one board square. A Type of PieceNone marks an
// empty square; File and Rank always mirror the slot the piece lives in.
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
	File  int       `json:"file"`
	Rank  int       `json:"rank"`
}

func (p Piece) Empty() bool {
	return p.Type == PieceNone
}

// Letter returns the position-string letter, uppercase for White, 0 if empty
func (p Piece) Letter() byte {
	if p.Empty() {
		return 0
	}
	ch := byte(p.Type)
	if p.Color == ColorWhite {
		ch -= 'a' - 'A'
	}
	return ch
}

// Square returns the algebraic name of the piece's square, e.g. "e2"
func (p Piece) Square() string {
	return SquareName(p.Rank, p.File)
}
