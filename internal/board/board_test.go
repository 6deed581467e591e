package board

import (
	"errors"
	"reflect"
	"testing"

	"github.com/VideosHosting/Chess/internal/core"
)

func mustParse(t *testing.T, text string) *Board {
	t.Helper()
	b, err := ParsePosition(text)
	if err != nil {
		t.Fatalf("ParsePosition(%q): %v", text, err)
	}
	return b
}

func mustPiece(t *testing.T, b *Board, square string) core.Piece {
	t.Helper()
	p, err := b.PieceAt(square)
	if err != nil {
		t.Fatalf("PieceAt(%s): %v", square, err)
	}
	if p.Empty() {
		t.Fatalf("no piece on %s", square)
	}
	return p
}

// apply moves the piece on from to to and fails the test if rejected
func apply(t *testing.T, b *Board, from, to string) {
	t.Helper()
	p := mustPiece(t, b, from)
	rank, file, err := core.ParseSquare(to)
	if err != nil {
		t.Fatal(err)
	}
	if !b.ApplyMove(p, file, rank) {
		t.Fatalf("move %s%s rejected in %s", from, to, b.Position())
	}
}

func TestPositionRoundTrip(t *testing.T) {
	positions := []string{
		StartingPosition,
		"4k3/8/8/4R3/8/8/8/4K3 w",
		"4k3/8/8/4R3/8/8/8/4K3 b",
		"8/8/8/8/8/8/8/8 w",
		"r3k2r/pp1n1ppp/2p1p3/q7/3P4/2N2N2/PP3PPP/R2QK2R b",
	}

	for _, pos := range positions {
		t.Run(pos, func(t *testing.T) {
			b := mustParse(t, pos)
			if got := b.Position(); got != pos {
				t.Errorf("Position() = %q, want %q", got, pos)
			}
		})
	}
}

func TestPositionCanonicalForms(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR", StartingPosition},
		{"rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1", StartingPosition},
		{"4k3/44/8/8/8/8/8/4K3 b", "4k3/8/8/8/8/8/8/4K3 b"},
		{"  4k3/8/8/8/8/8/8/4K3   w  ", "4k3/8/8/8/8/8/8/4K3 w"},
	}

	for _, tt := range tests {
		b := mustParse(t, tt.in)
		if got := b.Position(); got != tt.want {
			t.Errorf("Position(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParsePositionErrors(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"seven ranks", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP w"},
		{"nine ranks", "rnbqkbnr/pppppppp/8/8/8/8/8/PPPPPPPP/RNBQKBNR w"},
		{"short rank", "rnbqkbnr/ppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w"},
		{"long rank", "rnbqkbnrr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w"},
		{"digit overflow", "rnbqkbnr/pppppppp/9/8/8/8/PPPPPPPP/RNBQKBNR w"},
		{"run overflow", "rnbqkbnr/pppppppp/5p3/8/8/8/PPPPPPPP/RNBQKBNR w"},
		{"zero digit", "rnbqkbnr/pppppppp/08/8/8/8/PPPPPPPP/RNBQKBNR w"},
		{"unknown letter", "rnbqkbnr/pppppppp/8/3x4/8/8/PPPPPPPP/RNBQKBNR w"},
		{"bad side", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR x"},
		{"too many fields", "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1 extra"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParsePosition(tt.in)
			if !errors.Is(err, core.ErrInvalidPosition) {
				t.Errorf("ParsePosition(%q) error = %v, want ErrInvalidPosition", tt.in, err)
			}
		})
	}
}

func TestLoadFailureKeepsBoard(t *testing.T) {
	b := New()
	if err := b.Load(StartingPosition); err != nil {
		t.Fatal(err)
	}
	apply(t, b, "e2", "e4")

	if err := b.Load("rnbqkbnr/8/8 w"); err == nil {
		t.Fatal("expected error for malformed position")
	}
	if b.HistoryLen() != 1 {
		t.Errorf("history changed on failed load: %d", b.HistoryLen())
	}
	if got, want := b.Position(), "rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b"; got != want {
		t.Errorf("Position() = %q, want %q", got, want)
	}
}

func TestLoadResetsKingCache(t *testing.T) {
	b := New()
	if b.Loaded() {
		t.Fatal("new board reports loaded")
	}
	if err := b.Load("4k3/8/8/8/8/8/8/4K3 w"); err != nil {
		t.Fatal(err)
	}
	if rank, file, ok := b.KingSquare(core.ColorWhite); !ok || rank != 7 || file != 4 {
		t.Fatalf("white king = (%d,%d,%t), want (7,4,true)", rank, file, ok)
	}

	if err := b.Load("4k3/8/8/8/8/8/8/R7 w"); err != nil {
		t.Fatal(err)
	}
	if _, _, ok := b.KingSquare(core.ColorWhite); ok {
		t.Error("white king cache survived a load without a white king")
	}
	if _, err := b.IsInCheck(core.ColorBlack); !errors.Is(err, core.ErrMissingKing) {
		t.Errorf("IsInCheck error = %v, want ErrMissingKing", err)
	}
}

func TestGetPiece(t *testing.T) {
	b := mustParse(t, StartingPosition)

	p, err := b.GetPiece(7, 4)
	if err != nil {
		t.Fatal(err)
	}
	want := core.Piece{Type: core.King, Color: core.ColorWhite, File: 4, Rank: 7}
	if p != want {
		t.Errorf("GetPiece(7,4) = %+v, want %+v", p, want)
	}

	p, err = b.GetPiece(4, 4)
	if err != nil {
		t.Fatal(err)
	}
	if !p.Empty() || p.Rank != 4 || p.File != 4 {
		t.Errorf("GetPiece(4,4) = %+v, want empty square at (4,4)", p)
	}

	for _, c := range [][2]int{{-1, 0}, {0, -1}, {8, 0}, {0, 8}} {
		if _, err := b.GetPiece(c[0], c[1]); !errors.Is(err, core.ErrOutOfBounds) {
			t.Errorf("GetPiece(%d,%d) error = %v, want ErrOutOfBounds", c[0], c[1], err)
		}
	}
}

func TestCoordinateInvariant(t *testing.T) {
	b := mustParse(t, StartingPosition)
	apply(t, b, "g1", "f3")
	apply(t, b, "d7", "d5")
	b.UndoMove()

	for r := 0; r < 8; r++ {
		for f := 0; f < 8; f++ {
			p, _ := b.GetPiece(r, f)
			if p.Rank != r || p.File != f {
				t.Errorf("slot (%d,%d) holds piece with coords (%d,%d)", r, f, p.Rank, p.File)
			}
		}
	}
}

func TestRenderMarksDestinations(t *testing.T) {
	b := mustParse(t, "4k3/8/8/8/8/3p4/4P3/4K3 w")
	out := b.Render(b.PseudoLegalMoves(mustPiece(t, b, "e2")))
	want := "  a b c d e f g h\n" +
		"8 . . . . k . . .  8\n" +
		"7 . . . . . . . .  7\n" +
		"6 . . . . . . . .  6\n" +
		"5 . . . . . . . .  5\n" +
		"4 . . . . * . . .  4\n" +
		"3 . . . x * . . .  3\n" +
		"2 . . . . P . . .  2\n" +
		"1 . . . . K . . .  1\n" +
		"  a b c d e f g h"
	if out != want {
		t.Errorf("Render() =\n%s\nwant\n%s", out, want)
	}
}

func TestPiecesSnapshot(t *testing.T) {
	b := mustParse(t, StartingPosition)
	white := b.Pieces(core.ColorWhite)
	if len(white) != 16 {
		t.Fatalf("len(Pieces(white)) = %d, want 16", len(white))
	}
	before := make([]core.Piece, len(white))
	copy(before, white)
	apply(t, b, "e2", "e4")
	if !reflect.DeepEqual(before, white) {
		t.Error("returned pieces changed after a board mutation")
	}
}
