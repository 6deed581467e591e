package core

import (
	"errors"
	"testing"
)

func TestParseSquare(t *testing.T) {
	tests := []struct {
		square     string
		rank, file int
		wantErr    bool
	}{
		{"a8", 0, 0, false},
		{"h1", 7, 7, false},
		{"e2", 6, 4, false},
		{" D5 ", 3, 3, false},
		{"i1", 0, 0, true},
		{"a9", 0, 0, true},
		{"a0", 0, 0, true},
		{"e", 0, 0, true},
		{"", 0, 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.square, func(t *testing.T) {
			rank, file, err := ParseSquare(tt.square)
			if tt.wantErr {
				if !errors.Is(err, ErrOutOfBounds) {
					t.Errorf("ParseSquare(%q) error = %v, want ErrOutOfBounds", tt.square, err)
				}
				return
			}
			if err != nil || rank != tt.rank || file != tt.file {
				t.Errorf("ParseSquare(%q) = %d, %d, %v; want %d, %d", tt.square, rank, file, err, tt.rank, tt.file)
			}
			if name := SquareName(rank, file); name != stripLower(tt.square) {
				t.Errorf("SquareName(%d, %d) = %q", rank, file, name)
			}
		})
	}
}

func stripLower(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == ' ' {
			continue
		}
		if c >= 'A' && c <= 'Z' {
			c += 'a' - 'A'
		}
		out = append(out, c)
	}
	return string(out)
}

func TestParseMove(t *testing.T) {
	m, err := ParseMove("g1f3")
	if err != nil {
		t.Fatal(err)
	}
	want := Move{FromFile: 6, FromRank: 7, ToFile: 5, ToRank: 5}
	if m != want || m.String() != "g1f3" {
		t.Errorf("ParseMove(g1f3) = %+v (%s)", m, m)
	}

	for _, bad := range []string{"", "e2e", "e2e4q", "e2z4", "x2e4"} {
		if _, err := ParseMove(bad); !errors.Is(err, ErrInvalidMove) {
			t.Errorf("ParseMove(%q) error = %v, want ErrInvalidMove", bad, err)
		}
	}
}

func TestMoveSet(t *testing.T) {
	ms := MoveSet{
		{FromFile: 6, FromRank: 7, ToFile: 5, ToRank: 5},
		{FromFile: 6, FromRank: 7, ToFile: 7, ToRank: 5},
	}

	// promotion flag does not take part in equality
	if !ms.Contains(Move{FromFile: 6, FromRank: 7, ToFile: 7, ToRank: 5, IsPromotion: true}) {
		t.Error("Contains ignores promotion flag: got false")
	}
	if ms.Contains(Move{FromFile: 6, FromRank: 7, ToFile: 4, ToRank: 6}) {
		t.Error("Contains(g1e2) = true")
	}

	targets := ms.Targets()
	if len(targets) != 2 || targets[0] != "f3" || targets[1] != "h3" {
		t.Errorf("Targets() = %v", targets)
	}
	strs := ms.Strings()
	if len(strs) != 2 || strs[0] != "g1f3" || strs[1] != "g1h3" {
		t.Errorf("Strings() = %v", strs)
	}
}

func TestPieceLetters(t *testing.T) {
	tests := []struct {
		piece Piece
		want  byte
	}{
		{Piece{Type: King, Color: ColorWhite}, 'K'},
		{Piece{Type: Knight, Color: ColorBlack}, 'n'},
		{Piece{}, 0},
	}
	for _, tt := range tests {
		if got := tt.piece.Letter(); got != tt.want {
			t.Errorf("%+v.Letter() = %q, want %q", tt.piece, got, tt.want)
		}
	}

	for _, ch := range []byte("pnbrqkPNBRQK") {
		pt, ok := PieceTypeFromLetter(ch)
		if !ok || pt == PieceNone {
			t.Errorf("PieceTypeFromLetter(%q) = %v, %v", ch, pt, ok)
		}
	}
	if _, ok := PieceTypeFromLetter('x'); ok {
		t.Error("PieceTypeFromLetter('x') accepted")
	}

	if OppositeColor(ColorWhite) != ColorBlack || OppositeColor(ColorBlack) != ColorWhite {
		t.Error("OppositeColor does not flip")
	}
	if WinnerState(ColorBlack) != StateBlackWins || StateBlackWins.String() != "black wins" {
		t.Error("WinnerState(black) mismatch")
	}
}
