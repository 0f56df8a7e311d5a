package model

import (
	"errors"
	"testing"
)

func TestParseSquare(t *testing.T) {
	tests := []struct {
		in   string
		want Square
	}{
		{"a8", Square{Row: 0, Col: 0}},
		{"h1", Square{Row: 7, Col: 7}},
		{"e4", Square{Row: 4, Col: 4}},
		{"c6", Square{Row: 2, Col: 2}},
	}
	for _, tt := range tests {
		got, err := ParseSquare(tt.in)
		if err != nil {
			t.Fatalf("ParseSquare(%q): %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("ParseSquare(%q) = %+v, want %+v", tt.in, got, tt.want)
		}
		if got.Notation() != tt.in {
			t.Errorf("Notation() = %q, want %q", got.Notation(), tt.in)
		}
	}

	for _, bad := range []string{"", "e", "i1", "a9", "a0", "e44", "E4"} {
		if _, err := ParseSquare(bad); !errors.Is(err, ErrInvalidSquare) {
			t.Errorf("ParseSquare(%q) error = %v, want ErrInvalidSquare", bad, err)
		}
	}
}

func TestNewBoard(t *testing.T) {
	b := NewBoard()
	if got := b.At(Square{Row: 7, Col: 4}); got != (Piece{Color: White, Type: King}) {
		t.Errorf("e1 = %v, want wK", got)
	}
	if got := b.At(Square{Row: 0, Col: 3}); got != (Piece{Color: Black, Type: Queen}) {
		t.Errorf("d8 = %v, want bQ", got)
	}
	if b.WhiteKingLocation != (Square{Row: 7, Col: 4}) || b.BlackKingLocation != (Square{Row: 0, Col: 4}) {
		t.Errorf("king cache = %v / %v", b.WhiteKingLocation, b.BlackKingLocation)
	}
	for row := 2; row < 6; row++ {
		for col := 0; col < 8; col++ {
			if !b.Board[row][col].IsEmpty() {
				t.Fatalf("square %v should be empty", Square{Row: row, Col: col})
			}
		}
	}
}

func TestPieceCode(t *testing.T) {
	for _, code := range []string{"wp", "bK", "wN", "bQ", "--"} {
		p, err := ParsePiece(code)
		if err != nil {
			t.Fatalf("ParsePiece(%q): %v", code, err)
		}
		if p.Code() != code {
			t.Errorf("Code() = %q, want %q", p.Code(), code)
		}
	}
	for _, bad := range []string{"", "w", "xp", "wz", "wpp"} {
		if _, err := ParsePiece(bad); err == nil {
			t.Errorf("ParsePiece(%q) succeeded, want error", bad)
		}
	}
}

func TestPlaceTracksKings(t *testing.T) {
	b := EmptyBoard()
	b.Place(Square{Row: 3, Col: 3}, Piece{Color: Black, Type: King})
	b.Place(Square{Row: 5, Col: 1}, Piece{Color: White, Type: King})
	if b.KingLocation(Black) != (Square{Row: 3, Col: 3}) {
		t.Errorf("black king at %v", b.KingLocation(Black))
	}
	if b.KingLocation(White) != (Square{Row: 5, Col: 1}) {
		t.Errorf("white king at %v", b.KingLocation(White))
	}
}

func TestParsePromotion(t *testing.T) {
	for in, want := range map[string]PieceType{"": NoPiece, "q": Queen, "R": Rook, "b": Bishop, "N": Knight} {
		got, err := ParsePromotion(in)
		if err != nil || got != want {
			t.Errorf("ParsePromotion(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	for _, bad := range []string{"k", "p", "x", "qq"} {
		if _, err := ParsePromotion(bad); !errors.Is(err, ErrInvalidPromotion) {
			t.Errorf("ParsePromotion(%q) error = %v, want ErrInvalidPromotion", bad, err)
		}
	}
}
