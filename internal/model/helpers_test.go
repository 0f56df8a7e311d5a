package model

import (
	"strings"
	"testing"
)

// diagram builds a board from eight rank strings, rank 8 first. Upper case
// letters are white, lower case black, '.' is empty.
func diagram(t *testing.T, ranks ...string) *BoardState {
	t.Helper()
	if len(ranks) != 8 {
		t.Fatalf("diagram needs 8 ranks, got %d", len(ranks))
	}
	board := EmptyBoard()
	for row, rank := range ranks {
		rank = strings.ReplaceAll(rank, " ", "")
		if len(rank) != 8 {
			t.Fatalf("rank %d has %d squares: %q", 8-row, len(rank), rank)
		}
		for col := 0; col < 8; col++ {
			ch := rank[col]
			if ch == '.' {
				continue
			}
			color := White
			if ch >= 'a' && ch <= 'z' {
				color = Black
				ch -= 'a' - 'A'
			}
			pt := PieceType(ch)
			if ch == 'P' {
				pt = Pawn
			}
			board.Place(Square{Row: row, Col: col}, Piece{Color: color, Type: pt})
		}
	}
	return board
}

func sq(t *testing.T, s string) Square {
	t.Helper()
	square, err := ParseSquare(s)
	if err != nil {
		t.Fatal(err)
	}
	return square
}

// play makes each coordinate move in turn, failing the test on the first rejection.
func play(t *testing.T, gs *GameState, moves ...string) {
	t.Helper()
	for _, m := range moves {
		promo, err := ParsePromotion(m[4:])
		if err != nil {
			t.Fatal(err)
		}
		if _, err := gs.TryMove(sq(t, m[:2]), sq(t, m[2:4]), promo); err != nil {
			t.Fatalf("move %s: %v", m, err)
		}
	}
}

func moveStrings(moves []Move) map[string]bool {
	set := make(map[string]bool, len(moves))
	for _, m := range moves {
		set[m.String()] = true
	}
	return set
}

func kiwipete(t *testing.T) *GameState {
	return NewGameStateFromBoard(diagram(t,
		"r...k..r",
		"p.ppqpb.",
		"bn..pnp.",
		"...PN...",
		".p..P...",
		"..N..Q.p",
		"PPPBBPPP",
		"R...K..R",
	), true, AllCastlingRights(), nil)
}

func positionThree(t *testing.T) *GameState {
	return NewGameStateFromBoard(diagram(t,
		"........",
		"..p.....",
		"...p....",
		"KP.....r",
		".R...p.k",
		"........",
		"....P.P.",
		"........",
	), true, CastlingRights{}, nil)
}
