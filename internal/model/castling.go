package model

import "strings"

type CastlingRights struct {
	WhiteKingSide  bool `json:"whiteKingSide"`
	WhiteQueenSide bool `json:"whiteQueenSide"`
	BlackKingSide  bool `json:"blackKingSide"`
	BlackQueenSide bool `json:"blackQueenSide"`
}

func AllCastlingRights() CastlingRights {
	return CastlingRights{WhiteKingSide: true, WhiteQueenSide: true, BlackKingSide: true, BlackQueenSide: true}
}

func (r CastlingRights) kingSide(c Color) bool {
	if c == White {
		return r.WhiteKingSide
	}
	return r.BlackKingSide
}

func (r CastlingRights) queenSide(c Color) bool {
	if c == White {
		return r.WhiteQueenSide
	}
	return r.BlackQueenSide
}

// String uses the familiar KQkq letters, "-" when nothing is left.
func (r CastlingRights) String() string {
	var sb strings.Builder
	for _, f := range []struct {
		ok     bool
		letter byte
	}{{r.WhiteKingSide, 'K'}, {r.WhiteQueenSide, 'Q'}, {r.BlackKingSide, 'k'}, {r.BlackQueenSide, 'q'}} {
		if f.ok {
			sb.WriteByte(f.letter)
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}

// after returns the rights left once m has been played. Rights only ever
// drop here; undo restores them from the move log.
func (r CastlingRights) after(m Move) CastlingRights {
	if m.PieceMoved.Type == King {
		if m.PieceMoved.Color == White {
			r.WhiteKingSide, r.WhiteQueenSide = false, false
		} else {
			r.BlackKingSide, r.BlackQueenSide = false, false
		}
	}
	// a rook leaving its corner or being captured there
	for _, sq := range []Square{m.Start, m.End} {
		switch sq {
		case Square{Row: 7, Col: 7}:
			r.WhiteKingSide = false
		case Square{Row: 7, Col: 0}:
			r.WhiteQueenSide = false
		case Square{Row: 0, Col: 7}:
			r.BlackKingSide = false
		case Square{Row: 0, Col: 0}:
			r.BlackQueenSide = false
		}
	}
	return r
}
